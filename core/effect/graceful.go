package effect

import (
	"context"
	"os"
	"os/signal"
)

// Graceful is a shutdown trigger: the server stops accepting new work once it is closed.
// A nil Graceful means "no programmable shutdown".
type Graceful = <-chan struct{}

// OnSignal returns a Graceful closed when the process receives one of sigs,
// or os.Interrupt when none are given. The signal handler is released after the first delivery.
func OnSignal(sigs ...os.Signal) Graceful {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		<-ch
		signal.Stop(ch)
		close(done)
	}()
	return done
}

// OnContext returns a Graceful closed when ctx is done.
func OnContext(ctx context.Context) Graceful {
	return ctx.Done()
}
