package starter

import (
	"context"
	"net"
)

// Running is a launched application.
type Running struct {
	addr   net.Addr
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Addr returns the bound listener address.
func (r *Running) Addr() net.Addr {
	return r.addr
}

// Done is closed once the server has stopped and its shutdown hooks ran.
func (r *Running) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the server stops and returns its terminal error.
func (r *Running) Wait() error {
	<-r.done
	return r.err
}

// Stop asks the server to shut down gracefully and waits until it has,
// or until ctx is done.
func (r *Running) Stop(ctx context.Context) error {
	r.cancel()
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
