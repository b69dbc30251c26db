package async

import "context"

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the computation to complete and returns its result.
// A value returned together with an error is kept.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Async runs fn(ctx, param) in its own goroutine and returns a Future for its result.
// When ctx is already done fn is not called and the Future holds ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Outcome is the settled result of a single future.
type Outcome[U any] struct {
	Value U
	Err   error
}

// Settle waits until every future has completed and returns their outcomes
// in the same order as the futures. It never returns early on failure.
func Settle[U any](futures ...*Future[U]) []Outcome[U] {
	outcomes := make([]Outcome[U], len(futures))
	for i, future := range futures {
		v, err := future.Await()
		outcomes[i] = Outcome[U]{Value: v, Err: err}
	}
	return outcomes
}
