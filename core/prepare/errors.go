package prepare

import (
	"errors"
	"fmt"
)

var (
	// ErrPanic is wrapped by a PrepareError when a preparer panics.
	ErrPanic = errors.New("preparer panicked")
	// ErrSetConsumed is returned when a concurrent set is prepared a second time.
	ErrSetConsumed = errors.New("concurrent set already consumed")
)

// PrepareError attributes a preparation failure to the step that produced it.
// Step is the 1-based position in the sequential pipeline, Member the 1-based
// position inside a concurrent set; zero means "not applicable".
type PrepareError struct {
	Step   int
	Member int
	Name   string
	Err    error
}

func (e *PrepareError) Error() string {
	switch {
	case e.Step > 0 && e.Member > 0:
		return fmt.Sprintf("step %d (%s, concurrent member %d) failed: %v", e.Step, e.Name, e.Member, e.Err)
	case e.Step > 0:
		return fmt.Sprintf("step %d (%s) failed: %v", e.Step, e.Name, e.Err)
	case e.Member > 0:
		return fmt.Sprintf("concurrent member %d (%s) failed: %v", e.Member, e.Name, e.Err)
	default:
		return fmt.Sprintf("preparer %s failed: %v", e.Name, e.Err)
	}
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}

// AtStep returns err attributed to the given pipeline step.
// A PrepareError keeps its member and name; any other error is wrapped.
func AtStep(err error, step int, name string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PrepareError); ok {
		out := *pe
		out.Step = step
		return &out
	}
	return &PrepareError{Step: step, Name: name, Err: err}
}
