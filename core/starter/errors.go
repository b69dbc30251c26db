package starter

import (
	"errors"
	"fmt"
)

var (
	// ErrLoggerInit is matched by errors.Is for any *LoggerInitError.
	ErrLoggerInit = errors.New("logger initialization failed")
	// ErrLaunch is matched by errors.Is for any *LaunchError.
	ErrLaunch = errors.New("launch failed")
	// ErrNilLogger is the cause of a LoggerInitError when InitLogger returned neither a logger nor an error.
	ErrNilLogger = errors.New("configuration returned a nil logger")
)

// LoggerInitError reports that the configuration could not build its logger.
// No preparer runs after it.
type LoggerInitError struct {
	Err error
}

func (e *LoggerInitError) Error() string {
	return fmt.Sprintf("%s: %v", ErrLoggerInit, e.Err)
}

func (e *LoggerInitError) Unwrap() []error {
	return []error{ErrLoggerInit, e.Err}
}

// LaunchError reports that the listener could not be bound.
type LaunchError struct {
	Addr string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s on %s: %v", ErrLaunch, e.Addr, e.Err)
}

func (e *LaunchError) Unwrap() []error {
	return []error{ErrLaunch, e.Err}
}
