package server

import "errors"

var (
	// Server lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrServerStopped        = errors.New("server is stopped")
	ErrBind                 = errors.New("failed to bind listener on")
	ErrShutdownHook         = errors.New("shutdown hook error")

	// Configuration errors
	ErrMissingAddress = errors.New("server address is required")
	ErrFailedLoadCert = errors.New("failed to load certificate")
)
