package xtalcheck

import "errors"

var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("xtalcheck: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("xtalcheck: not running")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("xtalcheck: invalid configuration")

	// ErrNoClocks is returned when neither clocks nor a clock file are configured.
	ErrNoClocks = errors.New("xtalcheck: no clocks configured")

	// ErrClockFile is returned when the clock file cannot be read or parsed.
	ErrClockFile = errors.New("xtalcheck: clock file")
)
