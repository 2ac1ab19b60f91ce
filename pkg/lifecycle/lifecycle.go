package lifecycle

import "time"

// State represents the lifecycle state of a runner.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no work is running in s and none will start
// without a new Start.
func (s State) Terminal() bool {
	return s == StateStopped || s == StateCrashed
}

// EventEmitter is called when lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Manager manages the lifecycle state machine of a runner.
type Manager interface {
	State() State
	CanStart() bool
	CanStop() bool

	// TransitionTo moves to newState, or returns an error and stays put
	// when the move is not allowed.
	TransitionTo(newState State, reason string) error

	// WaitWithTimeout waits for all workers to finish.
	// Returns ErrShutdownTimeout if the timeout expires.
	WaitWithTimeout(timeout time.Duration) error

	AddWorker()
	WorkerDone()
}
