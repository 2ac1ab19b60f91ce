// Package lifecycle provides the state machine behind a long-running
// clock check.
//
// A runner moves through Stopped, Starting, Running, Stopping and Crashed.
// The manager rejects illegal moves, tells an EventEmitter about legal ones,
// and tracks background workers so Stop can wait for them.
//
// # Usage
//
//	manager := lifecycle.NewManager(logger, emitter)
//
//	if err := manager.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
//	    return err
//	}
//	manager.AddWorker()
//	go func() {
//	    defer manager.WorkerDone()
//	    // ... watch clocks ...
//	}()
//
//	// later
//	manager.Cancel()
//	err := manager.WaitWithTimeout(lifecycle.ShutdownTimeout)
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Stopping, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
package lifecycle
