package xtalcheck

import (
	"context"

	"github.com/bft-labs/xtalcheck/pkg/lifecycle"
	"github.com/bft-labs/xtalcheck/pkg/log"
)

// State is the lifecycle state of a Runner.
type State = lifecycle.State

const (
	StateStopped  = lifecycle.StateStopped
	StateStarting = lifecycle.StateStarting
	StateRunning  = lifecycle.StateRunning
	StateStopping = lifecycle.StateStopping
	StateCrashed  = lifecycle.StateCrashed
)

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives runner events.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnReport(Report)
}

// Plugin extends a running Runner.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on Initialize.
type PluginConfig struct {
	ClockFile string
	Logger    log.Logger

	// Recheck runs a check now. Calls are serialized with other checks.
	Recheck func(ctx context.Context) (Report, error)
}

// eventEmitter adapts EventHandler to lifecycle.EventEmitter.
type eventEmitter struct {
	handler EventHandler
}

func (e eventEmitter) OnStateChange(previous, current lifecycle.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{Previous: previous, Current: current, Reason: reason})
}

func (e eventEmitter) onReport(r Report) {
	if e.handler == nil {
		return
	}
	e.handler.OnReport(r)
}
