package xtalcheck

import (
	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

// Option configures optional behavior of a Runner.
type Option func(*options)

type options struct {
	logger       log.Logger
	validator    *xtal.Validator
	eventHandler EventHandler
	plugins      []Plugin
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidator sets the validator used for checks.
// If not provided, a validator over xtal.Known is created with the runner's logger.
func WithValidator(v *xtal.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithEventHandler sets a handler for state changes and reports.
// Handlers are called synchronously from the checking goroutine.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the runner starts.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
