package xtalcheck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/xtalcheck/pkg/lifecycle"
	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

// Runner checks the clocks of a Config.
// Use New() to create an instance, then Check() for a single pass or
// Start() to keep checking while plugins run.
type Runner struct {
	config    Config
	logger    log.Logger
	validator *xtal.Validator
	lifecycle *lifecycle.DefaultManager
	emitter   eventEmitter
	plugins   []Plugin

	// checkMu serializes checks so reports never interleave.
	checkMu sync.Mutex
	last    Report

	// mu guards Start/Stop and active, the plugins initialized by the
	// current run.
	mu     sync.Mutex
	active []Plugin
}

// New creates a Runner in StateStopped.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	validator := o.validator
	if validator == nil {
		validator = xtal.New(xtal.Known(), xtal.WithLogger(o.logger))
	}

	logger := o.logger
	if cfg.ClockFile != "" {
		logger = log.With(logger, log.String("clock_file", cfg.ClockFile))
	}

	emitter := eventEmitter{handler: o.eventHandler}
	return &Runner{
		config:    cfg,
		logger:    logger,
		validator: validator,
		lifecycle: lifecycle.NewManager(logger, emitter),
		emitter:   emitter,
		plugins:   o.plugins,
	}, nil
}

// Validator returns the validator used for checks.
func (r *Runner) Validator() *xtal.Validator {
	return r.validator
}

// Check validates every configured clock once.
// The clock file, if any, is re-read first. An unknown crystal is reported
// in the Report, not as an error; errors are for unreadable clock files
// and cancellation.
func (r *Runner) Check(ctx context.Context) (Report, error) {
	r.checkMu.Lock()
	defer r.checkMu.Unlock()

	clocks, err := r.clocks()
	if err != nil {
		return Report{}, err
	}

	report := Report{CheckedAt: time.Now()}
	for _, c := range clocks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := Result{Clock: c, Err: c.XTAL().Validate(r.validator, r.contextFor(c))}
		report.Results = append(report.Results, res)

		if res.OK() {
			r.logger.Debug("clock ok",
				log.String("clock", c.Name),
				log.Hz("crystal", c.Frequency),
			)
			continue
		}
		if r.config.FailFast {
			report.Aborted = true
			break
		}
	}

	r.logger.Info("check complete",
		log.Int("clocks", len(report.Results)),
		log.Int("failures", len(report.Failures())),
		log.Bool("aborted", report.Aborted),
	)
	r.last = report
	r.emitter.onReport(report)
	return report, nil
}

// LastReport returns the report of the most recent check.
func (r *Runner) LastReport() Report {
	r.checkMu.Lock()
	defer r.checkMu.Unlock()
	return r.last
}

func (r *Runner) clocks() ([]Clock, error) {
	clocks := append([]Clock(nil), r.config.Clocks...)
	if r.config.ClockFile == "" {
		return clocks, nil
	}
	fromFile, err := LoadClockFile(r.config.ClockFile)
	if err != nil {
		return nil, err
	}
	return append(clocks, fromFile...), nil
}

func (r *Runner) contextFor(c Clock) string {
	ctx := c.Context
	if ctx == "" {
		ctx = c.Name
	}
	if r.config.Context != "" {
		return r.config.Context + ": " + ctx
	}
	return ctx
}

// Start runs a first check in the background and initializes plugins.
// Returns immediately. The provided context bounds the whole run.
//
// If the first check fails the runner cancels the run, shuts its plugins
// down and ends in StateCrashed; Start may then be called again.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := r.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ClockFile: r.config.ClockFile,
		Logger:    r.logger,
		Recheck:   r.Check,
	}
	for _, p := range r.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			r.shutdownPlugins(r.active)
			r.active = nil
			_ = r.lifecycle.TransitionTo(lifecycle.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.active = append(r.active, p)
		r.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	r.lifecycle.AddWorker()
	go func() {
		defer r.lifecycle.WorkerDone()

		if err := r.lifecycle.TransitionTo(lifecycle.StateRunning, "initial check"); err != nil {
			r.logger.Error("failed to transition to running", log.Err(err))
			return
		}

		if _, err := r.Check(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("initial check failed", log.Err(err))
			r.lifecycle.Cancel()
			r.shutdownPlugins(r.takePlugins())
			_ = r.lifecycle.TransitionTo(lifecycle.StateCrashed, err.Error())
			return
		}

		<-runCtx.Done()
	}()

	return nil
}

// Stop shuts plugins down and waits for the background check to finish.
// Returns nil on graceful shutdown, lifecycle.ErrShutdownTimeout if forced.
func (r *Runner) Stop() error {
	r.mu.Lock()
	if !r.lifecycle.CanStop() {
		r.mu.Unlock()
		return ErrNotRunning
	}
	if err := r.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		r.mu.Unlock()
		return err
	}
	r.lifecycle.Cancel()
	r.mu.Unlock()

	err := r.lifecycle.WaitWithTimeout(lifecycle.ShutdownTimeout)

	r.shutdownPlugins(r.takePlugins())

	if err != nil {
		_ = r.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
	} else {
		_ = r.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
	}
	return err
}

// takePlugins hands the initialized plugins to exactly one caller.
func (r *Runner) takePlugins() []Plugin {
	r.mu.Lock()
	defer r.mu.Unlock()
	active := r.active
	r.active = nil
	return active
}

// shutdownPlugins shuts plugins down in reverse initialization order.
func (r *Runner) shutdownPlugins(plugins []Plugin) {
	shutdownCtx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			r.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (r *Runner) Status() State {
	return r.lifecycle.State()
}
