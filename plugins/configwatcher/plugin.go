// Package configwatcher re-checks the clocks of a running xtalcheck.Runner
// whenever its clock file changes.
package configwatcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/xtalcheck/pkg/lifecycle"
	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtalcheck"
)

// Plugin watches the clock file and triggers a recheck after each change.
// Editors often save by writing a temporary file and renaming it, so the
// parent directory is watched rather than the file itself.
type Plugin struct {
	debounceDelay time.Duration
	retryInterval time.Duration
	maxRetries    int

	mu        sync.Mutex
	clockFile string
	logger    log.Logger
	recheck   func(ctx context.Context) (xtalcheck.Report, error)
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	rechecks  int
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the quiet period after the last change before rechecking.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// RetryInterval is the first delay before retrying a recheck that could
	// not read the clock file. It doubles up to 8x.
	// Default: 250 milliseconds
	RetryInterval time.Duration

	// MaxRetries bounds retries of one recheck.
	// Default: 5
	MaxRetries int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		RetryInterval: 250 * time.Millisecond,
		MaxRetries:    5,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	def := DefaultConfig()
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = def.DebounceDelay
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		retryInterval: cfg.RetryInterval,
		maxRetries:    cfg.MaxRetries,
		logger:        log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching cfg.ClockFile.
// Without a clock file the plugin logs a warning and stays idle.
func (p *Plugin) Initialize(ctx context.Context, cfg xtalcheck.PluginConfig) error {
	p.mu.Lock()
	p.clockFile = cfg.ClockFile
	p.recheck = cfg.Recheck
	if cfg.Logger != nil {
		p.logger = log.With(cfg.Logger, log.String("plugin", p.Name()))
	}
	p.mu.Unlock()

	if p.clockFile == "" || p.recheck == nil {
		p.logger.Warn("config watcher disabled: no clock file configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(p.clockFile)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher watching clock file", log.String("path", p.clockFile))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher and waits for an in-flight recheck.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// Rechecks returns how many rechecks completed successfully.
func (p *Plugin) Rechecks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rechecks
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.clockFile)
	var timer *time.Timer
	var debounce <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(p.debounceDelay)
			} else {
				timer.Stop()
				timer.Reset(p.debounceDelay)
			}
			debounce = timer.C

		case <-debounce:
			debounce = nil
			p.recheckWithRetry(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error", log.Err(err))
		}
	}
}

// recheckWithRetry retries while the clock file cannot be read, which
// happens when it is caught half written.
func (p *Plugin) recheckWithRetry(ctx context.Context) {
	backoff := lifecycle.NewBackoff(p.retryInterval, 8*p.retryInterval)

	for attempt := 0; ; attempt++ {
		report, err := p.recheck(ctx)
		if err == nil {
			p.mu.Lock()
			p.rechecks++
			p.mu.Unlock()

			if report.OK() {
				p.logger.Info("config watcher: clocks ok", log.Int("clocks", len(report.Results)))
			} else {
				p.logger.Warn("config watcher: unknown crystals",
					log.Int("clocks", len(report.Results)),
					log.Int("failures", len(report.Failures())),
				)
			}
			return
		}

		if !errors.Is(err, xtalcheck.ErrClockFile) || attempt >= p.maxRetries {
			p.logger.Error("config watcher: recheck failed",
				log.Err(err),
				log.Int("attempts", attempt+1),
			)
			return
		}
		if backoff.Wait(ctx) != nil {
			return
		}
	}
}

// Ensure Plugin implements xtalcheck.Plugin.
var _ xtalcheck.Plugin = (*Plugin)(nil)
