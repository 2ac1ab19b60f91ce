package configwatcher

import "github.com/bft-labs/xtalcheck/pkg/xtalcheck"

// WithConfigWatcher returns an xtalcheck Option that re-checks the clocks
// whenever the clock file changes.
//
// Usage:
//
//	r, err := xtalcheck.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 200 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) xtalcheck.Option {
	return xtalcheck.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher enables watching with DefaultConfig.
func WithDefaultConfigWatcher() xtalcheck.Option {
	return WithConfigWatcher(DefaultConfig())
}
