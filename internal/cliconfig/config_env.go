package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (XTALCHECK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("clocks", os.Getenv(EnvPrefix+"CLOCK_FILE"), &cfg.ClockFile)
	s.setString("context", os.Getenv(EnvPrefix+"CONTEXT"), &cfg.Context)
	s.setString("metrics-addr", os.Getenv(EnvPrefix+"METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE_DELAY"), &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch)
	s.setBoolFromString("fail-fast", os.Getenv(EnvPrefix+"FAIL_FAST"), &cfg.FailFast)

	return nil
}
