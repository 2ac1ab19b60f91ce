package xtal

import (
	"sync"

	"github.com/bft-labs/xtalcheck/pkg/log"
)

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the process-wide validator over Known.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New(Known())
	})
	return defaultValidator
}

// Validate checks hz with the Default validator.
func Validate(hz float64) bool {
	return Default().Validate(hz)
}

// ValidateOrExplain checks hz with the Default validator.
func ValidateOrExplain(hz float64, context string) error {
	return Default().ValidateOrExplain(hz, context)
}

// Fatal returns a FailureHandler that logs the rejection at error level and
// calls exit(1). With a nil exit it panics with the error instead.
func Fatal(logger log.Logger, exit func(code int)) FailureHandler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return func(err *UnknownFrequencyError) {
		logger.Error("fatal: unknown crystal value",
			log.Err(err),
			log.String("context", err.Context),
		)
		if exit == nil {
			panic(err)
		}
		exit(1)
	}
}
