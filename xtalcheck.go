// Package xtalcheck validates clock frequencies against the catalog of
// crystal oscillators that exist as real parts.
//
// Example usage:
//
//	if err := xtalcheck.ValidateOrExplain(14_318_000, "Context: video"); err != nil {
//	    log.Fatal(err) // unknown crystal value 14318000. did you mean 14314000 or 14318181? ...
//	}
//
//	report, err := xtalcheck.Check(context.Background(), xtalcheck.Config{
//	    ClockFile: "boards/pacman.toml",
//	})
package xtalcheck

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtal"
	runner "github.com/bft-labs/xtalcheck/pkg/xtalcheck"
)

// Config selects the clocks to check.
type Config = runner.Config

// Clock is one clock on a board, derived from a crystal.
type Clock = runner.Clock

// Report is the outcome of one check.
type Report = runner.Report

// Validate reports whether hz is a known crystal frequency.
func Validate(hz float64) bool {
	return xtal.Validate(hz)
}

// ValidateOrExplain returns nil for a known crystal frequency, otherwise an
// error naming the nearest known values and the given context.
func ValidateOrExplain(hz float64, context string) error {
	return xtal.ValidateOrExplain(hz, context)
}

// Check validates every clock of cfg once using the shared validator.
func Check(ctx context.Context, cfg Config) (Report, error) {
	r, err := runner.New(cfg,
		runner.WithLogger(log.NewZerologAdapterWithLogger(Logger())),
		runner.WithValidator(xtal.Default()),
	)
	if err != nil {
		return Report{}, err
	}
	return r.Check(ctx)
}

// Logger returns the package-level zerolog logger used by Check.
func Logger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
