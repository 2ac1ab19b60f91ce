package xtalcheck

import (
	"fmt"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

// Clock is one clock on a board, derived from a crystal.
type Clock struct {
	Name      string
	Frequency float64 // crystal frequency in Hz

	// Multiplier and Divisor derive the clock the part actually sees.
	// Zero means 1.
	Multiplier int
	Divisor    int

	// Context describes where the clock is used. Defaults to Name.
	Context string
}

// XTAL returns the derived clock.
func (c Clock) XTAL() xtal.XTAL {
	x := xtal.NewXTAL(c.Frequency)
	if c.Multiplier > 1 {
		x = x.Mul(c.Multiplier)
	}
	if c.Divisor > 1 {
		x = x.Div(c.Divisor)
	}
	return x
}

func (c Clock) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: clock name is required", ErrInvalidConfig)
	}
	if !(c.Frequency > 0) {
		return fmt.Errorf("%w: clock %q: frequency must be positive", ErrInvalidConfig, c.Name)
	}
	if c.Multiplier < 0 || c.Divisor < 0 {
		return fmt.Errorf("%w: clock %q: multiplier and divisor must not be negative", ErrInvalidConfig, c.Name)
	}
	return nil
}

// Config configures a Runner.
type Config struct {
	// ClockFile is a TOML file of [[clock]] tables, re-read on every check.
	ClockFile string

	// Clocks are checked before the clocks of ClockFile.
	Clocks []Clock

	// Context prefixes the context of every clock, e.g. the board name.
	Context string

	// FailFast stops a check at the first unknown crystal.
	FailFast bool
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.ClockFile == "" && len(c.Clocks) == 0 {
		return ErrNoClocks
	}
	for _, clk := range c.Clocks {
		if err := clk.validate(); err != nil {
			return err
		}
	}
	return nil
}
