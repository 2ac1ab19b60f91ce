package xtal

// XTAL is a clock derived from a crystal. It remembers the crystal it came
// from, so a clock divided down for a CPU can still be checked against the
// part on the board.
type XTAL struct {
	base    float64
	current float64
}

// NewXTAL returns the clock of a crystal oscillating at hz.
func NewXTAL(hz float64) XTAL {
	return XTAL{base: hz, current: hz}
}

// Mul returns the clock multiplied by n. The base crystal is unchanged.
func (x XTAL) Mul(n int) XTAL {
	return XTAL{base: x.base, current: x.current * float64(n)}
}

// Div returns the clock divided by n. The base crystal is unchanged.
func (x XTAL) Div(n int) XTAL {
	return XTAL{base: x.base, current: x.current / float64(n)}
}

// Base returns the crystal frequency in Hz.
func (x XTAL) Base() float64 { return x.base }

// DValue returns the derived clock in Hz.
func (x XTAL) DValue() float64 { return x.current }

// Value returns the derived clock in whole Hz.
// The small bias keeps values such as 3579545.4545 / 3 * 3 from rounding down.
func (x XTAL) Value() uint32 {
	return uint32(x.current + 1e-3)
}

// String returns the derived clock, e.g. "3579545 Hz".
func (x XTAL) String() string {
	return FormatHz(x.current) + " Hz"
}

// Validate checks the base crystal with v, or with Default when v is nil.
func (x XTAL) Validate(v *Validator, context string) error {
	if v == nil {
		v = Default()
	}
	return v.ValidateOrExplain(x.base, context)
}
