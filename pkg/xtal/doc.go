// Package xtal validates oscillator frequencies against a catalog of
// crystals and resonators known to exist as real parts.
//
// Clock speeds measured with a frequency counter are never exact. Before a
// measured value is used it should be matched to a manufactured part; this
// package does the matching and, when nothing matches, reports the two
// catalog entries around the value so the caller can say "did you mean X or
// Y?".
//
// # Usage
//
// Validate against the built-in table:
//
//	if err := xtal.ValidateOrExplain(14_318_180, "main cpu"); err != nil {
//	    return err
//	}
//
// Or own a validator with its own catalog and logger:
//
//	v := xtal.New(xtal.MustCatalog(1e6, 2e6, 4e6),
//	    xtal.WithLogger(logger),
//	    xtal.WithMetrics(xtal.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//	low, high, ok := v.Check(1_500_000)
//
// # Matching
//
// A value matches a catalog entry when abs((value-entry)/value) is at most
// twice the float64 machine epsilon. The tolerance absorbs rounding in
// literal constants only. It is not a manufacturing tolerance.
//
// # Concurrency
//
// A Validator keeps a one-entry cache of the last matched value and the
// brackets of the last failure. All of it is guarded by a single mutex held
// for the whole of a call, so a Validator may be shared between goroutines.
// Use Check rather than Validate followed by Brackets when other goroutines
// share the validator.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package xtal
