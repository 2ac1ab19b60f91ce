package xtal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFrequency is matched by every *UnknownFrequencyError via errors.Is.
	ErrUnknownFrequency = errors.New("xtal: unknown crystal value")

	// ErrEmptyCatalog is returned by NewCatalog when no values are given.
	ErrEmptyCatalog = errors.New("xtal: empty catalog")

	// ErrUnsortedCatalog is returned by NewCatalog when values are not strictly ascending.
	ErrUnsortedCatalog = errors.New("xtal: catalog is not strictly ascending")

	// ErrInvalidFrequency is returned by ParseFrequency for malformed input.
	ErrInvalidFrequency = errors.New("xtal: invalid frequency")
)

// UnknownFrequencyError reports a value that matches no catalog entry.
// Low and High are the catalog entries around Value; at most one of them is
// absent, and only when Value lies outside the catalog range.
type UnknownFrequencyError struct {
	Value   float64
	Low     Bracket
	High    Bracket
	Context string
}

func (e *UnknownFrequencyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown crystal value %s.", FormatHz(e.Value))

	switch s := e.Suggestions(); len(s) {
	case 2:
		fmt.Fprintf(&b, " did you mean %s or %s?", FormatHz(s[0]), FormatHz(s[1]))
	case 1:
		fmt.Fprintf(&b, " did you mean %s?", FormatHz(s[0]))
	}

	if e.Context != "" {
		fmt.Fprintf(&b, " context: %s", e.Context)
	}
	return b.String()
}

// Is reports whether target is ErrUnknownFrequency.
func (e *UnknownFrequencyError) Is(target error) bool {
	return target == ErrUnknownFrequency
}

// Suggestions returns the present brackets in ascending order.
func (e *UnknownFrequencyError) Suggestions() []float64 {
	out := make([]float64, 0, 2)
	if e.Low.Valid {
		out = append(out, e.Low.Value)
	}
	if e.High.Valid {
		out = append(out, e.High.Value)
	}
	return out
}
