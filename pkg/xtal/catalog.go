package xtal

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Bracket is a catalog entry suggested for a rejected value.
// Valid is false when there is no entry on that side.
type Bracket struct {
	Value float64
	Valid bool
}

func some(v float64) Bracket { return Bracket{Value: v, Valid: true} }

// String returns the entry in whole Hz, or "none".
func (b Bracket) String() string {
	if !b.Valid {
		return "none"
	}
	return FormatHz(b.Value)
}

// FormatHz renders a frequency with no decimals.
func FormatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', 0, 64)
}

// Catalog is an immutable, strictly ascending list of frequencies in Hz.
// The zero value is not usable; build one with NewCatalog or Known.
type Catalog struct {
	values []float64
}

// NewCatalog copies values into a Catalog.
// Returns ErrEmptyCatalog or ErrUnsortedCatalog when the invariants do not hold.
func NewCatalog(values ...float64) (Catalog, error) {
	if len(values) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	for i := 1; i < len(values); i++ {
		if !(values[i-1] < values[i]) {
			return Catalog{}, fmt.Errorf("%w: entry %d (%s) follows %s",
				ErrUnsortedCatalog, i, FormatHz(values[i]), FormatHz(values[i-1]))
		}
	}
	return Catalog{values: append([]float64(nil), values...)}, nil
}

// MustCatalog is like NewCatalog but panics on error.
func MustCatalog(values ...float64) Catalog {
	c, err := NewCatalog(values...)
	if err != nil {
		panic(err)
	}
	return c
}

// Known returns the catalog of crystals and resonators seen on real hardware.
func Known() Catalog {
	return Catalog{values: knownCrystals[:]}
}

// Len returns the number of entries.
func (c Catalog) Len() int { return len(c.values) }

// At returns entry i.
func (c Catalog) At(i int) float64 { return c.values[i] }

// Min returns the smallest entry.
func (c Catalog) Min() float64 { return c.values[0] }

// Max returns the largest entry.
func (c Catalog) Max() float64 { return c.values[len(c.values)-1] }

// Values returns a copy of the entries.
func (c Catalog) Values() []float64 {
	return append([]float64(nil), c.values...)
}

// Contains reports whether hz matches an entry within tolerance.
// It does not touch any validator cache.
func (c Catalog) Contains(hz float64) bool {
	_, ok := c.search(hz)
	return ok
}

// Range returns the entries in [lo, hi].
func (c Catalog) Range(lo, hi float64) []float64 {
	var out []float64
	for _, v := range c.values {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

// machineEpsilon is the float64 spacing at 1.0.
const machineEpsilon = 0x1p-52

// tolerance is the relative distance below which two frequencies are the same part.
const tolerance = 2 * machineEpsilon

func matches(hz, entry float64) bool {
	return math.Abs((hz-entry)/hz) <= tolerance
}

// search walks the catalog by halving a power-of-two step. It returns the
// index of a matching entry, or on a miss the index it landed on: the
// largest entry below hz, or 0 when hz is below every entry.
// Probes past the end count as "too high".
func (c Catalog) search(hz float64) (int, bool) {
	last := uint(len(c.values) - 1)
	step := highestPowerOfTwo(last)
	slot := step

	for step != 0 {
		if slot > last {
			slot ^= step | step>>1
		} else {
			entry := c.values[slot]
			if matches(hz, entry) {
				return int(slot), true
			}
			if hz > entry {
				slot |= step >> 1
			} else {
				slot ^= step | step>>1
			}
		}
		step >>= 1
	}

	return int(slot), matches(hz, c.values[slot])
}

// brackets derives the suggestions for a miss that landed on slot.
func (c Catalog) brackets(hz float64, slot int) (low, high Bracket) {
	entry := c.values[slot]
	if hz < entry {
		if slot > 0 {
			low = some(c.values[slot-1])
		}
		return low, some(entry)
	}
	if slot < len(c.values)-1 {
		high = some(c.values[slot+1])
	}
	return some(entry), high
}

// highestPowerOfTwo returns the largest power of two not above n, or 0 for n == 0.
func highestPowerOfTwo(n uint) uint {
	if n == 0 {
		return 0
	}
	return 1 << (bits.Len(n) - 1)
}
