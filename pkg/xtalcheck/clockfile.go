package xtalcheck

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

type clockFile struct {
	Clocks []fileClock `toml:"clock"`
}

// fileClock mirrors Clock; frequency may be a number or a string like "14.318181MHz".
type fileClock struct {
	Name       string      `toml:"name"`
	Frequency  interface{} `toml:"frequency"`
	Multiplier int         `toml:"multiplier"`
	Divisor    int         `toml:"divisor"`
	Context    string      `toml:"context"`
}

// LoadClockFile reads and parses a TOML clock file.
func LoadClockFile(path string) ([]Clock, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClockFile, err)
	}
	clocks, err := ParseClocks(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clocks, nil
}

// ParseClocks parses TOML [[clock]] tables.
func ParseClocks(data []byte) ([]Clock, error) {
	var f clockFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClockFile, err)
	}

	clocks := make([]Clock, 0, len(f.Clocks))
	for i, fc := range f.Clocks {
		hz, err := frequencyOf(fc.Frequency)
		if err != nil {
			return nil, fmt.Errorf("%w: clock %d (%q): %w", ErrClockFile, i, fc.Name, err)
		}
		c := Clock{
			Name:       fc.Name,
			Frequency:  hz,
			Multiplier: fc.Multiplier,
			Divisor:    fc.Divisor,
			Context:    fc.Context,
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: clock %d: %w", ErrClockFile, i, err)
		}
		clocks = append(clocks, c)
	}
	return clocks, nil
}

func frequencyOf(v interface{}) (float64, error) {
	switch f := v.(type) {
	case int64:
		return float64(f), nil
	case float64:
		return f, nil
	case string:
		return xtal.ParseFrequency(f)
	case nil:
		return 0, fmt.Errorf("frequency is required")
	default:
		return 0, fmt.Errorf("frequency has unsupported type %T", v)
	}
}
