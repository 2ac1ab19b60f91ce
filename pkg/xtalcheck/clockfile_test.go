package xtalcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardTOML = `
[[clock]]
name = "maincpu"
frequency = "14.318181MHz"
divisor = 4
context = "Z80 main CPU"

[[clock]]
name = "rtc"
frequency = 32768

[[clock]]
name = "sound"
frequency = 3579545.0
`

func TestParseClocks(t *testing.T) {
	clocks, err := ParseClocks([]byte(boardTOML))
	require.NoError(t, err)
	require.Len(t, clocks, 3)

	assert.Equal(t, Clock{
		Name:      "maincpu",
		Frequency: 14_318_181,
		Divisor:   4,
		Context:   "Z80 main CPU",
	}, clocks[0])
	assert.Equal(t, 32_768.0, clocks[1].Frequency)
	assert.Equal(t, 3_579_545.0, clocks[2].Frequency)
}

func TestParseClocks_Errors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad toml", "[[clock]\nname ="},
		{"missing frequency", "[[clock]]\nname = \"cpu\""},
		{"bad unit", "[[clock]]\nname = \"cpu\"\nfrequency = \"12 furlongs\""},
		{"bool frequency", "[[clock]]\nname = \"cpu\"\nfrequency = true"},
		{"missing name", "[[clock]]\nfrequency = 1000000"},
		{"negative divisor", "[[clock]]\nname = \"cpu\"\nfrequency = 1000000\ndivisor = -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClocks([]byte(tt.toml))
			assert.ErrorIs(t, err, ErrClockFile)
		})
	}
}

func TestLoadClockFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(boardTOML), 0o644))

	clocks, err := LoadClockFile(path)
	require.NoError(t, err)
	assert.Len(t, clocks, 3)

	_, err = LoadClockFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, ErrClockFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
