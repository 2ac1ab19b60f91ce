package xtal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXTAL_Derivation(t *testing.T) {
	x := NewXTAL(14_318_181)
	cpu := x.Div(4)

	assert.Equal(t, 14_318_181.0, cpu.Base())
	assert.InDelta(t, 3_579_545.25, cpu.DValue(), 1e-6)
	assert.Equal(t, uint32(3_579_545), cpu.Value())
	assert.Equal(t, "3579545 Hz", cpu.String())

	back := cpu.Mul(4)
	assert.Equal(t, uint32(14_318_181), back.Value())
	assert.Equal(t, x.Base(), back.Base())
}

func TestXTAL_ValueRoundingBias(t *testing.T) {
	x := NewXTAL(315e6 / 88).Div(3).Mul(3)
	assert.Equal(t, uint32(3_579_545), x.Value())
}

func TestXTAL_ValidateChecksBase(t *testing.T) {
	v := New(smallCatalog())

	// The derived clock is not in the catalog, the crystal is.
	require.NoError(t, NewXTAL(4_000_000).Div(3).Validate(v, "cpu"))

	err := NewXTAL(3_000_000).Mul(2).Validate(v, "cpu")
	var ufe *UnknownFrequencyError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, 3_000_000.0, ufe.Value)
}

func TestXTAL_ValidateDefault(t *testing.T) {
	assert.NoError(t, NewXTAL(32_768).Validate(nil, "rtc"))
}
