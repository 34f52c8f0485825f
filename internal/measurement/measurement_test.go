package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_SameDimension(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		from     string
		to       string
		want     float64
	}{
		{"kg to g", 2, "kg", "g", 2000},
		{"g to kg", 500, "g", "kg", 0.5},
		{"lb to g", 1, "lb", "g", 453.59237},
		{"lbs alias", 1, "lbs", "lb", 1},
		{"oz to g", 2, "oz", "g", 56.69904625},
		{"l to ml", 1.5, "l", "ml", 1500},
		{"cup to ml", 1, "cup", "ml", 236.5882365},
		{"tbsp to tsp", 1, "tbsp", "tsp", 3},
		{"dozen to ea", 2, "dozen", "ea", 24},
		{"identity", 7, "kg", "kg", 7},
		{"zero quantity", 0, "kg", "g", 0},
		{"case and whitespace", 1, " KG ", "g", 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(tc.quantity, tc.from, tc.to)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestConvert_CrossDimensionFails(t *testing.T) {
	_, err := Convert(2, "cup", "kg")
	assert.ErrorIs(t, err, ErrUnconvertible)

	_, err = Convert(1, "ea", "g")
	assert.ErrorIs(t, err, ErrUnconvertible)
}

func TestConvert_UnknownUnit(t *testing.T) {
	_, err := Convert(1, "stone", "kg")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Convert(1, "kg", "handful")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestConvertWithDensity(t *testing.T) {
	// water: 1 g/ml → 1 cup = 236.59 g
	got, err := ConvertWithDensity(1, "cup", "g", 1)
	require.NoError(t, err)
	assert.InDelta(t, 236.5882365, got, 1e-6)

	// round trip through density
	back, err := ConvertWithDensity(got, "g", "cup", 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, back, 1e-9)

	// same dimension ignores density
	got, err = ConvertWithDensity(1, "kg", "g", 0)
	require.NoError(t, err)
	assert.InDelta(t, 1000, got, 1e-9)

	_, err = ConvertWithDensity(1, "cup", "g", 0)
	assert.ErrorIs(t, err, ErrInvalidDensity)
}

func TestDimensionOf(t *testing.T) {
	dim, err := DimensionOf("lb")
	require.NoError(t, err)
	assert.Equal(t, Mass, dim)

	dim, err = DimensionOf("tbsp")
	require.NoError(t, err)
	assert.Equal(t, Volume, dim)

	_, err = DimensionOf("bundle")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	assert.True(t, Known("EA"))
	assert.False(t, Known(""))
}
