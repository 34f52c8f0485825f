// Package measurement converts quantities between kitchen measurement
// units. Conversions are only defined within a single dimension; crossing
// mass and volume requires an explicit density from the caller. A failed
// conversion is always reported as an error so callers never cost a line
// with a quantity in the wrong unit.
package measurement

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownUnit   = errors.New("unknown_unit")
	ErrUnconvertible = errors.New("unconvertible")
	ErrInvalidDensity = errors.New("invalid_density")
)

// Dimension classifies a unit. Units convert freely within a dimension.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

type unitDef struct {
	dimension Dimension
	toBase    float64 // factor to the dimension's base unit (g, ml, ea)
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg": {dimension: Mass, toBase: 0.001},
	"g":  {dimension: Mass, toBase: 1},
	"kg": {dimension: Mass, toBase: 1000},
	"oz": {dimension: Mass, toBase: 28.349523125},
	"lb": {dimension: Mass, toBase: 453.59237},
	"lbs": {dimension: Mass, toBase: 453.59237},

	// volume (base = ml)
	"ml":    {dimension: Volume, toBase: 1},
	"l":     {dimension: Volume, toBase: 1000},
	"tsp":   {dimension: Volume, toBase: 4.92892159375},
	"tbsp":  {dimension: Volume, toBase: 14.78676478125},
	"cup":   {dimension: Volume, toBase: 236.5882365},
	"fl-oz": {dimension: Volume, toBase: 29.5735295625},

	// count (base = ea)
	"ea":    {dimension: Count, toBase: 1},
	"each":  {dimension: Count, toBase: 1},
	"pc":    {dimension: Count, toBase: 1},
	"pcs":   {dimension: Count, toBase: 1},
	"dozen": {dimension: Count, toBase: 12},
}

// Convert converts quantity from one unit to another within the same
// dimension. It returns ErrUnconvertible when the units belong to
// different dimensions and ErrUnknownUnit when either unit is not in the
// table. A zero quantity converts to zero without error; the error return
// is the only signal callers may rely on.
func Convert(quantity float64, fromUnit, toUnit string) (float64, error) {
	from, ok := resolve(fromUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, fromUnit)
	}
	to, ok := resolve(toUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, toUnit)
	}

	if from.dimension != to.dimension {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnconvertible, from.dimension, to.dimension)
	}

	return quantity * from.toBase / to.toBase, nil
}

// ConvertWithDensity converts across mass and volume using an explicit
// density in g/ml. Same-dimension conversions ignore the density.
func ConvertWithDensity(quantity float64, fromUnit, toUnit string, densityGML float64) (float64, error) {
	from, ok := resolve(fromUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, fromUnit)
	}
	to, ok := resolve(toUnit)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, toUnit)
	}

	if from.dimension == to.dimension {
		return quantity * from.toBase / to.toBase, nil
	}

	if densityGML <= 0 {
		return 0, ErrInvalidDensity
	}

	var grams float64
	switch from.dimension {
	case Mass:
		grams = quantity * from.toBase
	case Volume:
		grams = quantity * from.toBase * densityGML
	default:
		return 0, fmt.Errorf("%w: %s to %s", ErrUnconvertible, from.dimension, to.dimension)
	}

	switch to.dimension {
	case Mass:
		return grams / to.toBase, nil
	case Volume:
		return grams / densityGML / to.toBase, nil
	default:
		return 0, fmt.Errorf("%w: %s to %s", ErrUnconvertible, from.dimension, to.dimension)
	}
}

// DimensionOf reports the dimension of a unit.
func DimensionOf(unit string) (Dimension, error) {
	def, ok := resolve(unit)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return def.dimension, nil
}

// Known reports whether the unit is in the conversion table.
func Known(unit string) bool {
	_, ok := resolve(unit)
	return ok
}

func resolve(unit string) (unitDef, bool) {
	def, ok := unitTable[strings.ToLower(strings.TrimSpace(unit))]
	return def, ok
}
