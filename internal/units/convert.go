package units

import (
	"fmt"

	"github.com/Veraticus/larder/internal/model"
)

// FailureKind classifies why a conversion could not be made.
type FailureKind string

// Conversion failures.
const (
	FailureNone         FailureKind = ""
	FailureUnknownUnit  FailureKind = "unknown_unit"
	FailureIncompatible FailureKind = "incompatible"
	FailureUnsafe       FailureKind = "unsafe"
	FailureNoDensity    FailureKind = "no_density"
)

// ConversionResult is the outcome of Convert. When OK is false, Value is zero and
// the quantities must be treated as not comparable.
type ConversionResult struct {
	Failure FailureKind
	Reason  string
	Value   float64
	OK      bool
}

func failed(kind FailureKind, format string, args ...any) ConversionResult {
	return ConversionResult{Failure: kind, Reason: fmt.Sprintf(format, args...)}
}

// Convert converts value from one unit to another. ingredient may be nil, in which
// case only same-dimension conversions can succeed.
func Convert(value float64, fromUnit, toUnit string, ingredient *model.CanonicalIngredient) ConversionResult {
	from, ok := resolve(fromUnit)
	if !ok {
		return failed(FailureUnknownUnit, "unknown unit %q", fromUnit)
	}
	to, ok := resolve(toUnit)
	if !ok {
		return failed(FailureUnknownUnit, "unknown unit %q", toUnit)
	}

	if from == to {
		return ConversionResult{Value: value, OK: true}
	}

	fd, td := table[from], table[to]

	if fd.dim == td.dim {
		if fd.dim == DimensionOther {
			return failed(FailureIncompatible, "cannot convert %s to %s", from, to)
		}
		return ConversionResult{Value: value * fd.factor / td.factor, OK: true}
	}

	crossVolumeMass := (fd.dim == DimensionVolume && td.dim == DimensionMass) ||
		(fd.dim == DimensionMass && td.dim == DimensionVolume)
	if !crossVolumeMass {
		return failed(FailureIncompatible, "cannot convert %s (%s) to %s (%s)", from, fd.dim, to, td.dim)
	}

	if ingredient == nil {
		return failed(FailureNoDensity, "converting %s to %s needs an ingredient density", from, to)
	}
	if !ingredient.SafeConversions {
		return failed(FailureUnsafe, "automatic %s to %s conversion is not safe for %s", fd.dim, td.dim, ingredient.Name)
	}
	density, ok := Density(*ingredient)
	if !ok {
		return failed(FailureNoDensity, "no known density for %s", ingredient.Name)
	}

	base := value * fd.factor
	if fd.dim == DimensionVolume {
		// ml -> g
		return ConversionResult{Value: base * density / td.factor, OK: true}
	}
	// g -> ml
	return ConversionResult{Value: base / density / td.factor, OK: true}
}
