package units

import "github.com/Veraticus/larder/internal/model"

// groupDensities are fallback densities in g/ml for ingredients that carry a
// density group but no explicit density.
var groupDensities = map[string]float64{
	"water":       1.0,
	"milk":        1.03,
	"cream":       1.01,
	"oil":         0.92,
	"butter":      0.911,
	"honey":       1.42,
	"syrup":       1.33,
	"flour":       0.53,
	"sugar":       0.85,
	"brown_sugar": 0.93,
	"powdered":    0.56,
	"salt":        1.2,
	"rice":        0.85,
	"oats":        0.41,
	"cocoa":       0.46,
	"nuts":        0.55,
	"grated":      0.45,
	"yogurt":      1.03,
}

// Density returns the ingredient's density in g/ml, falling back to its
// density group's default.
func Density(ing model.CanonicalIngredient) (float64, bool) {
	if ing.Density > 0 {
		return ing.Density, true
	}
	if d, ok := groupDensities[ing.DensityGroup]; ok {
		return d, true
	}
	return 0, false
}
