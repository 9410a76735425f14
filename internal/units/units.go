// Package units reconciles recipe and inventory quantities across measurement systems.
//
// Same-dimension conversions (volume, mass, count) use static factor tables and
// always succeed. Volume to mass conversions need the ingredient's density and its
// SafeConversions flag; without both the conversion fails with a reason instead of
// guessing.
package units

import "strings"

// Dimension is the physical quantity a unit measures.
type Dimension string

// Dimensions.
const (
	DimensionVolume  Dimension = "volume"
	DimensionMass    Dimension = "mass"
	DimensionCount   Dimension = "count"
	DimensionOther   Dimension = "other"
	DimensionUnknown Dimension = "unknown"
)

// Each is the implicit unit of a quantity written without one ("2 eggs").
const Each = "each"

type unitDef struct {
	dim    Dimension
	factor float64 // multiples of the dimension's base unit (ml, g, each)
}

var table = map[string]unitDef{
	// volume, base ml
	"ml":     {DimensionVolume, 1},
	"cl":     {DimensionVolume, 10},
	"dl":     {DimensionVolume, 100},
	"l":      {DimensionVolume, 1000},
	"tsp":    {DimensionVolume, 4.92892},
	"tbsp":   {DimensionVolume, 14.7868},
	"fl oz":  {DimensionVolume, 29.5735},
	"cup":    {DimensionVolume, 236.588},
	"pint":   {DimensionVolume, 473.176},
	"quart":  {DimensionVolume, 946.353},
	"gallon": {DimensionVolume, 3785.41},
	"pinch":  {DimensionVolume, 0.3081},
	"dash":   {DimensionVolume, 0.6161},

	// mass, base g
	"mg": {DimensionMass, 0.001},
	"g":  {DimensionMass, 1},
	"kg": {DimensionMass, 1000},
	"oz": {DimensionMass, 28.3495},
	"lb": {DimensionMass, 453.592},

	// count, base each
	Each:    {DimensionCount, 1},
	"pair":  {DimensionCount, 2},
	"dozen": {DimensionCount, 12},

	// only comparable with themselves
	"clove":   {DimensionOther, 1},
	"can":     {DimensionOther, 1},
	"jar":     {DimensionOther, 1},
	"bottle":  {DimensionOther, 1},
	"package": {DimensionOther, 1},
	"bag":     {DimensionOther, 1},
	"box":     {DimensionOther, 1},
	"bunch":   {DimensionOther, 1},
	"head":    {DimensionOther, 1},
	"slice":   {DimensionOther, 1},
	"stick":   {DimensionOther, 1},
	"sprig":   {DimensionOther, 1},
	"handful": {DimensionOther, 1},
	"stalk":   {DimensionOther, 1},
	"fillet":  {DimensionOther, 1},
}

var aliases = map[string]string{
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml", "mls": "ml",
	"centiliter": "cl", "centiliters": "cl",
	"deciliter": "dl", "deciliters": "dl",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l", "ltr": "l",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsps": "tsp", "tspn": "tsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tblsp": "tbsp",
	"fluid ounce": "fl oz", "fluid ounces": "fl oz", "floz": "fl oz", "fl. oz": "fl oz",
	"cups": "cup", "c": "cup",
	"pints": "pint", "pt": "pint",
	"quarts": "quart", "qt": "quart", "qts": "quart",
	"gallons": "gallon", "gal": "gallon",
	"pinches":   "pinch",
	"dashes":    "dash",
	"milligram": "mg", "milligrams": "mg",
	"gram": "g", "grams": "g", "gr": "g", "gm": "g",
	"kilogram": "kg", "kilograms": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg",
	"ounce": "oz", "ounces": "oz",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"piece": Each, "pieces": Each, "pc": Each, "pcs": Each, "ea": Each, "whole": Each, "unit": Each, "units": Each,
	"pairs":  "pair",
	"dozens": "dozen", "doz": "dozen",
	"cloves": "clove",
	"cans":   "can", "tin": "can", "tins": "can",
	"jars":     "jar",
	"bottles":  "bottle",
	"packages": "package", "pkg": "package", "pkgs": "package", "packet": "package", "packets": "package",
	"bags":     "bag",
	"boxes":    "box",
	"bunches":  "bunch",
	"heads":    "head",
	"slices":   "slice",
	"sticks":   "stick",
	"sprigs":   "sprig",
	"handfuls": "handful",
	"stalks":   "stalk",
	"fillets":  "fillet",
}

// Canonical returns the canonical symbol for a unit spelling.
// "T" and "t" follow the cookbook convention for tablespoon and teaspoon.
func Canonical(unit string) (string, bool) {
	u := strings.TrimSpace(unit)
	switch u {
	case "T", "Tbsp", "TBSP":
		return "tbsp", true
	case "t":
		return "tsp", true
	}

	u = strings.ToLower(strings.TrimSuffix(u, "."))
	u = strings.Join(strings.Fields(u), " ")
	if u == "" {
		return "", false
	}
	if _, ok := table[u]; ok {
		return u, true
	}
	if c, ok := aliases[u]; ok {
		return c, true
	}
	return "", false
}

// DimensionOf reports the dimension of a unit. An empty unit counts as Each.
func DimensionOf(unit string) Dimension {
	sym, ok := resolve(unit)
	if !ok {
		return DimensionUnknown
	}
	return table[sym].dim
}

// resolve canonicalizes a unit, treating "" as Each.
func resolve(unit string) (string, bool) {
	if strings.TrimSpace(unit) == "" {
		return Each, true
	}
	return Canonical(unit)
}
