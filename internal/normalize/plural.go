package normalize

import "strings"

// invariant words end in "s" but are not plurals.
var invariant = map[string]struct{}{
	"asparagus": {},
	"couscous":  {},
	"hummus":    {},
	"molasses":  {},
	"swiss":     {},
	"brussels":  {},
	"grits":     {},
	"series":    {},
	"species":   {},
	"citrus":    {},
	"hibiscus":  {},
}

var irregular = map[string]string{
	"leaves":    "leaf",
	"loaves":    "loaf",
	"halves":    "half",
	"knives":    "knife",
	"potatoes":  "potato",
	"tomatoes":  "tomato",
	"mangoes":   "mango",
	"geese":     "goose",
	"cloves":    "clove",
	"olives":    "olive",
	"chives":    "chive",
	"anchovies": "anchovy",
	"cookies":   "cookie",
	"pies":      "pie",
}

// Singular returns a best-effort singular form of a lowercase token.
func Singular(word string) string {
	if len(word) <= 3 {
		return word
	}
	if _, ok := invariant[word]; ok {
		return word
	}
	if s, ok := irregular[word]; ok {
		return s
	}

	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"),
		strings.HasSuffix(word, "us"),
		strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}
