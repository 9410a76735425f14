package parser

import "strings"

// prepWords describe how an ingredient is prepared rather than what it is.
var prepWords = map[string]struct{}{
	"chopped":     {},
	"diced":       {},
	"minced":      {},
	"sliced":      {},
	"grated":      {},
	"shredded":    {},
	"crushed":     {},
	"melted":      {},
	"softened":    {},
	"beaten":      {},
	"peeled":      {},
	"cubed":       {},
	"julienned":   {},
	"toasted":     {},
	"cooked":      {},
	"drained":     {},
	"rinsed":      {},
	"halved":      {},
	"quartered":   {},
	"trimmed":     {},
	"zested":      {},
	"juiced":      {},
	"sifted":      {},
	"packed":      {},
	"finely":      {},
	"roughly":     {},
	"coarsely":    {},
	"thinly":      {},
	"lightly":     {},
	"freshly":     {},
	"and":         {},
	"room":        {},
	"temperature": {},
}

func isPrepWord(word string) bool {
	_, ok := prepWords[strings.ToLower(strings.Trim(word, ",."))]
	return ok
}
