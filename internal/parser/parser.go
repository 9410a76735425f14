// Package parser splits raw recipe lines into quantity, unit, ingredient name and
// preparation note.
//
// Parsing never fails. Lines are tried against an ordered list of patterns and the
// first structural match wins; a line nothing recognizes degrades to "the whole
// string is the ingredient name" with a low confidence.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/units"
)

// Parse confidences, highest for the most structure recognized.
const (
	ConfidenceQuantityUnitName = 0.95
	ConfidenceQuantityName     = 0.8
	ConfidenceNameOnly         = 0.5
	ConfidenceFallback         = 0.1
)

const number = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?|\.\d+`

var (
	// quantityPrefix captures a leading quantity, optionally a range, and the rest of the line.
	quantityPrefix = regexp.MustCompile(`^(` + number + `)(?:\s*(?:-|–|to)\s*(?:` + number + `))?\s*(.*)$`)

	// wordQuantity captures "a", "an", "one" ... as a quantity.
	wordQuantity = regexp.MustCompile(`(?i)^(a|an|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|half)\s+(.+)$`)

	hasLetter = regexp.MustCompile(`\pL`)

	parenthetical = regexp.MustCompile(`\(([^)]*)\)`)

	toTaste = regexp.MustCompile(`(?i)\s+(to taste|as needed|for serving|for garnish)$`)
)

var wordNumbers = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "half": 0.5,
}

var vulgarFractions = map[rune]string{
	'¼': "1/4", '½': "1/2", '¾': "3/4",
	'⅓': "1/3", '⅔': "2/3",
	'⅕': "1/5", '⅖': "2/5", '⅗': "3/5", '⅘': "4/5",
	'⅙': "1/6", '⅚': "5/6",
	'⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// Parse reads one raw recipe line.
func Parse(raw string) model.ParsedIngredient {
	text := prepare(raw)
	result := model.ParsedIngredient{Raw: raw}

	if text == "" {
		return result
	}

	for _, p := range patterns {
		if p(text, &result) {
			return result
		}
	}

	result.Ingredient = strings.TrimSpace(raw)
	result.Confidence = ConfidenceFallback
	return result
}

// ParseAll parses every line, preserving order.
func ParseAll(lines []string) []model.ParsedIngredient {
	out := make([]model.ParsedIngredient, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out
}

type pattern func(text string, out *model.ParsedIngredient) bool

// patterns are tried in order; the first to accept the line wins.
var patterns = []pattern{
	quantityUnitName,
	quantityName,
	nameOnly,
}

func quantityUnitName(text string, out *model.ParsedIngredient) bool {
	qty, rest, ok := leadingQuantity(text)
	if !ok {
		return false
	}
	unit, after, ok := leadingUnit(rest)
	if !ok {
		return false
	}
	name, prep := splitName(after)
	if name == "" {
		return false
	}

	out.Quantity = &qty
	out.Unit = &unit
	out.Ingredient = name
	out.Preparation = prep
	out.Confidence = ConfidenceQuantityUnitName
	return true
}

func quantityName(text string, out *model.ParsedIngredient) bool {
	qty, rest, ok := leadingQuantity(text)
	if !ok {
		return false
	}
	name, prep := splitName(rest)
	if name == "" {
		return false
	}

	out.Quantity = &qty
	out.Ingredient = name
	out.Preparation = prep
	out.Confidence = ConfidenceQuantityName
	return true
}

func nameOnly(text string, out *model.ParsedIngredient) bool {
	if !hasLetter.MatchString(text) {
		return false
	}
	name, prep := splitName(text)
	if name == "" {
		return false
	}

	out.Ingredient = name
	out.Preparation = prep
	out.Confidence = ConfidenceNameOnly
	return true
}

// prepare expands unicode fractions and collapses whitespace.
func prepare(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	var prev rune
	for _, r := range raw {
		if frac, ok := vulgarFractions[r]; ok {
			if prev >= '0' && prev <= '9' {
				b.WriteByte(' ')
			}
			b.WriteString(frac)
			b.WriteByte(' ')
			prev = ' '
			continue
		}
		if r == '⁄' {
			r = '/'
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// leadingQuantity reads a numeric or word quantity from the start of text.
// Ranges resolve to their lower bound.
func leadingQuantity(text string) (float64, string, bool) {
	if m := quantityPrefix.FindStringSubmatch(text); m != nil {
		qty, ok := parseNumber(m[1])
		if !ok || qty <= 0 {
			return 0, "", false
		}
		return qty, strings.TrimSpace(m[2]), true
	}
	if m := wordQuantity.FindStringSubmatch(text); m != nil {
		return wordNumbers[strings.ToLower(m[1])], strings.TrimSpace(m[2]), true
	}
	return 0, "", false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if whole, frac, ok := strings.Cut(s, " "); ok {
		w, okW := parseNumber(whole)
		f, okF := parseNumber(frac)
		return w + f, okW && okF
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// leadingUnit recognizes a one- or two-word unit at the start of text.
func leadingUnit(text string) (string, string, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", "", false
	}

	for n := min(2, len(words)); n >= 1; n-- {
		candidate := strings.Join(words[:n], " ")
		if unit, ok := units.Canonical(candidate); ok {
			rest := strings.Join(words[n:], " ")
			rest = strings.TrimPrefix(rest, "of ")
			return unit, rest, true
		}
	}
	return "", "", false
}

// splitName separates the core ingredient name from its preparation notes.
func splitName(text string) (string, string) {
	var notes []string

	text = parenthetical.ReplaceAllStringFunc(text, func(p string) string {
		if inner := strings.TrimSpace(p[1 : len(p)-1]); inner != "" {
			notes = append(notes, inner)
		}
		return " "
	})

	if name, note, ok := strings.Cut(text, ","); ok {
		text = name
		if note = strings.TrimSpace(note); note != "" {
			notes = append(notes, note)
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimPrefix(text, "of ")

	if m := toTaste.FindStringSubmatchIndex(text); m != nil {
		notes = append(notes, text[m[2]:m[3]])
		text = text[:m[0]]
	}

	words := strings.Fields(text)
	lead := 0
	for lead < len(words)-1 && isPrepWord(words[lead]) {
		lead++
	}
	if lead > 0 {
		notes = append([]string{strings.Join(words[:lead], " ")}, notes...)
		words = words[lead:]
	}

	name := strings.Trim(strings.Join(words, " "), " .;:-")
	return name, strings.Join(notes, "; ")
}
