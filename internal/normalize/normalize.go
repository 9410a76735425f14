// Package normalize canonicalizes free-text ingredient names into comparable keys.
//
// Normalization is deterministic and total: it lowercases, strips diacritics and
// punctuation, collapses whitespace, singularizes each token and removes filler
// words such as "fresh" or "organic" as long as something is left afterwards.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns ingredient text into a matching key. It is safe for concurrent use.
type Normalizer struct {
	filler map[string]struct{}
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithFillerWords replaces the filler-word list.
func WithFillerWords(words ...string) Option {
	return func(n *Normalizer) {
		n.filler = make(map[string]struct{}, len(words))
		for _, w := range words {
			n.filler[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
}

// New creates a Normalizer using DefaultFillerWords unless overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	WithFillerWords(DefaultFillerWords...)(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize normalizes text with the default filler-word list.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize returns the matching key for text. Empty input yields "".
func (n *Normalizer) Normalize(text string) string {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return ""
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := n.filler[tok]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		kept = tokens
	}

	return strings.Join(kept, " ")
}

// Tokens folds text and splits it into singularized tokens, without filler removal.
func Tokens(text string) []string {
	folded := fold(text)
	if folded == "" {
		return nil
	}

	fields := strings.Fields(folded)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, Singular(f))
	}
	return out
}

// fold lowercases, removes combining marks and maps everything that is not a
// letter or digit to a space.
func fold(text string) string {
	if text == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '\'' || r == '’':
			// "baker's" -> "bakers"
		default:
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
