// Package tokenize splits note text into words and sentences and
// canonicalizes word forms for matching. Word and sentence boundaries follow
// Unicode UAX #29 segmentation; punctuation-only tokens are dropped so
// malformed input degrades to empty slices instead of errors.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Words returns the word tokens of text in document order. Tokens without a
// letter or digit are discarded.
func Words(text string) []string {
	var out []string
	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		if !hasLetterOrDigit(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Sentences returns the sentences of text in document order, trimmed of
// surrounding whitespace. Empty segments are discarded.
func Sentences(text string) []string {
	var out []string
	segs := sentences.FromString(text)
	for segs.Next() {
		s := strings.TrimSpace(segs.Value())
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NormalizeWord lowercases a word, strips a trailing possessive 's, and
// strips a single trailing plural s. Words ending in "bs" keep their s so
// the "bs" direction abbreviation survives; words ending in "ss" keep
// theirs so normalization stays idempotent, and words of two characters or
// fewer are too short to be plurals (protects "fs").
func NormalizeWord(word string) string {
	w := strings.ToLower(word)
	w = strings.TrimSuffix(w, "'s")
	w = strings.TrimSuffix(w, "’s")
	if len(w) > 2 && strings.HasSuffix(w, "s") &&
		!strings.HasSuffix(w, "bs") && !strings.HasSuffix(w, "ss") {
		w = strings.TrimSuffix(w, "s")
	}
	return w
}

// NormalizeTrickName normalizes each word of a trick name and drops empties.
func NormalizeTrickName(name string) []string {
	raw := Words(name)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		norm := NormalizeWord(w)
		if norm == "" {
			continue
		}
		out = append(out, norm)
	}
	return out
}

// NormalizeText normalizes every word of text and joins them with single
// spaces. Useful for substring checks against normalized trick names.
func NormalizeText(text string) string {
	raw := Words(text)
	norm := make([]string, 0, len(raw))
	for _, w := range raw {
		n := NormalizeWord(w)
		if n == "" {
			continue
		}
		norm = append(norm, n)
	}
	return strings.Join(norm, " ")
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
