package summary

import (
	"strings"

	"github.com/skatelog/tricksense/pkg/tokenize"
)

// Lexicon holds the lexical weight tables the summarizer scores with.
// Supplied as configuration data; DefaultLexicon covers deployments that
// bring none of their own.
type Lexicon struct {
	Achievement    []string
	Emotion        []string
	Colloquial     map[string]float64
	OpeningPhrases []string
}

// DefaultLexicon returns the builtin weight tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Achievement: []string{
			"landed", "finally", "mastered", "nailed", "stomped",
			"first", "clean", "locked", "breakthrough", "consistent",
		},
		Emotion: []string{
			"stoked", "nervous", "scared", "hyped", "pumped",
			"frustrated", "proud", "terrified", "confident", "psyched",
		},
		Colloquial: map[string]float64{
			"sketchy": 1.2,
			"sent it": 1.4,
			"gnarly":  1.3,
			"buttery": 1.2,
			"dialed":  1.3,
			"bailed":  1.1,
		},
		OpeningPhrases: []string{
			"Solid session today.",
			"Good day on the board.",
			"Another one in the books.",
			"Progress all around.",
			"The board felt right today.",
			"Kept the streak rolling.",
			"Worked hard for this one.",
			"A session to remember.",
			"Small wins add up.",
			"Left it all at the park.",
		},
	}
}

// lexiconSets is the normalized lookup form of a Lexicon. Word sets are
// keyed by normalized words and phrases by normalized phrase text so they
// line up with tokenized note input.
type lexiconSets struct {
	achievement map[string]bool
	emotion     map[string]bool
	colloquial  map[string]float64
	openings    []string
}

func buildSets(lex Lexicon) lexiconSets {
	sets := lexiconSets{
		achievement: make(map[string]bool, len(lex.Achievement)),
		emotion:     make(map[string]bool, len(lex.Emotion)),
		colloquial:  make(map[string]float64, len(lex.Colloquial)),
		openings:    lex.OpeningPhrases,
	}
	for _, w := range lex.Achievement {
		if n := tokenize.NormalizeWord(w); n != "" {
			sets.achievement[n] = true
		}
	}
	for _, w := range lex.Emotion {
		if n := tokenize.NormalizeWord(w); n != "" {
			sets.emotion[n] = true
		}
	}
	for phrase, boost := range lex.Colloquial {
		if n := tokenize.NormalizeText(phrase); n != "" {
			sets.colloquial[n] = boost
		}
	}
	if len(sets.openings) == 0 {
		sets.openings = DefaultLexicon().OpeningPhrases
	}
	return sets
}

func (s lexiconSets) hasAchievement(words []string) bool {
	return anyIn(words, s.achievement)
}

func (s lexiconSets) hasEmotion(words []string) bool {
	return anyIn(words, s.emotion)
}

func (s lexiconSets) hasColloquial(normText string) bool {
	for phrase := range s.colloquial {
		if strings.Contains(normText, phrase) {
			return true
		}
	}
	return false
}

func anyIn(words []string, set map[string]bool) bool {
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}
