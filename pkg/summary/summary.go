// Package summary builds a short human-readable session summary from a note
// and the tricks landed in it. Sentences are scored with a lexical weight
// table boosted by trick difficulty; the top sentences are re-joined in
// document order and merged with a templated trick description. All output
// is recomputed per call, nothing is cached.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/tokenize"
)

// Sentence-level multiplicative boosts and selection defaults.
const (
	achievementWordBoost     = 2.0
	emotionWordBoost         = 1.5
	achievementSentenceBoost = 1.5
	emotionSentenceBoost     = 1.3
	colloquialSentenceBoost  = 1.2
	trickSentenceBoost       = 1.4
	topSentenceCount         = 2
	mergeScoreThreshold      = 0.7
	minWordLength            = 3
)

// Summarizer scores notes against a catalog and lexicon. It is a short-lived
// value object: construct one per call site, no shared mutable state.
type Summarizer struct {
	tricks []catalog.Trick
	lex    lexiconSets
}

// New builds a Summarizer over a read-only catalog snapshot and lexicon.
func New(tricks []catalog.Trick, lex Lexicon) *Summarizer {
	return &Summarizer{tricks: tricks, lex: buildSets(lex)}
}

// Summarize produces the session summary. An empty note with no landed
// tricks yields an empty string, never an error.
func (s *Summarizer) Summarize(note string, landed []catalog.Trick, sessionDate time.Time) string {
	context, topScore := s.contextSummary(note)
	if len(landed) == 0 {
		return context
	}

	trickPart := s.trickSummary(landed, sessionDate)
	if topScore > mergeScoreThreshold {
		top := s.topSentence(note)
		return strings.TrimSpace(trickPart + " " + top)
	}
	return strings.TrimSpace(context + " " + trickPart)
}

// contextSummary picks the top scoring sentences and rejoins them in
// document order. Summary order always matches source order.
func (s *Summarizer) contextSummary(note string) (string, float64) {
	scored := s.scoreSentences(note)
	if len(scored) == 0 {
		return "", 0
	}

	ranked := make([]scoredSentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	topScore := ranked[0].score
	picked := ranked
	if len(picked) > topSentenceCount {
		picked = picked[:topSentenceCount]
	}
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	parts := make([]string, len(picked))
	for i, sc := range picked {
		parts[i] = sc.text
	}
	return strings.Join(parts, " "), topScore
}

func (s *Summarizer) topSentence(note string) string {
	scored := s.scoreSentences(note)
	best := ""
	bestScore := -1.0
	for _, sc := range scored {
		if sc.score > bestScore {
			best = sc.text
			bestScore = sc.score
		}
	}
	return best
}

type scoredSentence struct {
	index int
	text  string
	score float64
}

func (s *Summarizer) scoreSentences(note string) []scoredSentence {
	weights := s.wordWeights(note)
	sentences := tokenize.Sentences(note)

	scored := make([]scoredSentence, 0, len(sentences))
	for i, sentence := range sentences {
		words := normalizedWords(sentence, minWordLength)
		sc := scoredSentence{index: i, text: sentence}
		if len(words) == 0 {
			scored = append(scored, sc)
			continue
		}

		normText := tokenize.NormalizeText(sentence)
		present := s.tricksIn(normText)
		hasAchievement := s.lex.hasAchievement(words)
		hasEmotion := s.lex.hasEmotion(words)
		hasColloquial := s.lex.hasColloquial(normText)

		raw := 0.0
		for _, w := range words {
			raw += weights[w]
		}
		if hasAchievement {
			for _, full := range present {
				raw += difficultyBoost(full)
			}
		}

		score := raw / float64(len(words))
		if hasAchievement {
			score *= achievementSentenceBoost
		}
		if hasEmotion {
			score *= emotionSentenceBoost
		}
		if hasColloquial {
			score *= colloquialSentenceBoost
		}
		if len(present) > 0 {
			score *= trickSentenceBoost
		}
		sc.score = score
		scored = append(scored, sc)
	}
	return scored
}

// wordWeights builds the normalized word-frequency table for the whole note.
func (s *Summarizer) wordWeights(note string) map[string]float64 {
	weights := make(map[string]float64)
	for _, w := range normalizedWords(note, minWordLength) {
		weights[w] += 1.0
	}

	for w := range weights {
		if s.lex.achievement[w] {
			weights[w] *= achievementWordBoost
		}
		if s.lex.emotion[w] {
			weights[w] *= emotionWordBoost
		}
	}

	normNote := tokenize.NormalizeText(note)
	for _, full := range s.tricksIn(normNote) {
		boost := difficultyBoost(full)
		for _, w := range strings.Fields(full) {
			if _, ok := weights[w]; ok {
				weights[w] *= boost
			}
		}
	}
	for phrase, boost := range s.lex.colloquial {
		if !strings.Contains(normNote, phrase) {
			continue
		}
		for _, w := range strings.Fields(phrase) {
			if _, ok := weights[w]; ok {
				weights[w] *= boost
			}
		}
	}

	maxWeight := 0.0
	for _, v := range weights {
		if v > maxWeight {
			maxWeight = v
		}
	}
	if maxWeight == 0 {
		maxWeight = 1
	}
	for w := range weights {
		weights[w] /= maxWeight
	}
	return weights
}

// tricksIn returns the normalized full names of catalog tricks appearing as
// substrings of the normalized text.
func (s *Summarizer) tricksIn(normText string) []string {
	var present []string
	for _, t := range s.tricks {
		full := strings.Join(tokenize.NormalizeTrickName(t.Name), " ")
		if full == "" || !strings.Contains(normText, full) {
			continue
		}
		present = append(present, full)
	}
	return present
}

// difficultyBoost keys off the normalized trick name. First match wins.
func difficultyBoost(normName string) float64 {
	switch {
	case strings.Contains(normName, "double"):
		return 2.5
	case strings.Contains(normName, "360"):
		return 2.0
	case strings.Contains(normName, "varial"):
		return 1.9
	case strings.Contains(normName, "flip"):
		return 1.8
	default:
		return 1.5
	}
}

// trickSummary composes the templated trick description. The opening phrase
// is chosen by day-of-month mod 10, a deterministic choice preserved from
// the original scoring model.
func (s *Summarizer) trickSummary(landed []catalog.Trick, sessionDate time.Time) string {
	opening := s.lex.openings[sessionDate.Day()%len(s.lex.openings)]
	var desc string
	if len(landed) > 5 {
		desc = groupedCounts(landed)
	} else {
		desc = nameList(landed)
	}
	return fmt.Sprintf("%s Landed %s.", opening, desc)
}

func nameList(landed []catalog.Trick) string {
	names := make([]string, len(landed))
	for i, t := range landed {
		names[i] = t.Name
	}
	return joinWithAnd(names)
}

// groupedCounts buckets tricks into flip, nollie, grind, slide, and shove-it
// categories. Nollie wins over the type bucket when the name says so.
func groupedCounts(landed []catalog.Trick) string {
	var flips, nollies, grinds, slides, shoves, others int
	for _, t := range landed {
		switch {
		case strings.Contains(strings.ToLower(t.Name), "nollie"):
			nollies++
		case t.Type == catalog.TypeFlip:
			flips++
		case t.Type == catalog.TypeGrind:
			grinds++
		case t.Type == catalog.TypeSlide:
			slides++
		case t.Type == catalog.TypeShoveIt:
			shoves++
		default:
			others++
		}
	}

	var parts []string
	add := func(n int, singular, plural string) {
		if n == 0 {
			return
		}
		label := plural
		if n == 1 {
			label = singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, label))
	}
	add(flips, "flip", "flips")
	add(nollies, "nollie", "nollies")
	add(grinds, "grind", "grinds")
	add(slides, "slide", "slides")
	add(shoves, "shove-it", "shove-its")
	add(others, "other trick", "other tricks")
	return joinWithAnd(parts)
}

func joinWithAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

func normalizedWords(text string, minLen int) []string {
	raw := tokenize.Words(text)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		n := tokenize.NormalizeWord(w)
		if len([]rune(n)) < minLen {
			continue
		}
		out = append(out, n)
	}
	return out
}
