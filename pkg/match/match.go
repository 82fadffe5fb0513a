// Package match scores catalog tricks against free-text session notes and
// returns a ranked shortlist of candidates. Matching is a pure function of
// its inputs: no shared state, no randomness, identical output for identical
// catalog ordering.
package match

import (
	"sort"
	"strings"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/tokenize"
)

// Scoring model constants
const (
	wordMatchScore   = 2 // exact normalized word hit on an unconsumed name position
	orderBonus       = 1 // hit advances past the previous matched position
	completionBonus  = 3 // every word of the trick name was matched
	directionalBonus = 5 // full fs/bs phrase found in the note
	maxCandidates    = 5
)

// Candidate pairs a catalog trick with the score it earned for one note.
// Candidates only live for the duration of a ranking pass.
type Candidate struct {
	Trick catalog.Trick
	Score int
}

// Match scores every catalog trick against the note and returns at most five
// candidates, ordered by score descending with ties broken by shorter name
// first, then lexically. Tricks that earn no score are dropped.
func Match(note string, tricks []catalog.Trick) []Candidate {
	noteWords := normalizedWords(note)
	if len(noteWords) == 0 {
		return nil
	}
	joined := strings.Join(noteWords, " ")

	var candidates []Candidate
	for _, trick := range tricks {
		score := scoreTrick(noteWords, joined, trick)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{Trick: trick, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if len(candidates[i].Trick.Name) != len(candidates[j].Trick.Name) {
			return len(candidates[i].Trick.Name) < len(candidates[j].Trick.Name)
		}
		return candidates[i].Trick.Name < candidates[j].Trick.Name
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// scoreTrick applies the full scoring model for a single trick:
// directional phrase bonus, per-word matching with order bonus, and the
// completion bonus. Each trick-name position is consumed at most once.
func scoreTrick(noteWords []string, joined string, trick catalog.Trick) int {
	trickWords := tokenize.NormalizeTrickName(trick.Name)
	if len(trickWords) == 0 {
		return 0
	}
	fullName := strings.Join(trickWords, " ")

	score := 0
	phraseSeen := false

	if (strings.HasPrefix(fullName, "fs ") || strings.HasPrefix(fullName, "bs ")) &&
		strings.Contains(joined, fullName) {
		score += directionalBonus
		phraseSeen = true
	}

	consumed := make([]bool, len(trickWords))
	prevIdx := -1
	for i, w := range noteWords {
		// A lone fs/bs token may be the head of a split-up phrase:
		// "fs" "180" "kickflip" typed as separate tokens.
		if (w == "fs" || w == "bs") && !phraseSeen {
			rest := strings.Join(noteWords[i:], " ")
			if strings.HasPrefix(rest, fullName) {
				score += directionalBonus
				phraseSeen = true
			}
		}
		if len(w) <= 1 {
			continue
		}
		for j, tw := range trickWords {
			if consumed[j] || tw != w {
				continue
			}
			score += wordMatchScore
			if j > prevIdx {
				score += orderBonus
			}
			consumed[j] = true
			prevIdx = j
			break
		}
	}

	complete := true
	for _, c := range consumed {
		if !c {
			complete = false
			break
		}
	}
	if complete {
		score += completionBonus
	}
	return score
}

func normalizedWords(text string) []string {
	raw := tokenize.Words(text)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		n := tokenize.NormalizeWord(w)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
