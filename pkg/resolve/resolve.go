// Package resolve maps free-form trick names, such as the output of an
// external extractor, onto catalog entries. Resolution tries an exact
// case-insensitive match, then the curated alias table, then a Levenshtein
// similarity fallback. Names that survive no stage are dropped silently;
// a miss is an expected outcome, not an error.
package resolve

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/tokenize"
)

// similarityThreshold is the minimum similarity (exclusive) for the fuzzy
// fallback to accept a catalog name.
const similarityThreshold = 0.80

// AliasTable maps a normalized colloquial phrase to a canonical catalog
// name, e.g. "bs flip" -> "BS 180 Kickflip". Static configuration data.
type AliasTable map[string]string

// Similarity returns 1 - lev(a,b)/max(len(a),len(b)) over rune sequences.
// Two empty strings are identical, similarity 1.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// TrickNames resolves each candidate name against the catalog. Every
// candidate contributes at most one trick and duplicates are suppressed,
// so synonymous inputs yield a single entry.
func TrickNames(names []string, tricks []catalog.Trick, aliases AliasTable) []catalog.Trick {
	var resolved []catalog.Trick
	seen := make(map[string]bool)

	for _, name := range names {
		trick, ok := resolveOne(name, tricks, aliases)
		if !ok {
			continue
		}
		if seen[trick.Name] {
			continue
		}
		seen[trick.Name] = true
		resolved = append(resolved, trick)
	}
	return resolved
}

func resolveOne(name string, tricks []catalog.Trick, aliases AliasTable) (catalog.Trick, bool) {
	if strings.TrimSpace(name) == "" {
		return catalog.Trick{}, false
	}

	// Exact, case-insensitive.
	lower := strings.ToLower(name)
	for _, t := range tricks {
		if strings.ToLower(t.Name) == lower {
			return t, true
		}
	}

	// Alias table, keyed by normalized phrase.
	normalized := tokenize.NormalizeText(name)
	if canonical, ok := aliases[normalized]; ok {
		if t, found := catalog.FindByName(tricks, canonical); found {
			return t, true
		}
	}

	return fuzzyBest(lower, tricks)
}

// fuzzyBest picks the catalog name with the highest similarity above the
// threshold. Equal similarities break by shorter name, then lexical order,
// keeping the winner stable across runs regardless of catalog ordering.
func fuzzyBest(lowerName string, tricks []catalog.Trick) (catalog.Trick, bool) {
	var best catalog.Trick
	bestScore := 0.0
	found := false

	for _, t := range tricks {
		score := Similarity(lowerName, strings.ToLower(t.Name))
		if score <= similarityThreshold {
			continue
		}
		switch {
		case !found || score > bestScore:
		case score == bestScore && len(t.Name) < len(best.Name):
		case score == bestScore && len(t.Name) == len(best.Name) && t.Name < best.Name:
		default:
			continue
		}
		best = t
		bestScore = score
		found = true
	}
	return best, found
}
