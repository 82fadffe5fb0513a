package match

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/tokenize"
)

// Index is a patricia trie over normalized trick names, used for live
// prefix completion while a note is being typed. Read-only after build.
type Index struct {
	trie *patricia.Trie
}

// NewIndex builds a name index for the given catalog.
func NewIndex(tricks []catalog.Trick) *Index {
	trie := patricia.NewTrie()
	for _, t := range tricks {
		key := tokenize.NormalizeText(t.Name)
		if key == "" {
			continue
		}
		trie.Insert(patricia.Prefix(key), t.Name)
	}
	return &Index{trie: trie}
}

// CompleteName returns canonical trick names whose normalized form starts
// with the normalized prefix, shortest first then lexical, capped at limit.
// A prefix identical to a full name is not echoed back.
func (ix *Index) CompleteName(prefix string, limit int) []string {
	key := tokenize.NormalizeText(prefix)
	if key == "" {
		return nil
	}

	var names []string
	err := ix.trie.VisitSubtree(patricia.Prefix(key), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == key {
			return nil
		}
		name, ok := item.(string)
		if !ok {
			log.Errorf("Unknown item type: %T for prefix %s", item, p)
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names
}
