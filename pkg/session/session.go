// Package session defines the historical session record consumed by the
// analytics package. Sessions are read-only snapshots supplied by the host;
// nothing in this module mutates them.
package session

import (
	"time"

	"github.com/skatelog/tricksense/pkg/catalog"
)

// Session is one journal entry: when it happened, what was written, and
// which catalog tricks were practiced.
type Session struct {
	Date   time.Time
	Note   string
	Tricks []catalog.Trick
}

// Contains reports whether the session includes the named trick.
func (s Session) Contains(name string) bool {
	for _, t := range s.Tricks {
		if t.Name == name {
			return true
		}
	}
	return false
}
