// Package catalog defines the trick reference data read by every other
// package: trick entries, the trick type enumeration, and the TOML loader.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// TrickType classifies a trick by the family of movement it belongs to.
type TrickType int

const (
	TypeBasic TrickType = iota
	TypeAir
	TypeFlip
	TypeShoveIt
	TypeGrind
	TypeSlide
	TypeTransition
	TypeFootplant
	TypeBalance
	TypeMisc
)

// ErrUnknownType is returned by ParseTrickType for strings that do not map
// to any trick type, even after normalization.
var ErrUnknownType = errors.New("unknown trick type")

var typeNames = map[TrickType]string{
	TypeBasic:      "basic",
	TypeAir:        "air",
	TypeFlip:       "flip",
	TypeShoveIt:    "shove-it",
	TypeGrind:      "grind",
	TypeSlide:      "slide",
	TypeTransition: "transition",
	TypeFootplant:  "footplant",
	TypeBalance:    "balance",
	TypeMisc:       "misc",
}

// typesByName is the exhaustive mapping table for ParseTrickType. Keys are
// the canonical spellings; the normalized fallback handles everything else.
var typesByName = map[string]TrickType{
	"basic":      TypeBasic,
	"air":        TypeAir,
	"flip":       TypeFlip,
	"shove-it":   TypeShoveIt,
	"grind":      TypeGrind,
	"slide":      TypeSlide,
	"transition": TypeTransition,
	"footplant":  TypeFootplant,
	"balance":    TypeBalance,
	"misc":       TypeMisc,
}

func (t TrickType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("trick_type(%d)", int(t))
}

// ParseTrickType maps a raw string to a TrickType. Exact canonical names are
// tried first, then a single normalized fallback (lowercase, spaces and
// underscores folded to hyphens). Unknown input yields ErrUnknownType.
func ParseTrickType(s string) (TrickType, error) {
	if t, ok := typesByName[s]; ok {
		return t, nil
	}
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "-")
	norm = strings.ReplaceAll(norm, "_", "-")
	if t, ok := typesByName[norm]; ok {
		return t, nil
	}
	return TypeMisc, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Trick is one entry of the trick catalog. The catalog is read-only input
// for the whole module; nothing here mutates it.
type Trick struct {
	Name       string
	Type       TrickType
	Difficulty int
}
