package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// trickFile mirrors the on-disk TOML catalog layout:
//
//	[[trick]]
//	name = "Kickflip"
//	type = "flip"
//	difficulty = 3
type trickFile struct {
	Tricks []trickEntry `toml:"trick"`
}

type trickEntry struct {
	Name       string `toml:"name"`
	Type       string `toml:"type"`
	Difficulty int    `toml:"difficulty"`
}

// Load reads a trick catalog from a TOML file. Entries with an unknown type
// are kept as misc with a warning rather than failing the whole load.
func Load(path string) ([]Trick, error) {
	var file trickFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	tricks := make([]Trick, 0, len(file.Tricks))
	for _, entry := range file.Tricks {
		if entry.Name == "" {
			log.Warnf("Skipping catalog entry with empty name in %s", path)
			continue
		}
		trickType, err := ParseTrickType(entry.Type)
		if err != nil {
			log.Warnf("Trick %q: %v, keeping as misc", entry.Name, err)
		}
		tricks = append(tricks, Trick{
			Name:       entry.Name,
			Type:       trickType,
			Difficulty: entry.Difficulty,
		})
	}
	log.Debugf("Loaded %d tricks from %s", len(tricks), path)
	return tricks, nil
}

// Default returns the builtin catalog used when no catalog file is supplied.
func Default() []Trick {
	return []Trick{
		{Name: "Ollie", Type: TypeBasic, Difficulty: 1},
		{Name: "Nollie", Type: TypeBasic, Difficulty: 2},
		{Name: "Manual", Type: TypeBalance, Difficulty: 1},
		{Name: "Nose Manual", Type: TypeBalance, Difficulty: 2},
		{Name: "Kickflip", Type: TypeFlip, Difficulty: 3},
		{Name: "Heelflip", Type: TypeFlip, Difficulty: 3},
		{Name: "Varial Kickflip", Type: TypeFlip, Difficulty: 4},
		{Name: "Double Kickflip", Type: TypeFlip, Difficulty: 5},
		{Name: "Nollie Kickflip", Type: TypeFlip, Difficulty: 4},
		{Name: "FS 180", Type: TypeBasic, Difficulty: 2},
		{Name: "BS 180", Type: TypeBasic, Difficulty: 2},
		{Name: "FS 180 Kickflip", Type: TypeFlip, Difficulty: 4},
		{Name: "BS 180 Kickflip", Type: TypeFlip, Difficulty: 4},
		{Name: "FS 360", Type: TypeBasic, Difficulty: 4},
		{Name: "Pop Shove It", Type: TypeShoveIt, Difficulty: 2},
		{Name: "360 Shove It", Type: TypeShoveIt, Difficulty: 4},
		{Name: "Varial Heelflip", Type: TypeFlip, Difficulty: 4},
		{Name: "50-50 Grind", Type: TypeGrind, Difficulty: 3},
		{Name: "5-0 Grind", Type: TypeGrind, Difficulty: 4},
		{Name: "Nosegrind", Type: TypeGrind, Difficulty: 4},
		{Name: "Boardslide", Type: TypeSlide, Difficulty: 3},
		{Name: "Lipslide", Type: TypeSlide, Difficulty: 4},
		{Name: "Noseslide", Type: TypeSlide, Difficulty: 3},
		{Name: "Tailslide", Type: TypeSlide, Difficulty: 4},
		{Name: "Rock to Fakie", Type: TypeTransition, Difficulty: 2},
		{Name: "Axle Stall", Type: TypeTransition, Difficulty: 2},
		{Name: "Boneless", Type: TypeFootplant, Difficulty: 2},
		{Name: "FS Air", Type: TypeAir, Difficulty: 3},
	}
}

// FindByName returns the catalog entry whose name matches exactly,
// case-sensitive. The second return reports whether it was found.
func FindByName(tricks []Trick, name string) (Trick, bool) {
	for _, t := range tricks {
		if t.Name == name {
			return t, true
		}
	}
	return Trick{}, false
}
