// Package tables holds the read-only reference data behind encounter
// balancing and treasure generation: CR to XP, XP thresholds, CR windows,
// location monster lists, and the treasure tier and catalog tables.
//
// A *Tables is immutable after construction and may be shared freely
// between goroutines.
package tables

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
)

// Difficulty selects a column of the per-level threshold and CR tables.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Deadly Difficulty = "deadly"
)

// column returns the table column for d. Unknown difficulties read medium.
func (d Difficulty) column() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	case Deadly:
		return 3
	default:
		return 1
	}
}

// Known reports whether d is one of the four table difficulties.
func (d Difficulty) Known() bool {
	switch d {
	case Easy, Medium, Hard, Deadly:
		return true
	}
	return false
}

// Tier is a coarse wealth bracket driving which treasure tables are read.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very_high"
)

// Tiers lists every tier from poorest to richest.
var Tiers = []Tier{TierLow, TierMedium, TierHigh, TierVeryHigh}

// Coin is a currency denomination.
type Coin string

const (
	CP Coin = "cp"
	SP Coin = "sp"
	GP Coin = "gp"
	PP Coin = "pp"
)

// CopperValue returns how many copper pieces one coin is worth.
func (c Coin) CopperValue() int {
	switch c {
	case CP:
		return 1
	case SP:
		return 10
	case GP:
		return 100
	case PP:
		return 1000
	default:
		return 0
	}
}

// CRXP is one row of the challenge rating table.
type CRXP struct {
	CR float64
	XP int
}

// CoinRoll is a coin entry of a treasure table: roll Dice, multiply by
// Multiplier, pay out in Coin.
type CoinRoll struct {
	Dice       dice.Expr
	Multiplier int
	Coin       Coin
}

// ValuableRoll triggers with probability Chance and yields Quantity items
// drawn from the value bucket nearest Value.
type ValuableRoll struct {
	Chance   float64
	Quantity dice.Expr
	Value    int
}

// MagicRoll triggers with probability Chance and yields Quantity items from
// the lettered magic item table.
type MagicRoll struct {
	Chance   float64
	Quantity dice.Expr
	Table    string
}

// Hoard is the full hoard table for a tier.
type Hoard struct {
	Coins []CoinRoll
	Gems  ValuableRoll
	Art   ValuableRoll
	Magic MagicRoll
}

// Tables is the immutable set of reference tables.
type Tables struct {
	crXP            []CRXP
	thresholds      [MaxLevel][4]int
	crByDifficulty  [MaxLevel][4]float64
	locations       map[string][]string
	defaultLocation string
	fallback        []string
	individual      map[Tier][]CoinRoll
	hoards          map[Tier]Hoard
	gems            Catalog
	art             Catalog
	magic           map[string][]string
}

const (
	MinLevel = 1
	MaxLevel = 20

	// DefaultLocation is used when a location key is not recognised.
	DefaultLocation = "dungeon"
)

var defaultTables = sync.OnceValue(newDefault)

// Default returns the built-in tables. The value is built once.
func Default() *Tables {
	return defaultTables()
}

// ClampLevel forces level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return max(MinLevel, min(MaxLevel, level))
}

// XPForCR converts a challenge rating to XP, interpolating linearly between
// the neighbouring table rows for ratings that are not tabulated.
func (t *Tables) XPForCR(cr float64) int {
	if cr < 0 {
		cr = 0
	}
	rows := t.crXP
	i := sort.Search(len(rows), func(i int) bool { return rows[i].CR >= cr })
	if i < len(rows) && rows[i].CR == cr {
		return rows[i].XP
	}

	lower := rows[0]
	if i > 0 {
		lower = rows[i-1]
	}
	higher := rows[len(rows)-1]
	if i < len(rows) {
		higher = rows[i]
	} else {
		lower = higher
	}

	if lower.CR == higher.CR {
		return higher.XP
	}
	return int(dice.Lerp(cr, lower.CR, higher.CR, float64(lower.XP), float64(higher.XP)))
}

// ChallengeRatings returns the tabulated CR rows in ascending order.
func (t *Tables) ChallengeRatings() []CRXP {
	return slices.Clone(t.crXP)
}

// Threshold returns the per-character XP threshold for level and difficulty.
func (t *Tables) Threshold(level int, d Difficulty) int {
	return t.thresholds[ClampLevel(level)-1][d.column()]
}

// BaseCR returns the reference challenge rating for level and difficulty.
func (t *Tables) BaseCR(level int, d Difficulty) float64 {
	return t.crByDifficulty[ClampLevel(level)-1][d.column()]
}

// CRWindow returns the widening factors applied to BaseCR when sampling a
// candidate's challenge rating.
func CRWindow(d Difficulty) (lo, hi float64) {
	switch d {
	case Easy:
		return 0.5, 1.5
	case Medium:
		return 0.67, 2
	case Hard:
		return 0.83, 3
	case Deadly:
		return 1, 4
	default:
		return 0.5, 2
	}
}

// Multiplier is the encounter multiplier for a group of n monsters.
func Multiplier(n int) float64 {
	switch {
	case n <= 1:
		return 1.0
	case n == 2:
		return 1.5
	case n <= 6:
		return 2.0
	case n <= 10:
		return 2.5
	case n <= 14:
		return 3.0
	default:
		return 4.0
	}
}

// Monsters returns the monster names for location, and the location key
// actually used. Unknown locations resolve to DefaultLocation.
func (t *Tables) Monsters(location string) ([]string, string) {
	if names, ok := t.locations[location]; ok {
		return slices.Clone(names), location
	}
	return slices.Clone(t.locations[t.defaultLocation]), t.defaultLocation
}

// Locations returns the known location keys, sorted.
func (t *Tables) Locations() []string {
	return slices.Sorted(maps.Keys(t.locations))
}

// FallbackMonsters names the generic monsters used when a location has no
// monster list.
func (t *Tables) FallbackMonsters() []string {
	return slices.Clone(t.fallback)
}

// Individual returns the individual-treasure coin table for tier.
// Unknown tiers read the low tier.
func (t *Tables) Individual(tier Tier) []CoinRoll {
	if rolls, ok := t.individual[tier]; ok {
		return slices.Clone(rolls)
	}
	return slices.Clone(t.individual[TierLow])
}

// Hoard returns the hoard table for tier. Unknown tiers read the low tier.
func (t *Tables) Hoard(tier Tier) Hoard {
	h, ok := t.hoards[tier]
	if !ok {
		h = t.hoards[TierLow]
	}
	h.Coins = slices.Clone(h.Coins)
	return h
}

// Gems returns the gemstone catalog.
func (t *Tables) Gems() Catalog { return t.gems }

// Art returns the art object catalog.
func (t *Tables) Art() Catalog { return t.art }

// MagicTable returns the item names of a lettered magic item table.
func (t *Tables) MagicTable(letter string) ([]string, bool) {
	names, ok := t.magic[letter]
	return slices.Clone(names), ok
}

// WithLocations returns a copy of t whose location lists are overridden by
// locations. Keys not present in locations keep their current list.
func (t *Tables) WithLocations(locations map[string][]string) *Tables {
	cp := *t
	cp.locations = make(map[string][]string, len(t.locations)+len(locations))
	maps.Copy(cp.locations, t.locations)
	for k, v := range locations {
		cp.locations[k] = slices.Clone(v)
	}
	return &cp
}

// Validate checks the cross references between tables.
func (t *Tables) Validate() error {
	if len(t.crXP) == 0 {
		return fmt.Errorf("challenge rating table is empty")
	}
	for i := 1; i < len(t.crXP); i++ {
		if t.crXP[i].CR <= t.crXP[i-1].CR || t.crXP[i].XP < t.crXP[i-1].XP {
			return fmt.Errorf("challenge rating table is not ascending at CR %g", t.crXP[i].CR)
		}
	}
	if _, ok := t.locations[t.defaultLocation]; !ok {
		return fmt.Errorf("default location %q has no monster list", t.defaultLocation)
	}
	if len(t.fallback) == 0 {
		return fmt.Errorf("fallback monster list is empty")
	}
	for _, tier := range Tiers {
		if _, ok := t.individual[tier]; !ok {
			return fmt.Errorf("tier %s has no individual treasure table", tier)
		}
		h, ok := t.hoards[tier]
		if !ok {
			return fmt.Errorf("tier %s has no hoard table", tier)
		}
		if _, ok := t.magic[h.Magic.Table]; !ok {
			return fmt.Errorf("tier %s references missing magic item table %q", tier, h.Magic.Table)
		}
	}
	if len(t.gems.keys) == 0 || len(t.art.keys) == 0 {
		return fmt.Errorf("gem and art catalogs must not be empty")
	}
	return nil
}
