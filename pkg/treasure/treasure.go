// Package treasure rolls coin, gem, art and magic item rewards scaled to an
// encounter's level.
package treasure

import (
	"log/slog"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
)

type Tier = tables.Tier

const (
	TierLow      = tables.TierLow
	TierMedium   = tables.TierMedium
	TierHigh     = tables.TierHigh
	TierVeryHigh = tables.TierVeryHigh
)

// TierForLevel maps an encounter level to its treasure tier.
func TierForLevel(level int) Tier {
	switch {
	case level <= 4:
		return TierLow
	case level <= 10:
		return TierMedium
	case level <= 16:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// Valuable is a gem or art object with its value in gold pieces.
type Valuable struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Result is a rolled treasure parcel. TotalValue is in gold pieces and
// counts coins, gems and art objects. Magic items are not valued.
type Result struct {
	Tier       Tier                `json:"tier"`
	Coins      map[tables.Coin]int `json:"coins"`
	Gems       []Valuable          `json:"gems"`
	ArtObjects []Valuable          `json:"art_objects"`
	MagicItems []string            `json:"magic_items"`
	TotalValue float64             `json:"total_value"`
}

// Allocator generates treasure from a fixed set of tables. Like the
// encounter balancer it is stateless apart from the injected random source.
type Allocator struct {
	tables *tables.Tables
	logger *slog.Logger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLogger sets the logger used for table diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAllocator returns an Allocator reading t. A nil t uses tables.Default().
func NewAllocator(t *tables.Tables, opts ...Option) *Allocator {
	if t == nil {
		t = tables.Default()
	}
	a := &Allocator{
		tables: t,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateTreasure rolls treasure for an encounter of the given level.
// Individual treasure is coins only; a hoard adds gems, art objects and
// magic items. wealthModifier scales coin amounts and valuable values; a
// negative modifier reads as 0, which yields no coins, gems or art.
func (a *Allocator) GenerateTreasure(rng dice.Source, encounterLevel int, isHoard bool, wealthModifier float64) *Result {
	wealthModifier = max(wealthModifier, 0)

	tier := TierForLevel(encounterLevel)
	res := &Result{
		Tier:       tier,
		Coins:      make(map[tables.Coin]int),
		Gems:       []Valuable{},
		ArtObjects: []Valuable{},
		MagicItems: []string{},
	}

	coins := a.tables.Individual(tier)
	if isHoard {
		coins = a.tables.Hoard(tier).Coins
	}

	copper := 0
	for _, c := range coins {
		amount := int(float64(c.Dice.Roll(rng)*c.Multiplier) * wealthModifier)
		if amount <= 0 {
			continue
		}
		res.Coins[c.Coin] += amount
		copper += amount * c.Coin.CopperValue()
	}

	if isHoard {
		h := a.tables.Hoard(tier)
		res.Gems = a.rollValuables(rng, h.Gems, a.tables.Gems(), wealthModifier)
		res.ArtObjects = a.rollValuables(rng, h.Art, a.tables.Art(), wealthModifier)
		res.MagicItems = a.rollMagic(rng, h.Magic)

		for _, v := range res.Gems {
			copper += v.Value * tables.GP.CopperValue()
		}
		for _, v := range res.ArtObjects {
			copper += v.Value * tables.GP.CopperValue()
		}
	}

	res.TotalValue = float64(copper) / float64(tables.GP.CopperValue())
	return res
}

func (a *Allocator) rollValuables(rng dice.Source, roll tables.ValuableRoll, catalog tables.Catalog, wealth float64) []Valuable {
	out := []Valuable{}
	if rng.Float64() >= roll.Chance {
		return out
	}

	scaled := int(float64(roll.Value) * wealth)
	if scaled <= 0 {
		return out
	}

	qty := roll.Quantity.Roll(rng)
	value, names, ok := catalog.Nearest(scaled)
	if !ok {
		a.logger.Warn("Valuables catalog is empty", "value", roll.Value)
		return out
	}

	for i := 0; i < qty; i++ {
		out = append(out, Valuable{Type: names[rng.IntN(len(names))], Value: value})
	}
	return out
}

func (a *Allocator) rollMagic(rng dice.Source, roll tables.MagicRoll) []string {
	out := []string{}
	if rng.Float64() >= roll.Chance {
		return out
	}

	names, ok := a.tables.MagicTable(roll.Table)
	if !ok || len(names) == 0 {
		a.logger.Warn("Magic item table not found", "table", roll.Table)
		return out
	}

	qty := roll.Quantity.Roll(rng)
	for i := 0; i < qty; i++ {
		out = append(out, names[rng.IntN(len(names))])
	}
	return out
}
