// Package encounter builds combat encounters whose multiplier-adjusted XP
// approximates the budget for a party at a given difficulty.
package encounter

import (
	"log/slog"
	"math"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
)

const (
	minCR          = 0.125
	fallbackMinCR  = 0.25
	maxFallback    = 3
	fallbackNote   = "no monsters are listed for this location; default monsters were used"
	emptyPartyText = "party must contain at least one character"
)

// Balancer generates encounters from a fixed set of tables. It holds no
// mutable state and is safe for concurrent use as long as each call gets
// its own random source.
type Balancer struct {
	tables   *tables.Tables
	selector Selector
	logger   *slog.Logger
}

// Option configures a Balancer.
type Option func(*Balancer)

// WithSelector replaces the default GreedySelector.
func WithSelector(s Selector) Option {
	return func(b *Balancer) {
		if s != nil {
			b.selector = s
		}
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Balancer) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBalancer returns a Balancer reading t. A nil t uses tables.Default().
func NewBalancer(t *tables.Tables, opts ...Option) *Balancer {
	if t == nil {
		t = tables.Default()
	}
	b := &Balancer{
		tables:   t,
		selector: GreedySelector{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Tables returns the tables the balancer reads.
func (b *Balancer) Tables() *tables.Tables {
	return b.tables
}

// CreateEncounter builds an encounter for party at locationType.
// An empty party yields a result with Status "error"; every other input
// produces a successful result.
func (b *Balancer) CreateEncounter(rng dice.Source, party Party, locationType string, difficulty Difficulty) *Result {
	if party.Size() == 0 {
		return errorResult(emptyPartyText)
	}

	level := tables.ClampLevel(party.AverageLevel())
	names, resolved := b.tables.Monsters(locationType)
	if resolved != locationType {
		b.logger.Debug("Unknown location, using default monster list",
			"location_type", locationType, "default", resolved)
	}

	if len(names) == 0 {
		b.logger.Debug("Location has no monsters, using fallback encounter", "location_type", locationType)
		return b.fallbackEncounter(rng, party, level, locationType, difficulty)
	}

	target := b.TargetXP(party, difficulty)
	candidates := b.Candidates(rng, names, level, difficulty, resolved)

	var (
		best     []Monster
		bestXP   int
		bestMult float64
		bestDev  = math.MaxInt
	)
	maxN := min(MaxMonsters(party.Size(), difficulty), len(candidates))
	for n := 1; n <= maxN; n++ {
		selected := b.selector.Select(candidates, n, float64(target)/tables.Multiplier(n))
		if len(selected) == 0 {
			continue
		}
		mult := tables.Multiplier(len(selected))
		actual := int(float64(totalXP(selected)) * mult)
		if dev := absInt(actual - target); dev < bestDev {
			best, bestXP, bestMult, bestDev = selected, actual, mult, dev
		}
	}

	if best == nil {
		b.logger.Debug("Selection produced nothing, using closest single candidate",
			"location_type", locationType, "target_xp", target)
		if m, ok := closestCandidate(candidates, target); ok {
			best, bestXP, bestMult = []Monster{m}, m.XP, 1.0
		}
	}

	return &Result{
		Status:              StatusSuccess,
		Monsters:            best,
		Difficulty:          difficulty,
		TargetXP:            target,
		ActualXP:            bestXP,
		EncounterMultiplier: bestMult,
		LocationType:        locationType,
		EncounterLevel:      level,
	}
}

// TargetXP is the party's summed XP threshold for difficulty, scaled by
// 0.8 for parties under three and 1.2 for parties over five.
func (b *Balancer) TargetXP(party Party, difficulty Difficulty) int {
	sum := 0
	for _, c := range party {
		sum += b.tables.Threshold(c.Level, difficulty)
	}
	return int(float64(sum) * SizeFactor(party.Size()))
}

// SizeFactor is the party size correction applied to the XP budget.
func SizeFactor(size int) float64 {
	switch {
	case size < 3:
		return 0.8
	case size > 5:
		return 1.2
	default:
		return 1.0
	}
}

// MaxMonsters is the largest group size tried for a party of size.
func MaxMonsters(size int, difficulty Difficulty) int {
	var n int
	switch difficulty {
	case Easy:
		n = size - 1
	case Hard:
		n = size + 1
	case Deadly:
		n = size + 2
	default:
		n = size
	}
	if size <= 2 {
		n--
	} else if size >= 6 {
		n++
	}
	return max(1, n)
}

// Candidates rolls a challenge rating and hit points for every name.
func (b *Balancer) Candidates(rng dice.Source, names []string, level int, difficulty Difficulty, environment string) []Monster {
	base := b.tables.BaseCR(level, difficulty)
	lo, hi := tables.CRWindow(difficulty)

	out := make([]Monster, 0, len(names))
	for _, name := range names {
		cr := roundCR(dice.Uniform(rng, base*lo, base*hi))
		cr = max(cr, minCR)
		out = append(out, NewMonster(b.tables, name, cr, rollHP(rng, cr), environment))
	}
	return out
}

func (b *Balancer) fallbackEncounter(rng dice.Source, party Party, level int, locationType string, difficulty Difficulty) *Result {
	names := b.tables.FallbackMonsters()
	cr := max(fallbackMinCR, float64(level)/4)
	count := max(1, min(maxFallback, party.Size()))

	monsters := make([]Monster, 0, count)
	for i := 0; i < count; i++ {
		name := names[i%len(names)]
		monsters = append(monsters, NewMonster(b.tables, name, cr, rollHP(rng, cr), locationType))
	}
	xp := totalXP(monsters)

	return &Result{
		Status:              StatusSuccess,
		Monsters:            monsters,
		Difficulty:          difficulty,
		TargetXP:            xp,
		ActualXP:            xp,
		EncounterMultiplier: 1.0,
		LocationType:        locationType,
		EncounterLevel:      level,
		Note:                fallbackNote,
	}
}

func rollHP(rng dice.Source, cr float64) int {
	return int(15*cr) + dice.Between(rng, 5, 15)
}

func closestCandidate(candidates []Monster, target int) (Monster, bool) {
	if len(candidates) == 0 {
		return Monster{}, false
	}
	best := candidates[0]
	for _, m := range candidates[1:] {
		if absInt(m.XP-target) < absInt(best.XP-target) {
			best = m
		}
	}
	return best, true
}

// roundCR keeps sampled ratings readable in JSON output. Ratings that
// would round onto 0.12 or 0.13 keep the tabulated 1/8.
func roundCR(cr float64) float64 {
	if math.Abs(cr-minCR) < 0.005 {
		return minCR
	}
	return math.Round(cr*100) / 100
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
