// Package dice evaluates dice notation and holds the small random helpers
// shared by the encounter and treasure generators.
package dice

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/jwebster45206/d20"
)

// Limits on a parsed expression. They keep Max within int range and bound
// the work a single roll can do.
const (
	MaxCount = 1000
	MaxSides = 1_000_000
	MaxBonus = 1_000_000
)

// Source is the randomness provider threaded through every generator.
// Dice expressions roll on its d20 Roller; uniform draws and catalog picks
// use IntN and Float64.
type Source interface {
	// IntN returns a random int in [0, n). n must be > 0.
	IntN(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
	// Roller returns the dice roller bound to this source.
	Roller() *d20.Roller
}

// Rand is the Source returned by NewSource. It is not safe for concurrent
// use; create one per call.
type Rand struct {
	*rand.Rand
	seed   uint64
	roller *d20.Roller
}

// NewSource returns a deterministic source for the given seed. The PCG
// stream and the dice roller are both derived from seed.
func NewSource(seed uint64) *Rand {
	return &Rand{
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Roller returns the d20 roller for this source, created on first use.
func (r *Rand) Roller() *d20.Roller {
	if r.roller == nil {
		r.roller = d20.NewRoller(int64(r.seed))
	}
	return r.roller
}

// Expr is a parsed dice expression such as "3d6+2".
type Expr struct {
	Count int
	Sides int
	Bonus int
}

var diceRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)([+-]\d+)?$`)

// Parse parses NdS, NdS+B, NdS-B or a bare integer.
func Parse(notation string) (Expr, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(notation), " ", "")
	if raw == "" {
		return Expr{}, errors.New("dice expression cannot be empty")
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if outOfRange(n, MaxBonus) {
			return Expr{}, fmt.Errorf("constant %s is out of range (max %d)", raw, MaxBonus)
		}
		return Expr{Bonus: n}, nil
	}

	matches := diceRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Expr{}, fmt.Errorf("invalid dice expression format: %s", notation)
	}

	e := Expr{Count: 1}
	var err error
	if matches[1] != "" {
		if e.Count, err = parseBounded(matches[1], "dice count", MaxCount); err != nil {
			return Expr{}, err
		}
		if e.Count == 0 {
			return Expr{}, errors.New("dice count must be greater than 0")
		}
	}
	if e.Sides, err = parseBounded(matches[2], "die sides", MaxSides); err != nil {
		return Expr{}, err
	}
	if e.Sides <= 0 {
		return Expr{}, fmt.Errorf("cannot roll a die with %d sides", e.Sides)
	}
	if matches[3] != "" {
		if e.Bonus, err = parseBounded(matches[3], "bonus", MaxBonus); err != nil {
			return Expr{}, err
		}
	}
	return e, nil
}

func parseBounded(s, what string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	if outOfRange(n, limit) {
		return 0, fmt.Errorf("%s %d is out of range (max %d)", what, n, limit)
	}
	return n, nil
}

// MustParse is Parse for package-level table literals.
func MustParse(notation string) Expr {
	e, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return e
}

// Outcome rolls e on the source's d20 roller. A constant expression rolls
// no dice.
func (e Expr) Outcome(rng Source) (d20.RollOutcome, error) {
	if e.Count == 0 {
		return d20.RollOutcome{Value: e.Bonus, Detail: fmt.Sprintf("*Result: %d*", e.Bonus)}, nil
	}
	rb := rng.Roller().Dice(uint(e.Count), uint(e.Sides))
	if e.Bonus != 0 {
		rb = rb.WithModifier("bonus", e.Bonus)
	}
	return rb.Roll()
}

// Roll returns Bonus plus the sum of Count uniform rolls in [1, Sides].
// Expressions from Parse always roll; a hand-built Expr with no sides
// rolls as its bonus.
func (e Expr) Roll(rng Source) int {
	out, err := e.Outcome(rng)
	if err != nil {
		return e.Bonus
	}
	return out.Value
}

// Min is the smallest value Roll can return.
func (e Expr) Min() int {
	return e.Count + e.Bonus
}

// Max is the largest value Roll can return.
func (e Expr) Max() int {
	return e.Count*e.Sides + e.Bonus
}

func (e Expr) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Bonus)
	}
	s := fmt.Sprintf("%dd%d", e.Count, e.Sides)
	if e.Bonus != 0 {
		s += fmt.Sprintf("%+d", e.Bonus)
	}
	return s
}

// Roll parses and rolls notation in one step.
func Roll(rng Source, notation string) (int, error) {
	e, err := Parse(notation)
	if err != nil {
		return 0, err
	}
	out, err := e.Outcome(rng)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// Between returns a uniform int in [lo, hi]. If hi < lo it returns lo.
func Between(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(rng Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Lerp maps x from [x0, x1] onto [y0, y1]. When x0 == x1 it returns y0.
func Lerp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)/(x1-x0)*(y1-y0)
}

func outOfRange(n, limit int) bool {
	return n > limit || n < -limit
}
