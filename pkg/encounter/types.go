package encounter

import (
	"math"

	"github.com/jwebster45206/encounter-engine/pkg/tables"
)

// Difficulty is the requested encounter difficulty. Strings other than the
// four constants are accepted and fall back to default table behaviour.
type Difficulty = tables.Difficulty

const (
	Easy   = tables.Easy
	Medium = tables.Medium
	Hard   = tables.Hard
	Deadly = tables.Deadly
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Character is a party member. Only the level is used.
type Character struct {
	Level int `json:"level"`
}

// Party is an ordered list of characters.
type Party []Character

// Size returns the number of characters.
func (p Party) Size() int {
	return len(p)
}

// AverageLevel returns the mean level rounded to the nearest integer,
// or 0 for an empty party.
func (p Party) AverageLevel() int {
	if len(p) == 0 {
		return 0
	}
	sum := 0
	for _, c := range p {
		sum += c.Level
	}
	return int(math.Round(float64(sum) / float64(len(p))))
}

// Monster is a generated encounter candidate.
type Monster struct {
	Name            string  `json:"name"`
	ChallengeRating float64 `json:"challenge_rating"`
	XP              int     `json:"xp"`
	HP              int     `json:"hp"`
	Environment     string  `json:"environment"`
}

// NewMonster builds a candidate whose XP is derived from cr.
func NewMonster(t *tables.Tables, name string, cr float64, hp int, environment string) Monster {
	return Monster{
		Name:            name,
		ChallengeRating: cr,
		XP:              t.XPForCR(cr),
		HP:              hp,
		Environment:     environment,
	}
}

// Result is the outcome of CreateEncounter. It is never modified after it
// is returned.
type Result struct {
	Status              string     `json:"status"`
	Message             string     `json:"message,omitempty"`
	Monsters            []Monster  `json:"monsters,omitempty"`
	Difficulty          Difficulty `json:"difficulty,omitempty"`
	TargetXP            int        `json:"target_xp"`
	ActualXP            int        `json:"actual_xp"`
	EncounterMultiplier float64    `json:"encounter_multiplier"`
	LocationType        string     `json:"location_type,omitempty"`
	EncounterLevel      int        `json:"encounter_level,omitempty"`
	Note                string     `json:"note,omitempty"`
}

// OK reports whether the encounter was generated.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

func errorResult(msg string) *Result {
	return &Result{Status: StatusError, Message: msg}
}
