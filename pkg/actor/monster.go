package actor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jwebster45206/d20"
)

// Monster is a spawned creature instance, ready to be placed in a game
// world and fought. Instances are produced from encounter results.
type Monster struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	ChallengeRating float64 `json:"challenge_rating"`
	XP              int     `json:"xp"`

	AC    int `json:"ac"`
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`

	Attributes map[string]int `json:"attributes,omitempty"`       // e.g. "strength": 16
	CombatMods map[string]int `json:"combat_modifiers,omitempty"` // e.g. "bite": 5
	Items      []string       `json:"items,omitempty"`
}

// NewMonster creates an instance of template with the given id at location.
// HP defaults to MaxHP when unset; negative HP and AC are clamped to 0.
// Returns nil for a nil template.
func NewMonster(id string, template *Monster, location string) *Monster {
	if template == nil {
		return nil
	}

	m := *template
	m.ID = id
	m.Location = location
	m.Attributes = maps.Clone(template.Attributes)
	m.CombatMods = maps.Clone(template.CombatMods)
	m.Items = slices.Clone(template.Items)

	if m.HP == 0 && m.MaxHP > 0 {
		m.HP = m.MaxHP
	}
	if m.HP < 0 {
		m.HP = 0
	}
	if m.AC < 0 {
		m.AC = 0
	}
	return &m
}

// ArmorClassForCR is the typical armor class of a monster of the given
// challenge rating.
func ArmorClassForCR(cr float64) int {
	switch {
	case cr < 4:
		return 13
	case cr < 5:
		return 14
	case cr < 8:
		return 15
	case cr < 10:
		return 16
	case cr < 13:
		return 17
	case cr < 17:
		return 18
	default:
		return 19
	}
}

// ProficiencyBonus is the attack bonus contribution for a challenge rating.
func ProficiencyBonus(cr float64) int {
	switch {
	case cr < 5:
		return 2
	case cr < 9:
		return 3
	case cr < 13:
		return 4
	case cr < 17:
		return 5
	case cr < 21:
		return 6
	case cr < 25:
		return 7
	case cr < 29:
		return 8
	default:
		return 9
	}
}

// Actor builds the d20 combatant for this monster.
func (m *Monster) Actor() (*d20.Actor, error) {
	if m == nil {
		return nil, fmt.Errorf("monster cannot be nil")
	}

	attrs := m.Attributes
	if attrs == nil {
		attrs = map[string]int{}
	}
	mods := m.CombatMods
	if mods == nil {
		mods = map[string]int{}
	}

	a, err := d20.NewActor(m.ID).
		WithHP(m.MaxHP).
		WithAC(m.AC).
		WithAttributes(attrs).
		WithCombatModifiers(mods).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for %s: %w", m.ID, err)
	}

	if m.HP != m.MaxHP && m.HP > 0 {
		if err := a.SetHP(m.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return a, nil
}
