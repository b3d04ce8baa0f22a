package encounter

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/encounter-engine/pkg/actor"
)

// Spawn turns the selected monsters into actor instances placed at the
// encounter's location. Repeated names get increasing suffixes:
// goblin_1, goblin_2, ...
func (r *Result) Spawn() []*actor.Monster {
	if !r.OK() {
		return nil
	}

	seen := make(map[string]int, len(r.Monsters))
	out := make([]*actor.Monster, 0, len(r.Monsters))
	for _, m := range r.Monsters {
		key := instanceKey(m.Name)
		seen[key]++

		template := &actor.Monster{
			Name:            m.Name,
			ChallengeRating: m.ChallengeRating,
			XP:              m.XP,
			AC:              actor.ArmorClassForCR(m.ChallengeRating),
			MaxHP:           m.HP,
			CombatMods: map[string]int{
				"proficiency": actor.ProficiencyBonus(m.ChallengeRating),
			},
		}
		out = append(out, actor.NewMonster(fmt.Sprintf("%s_%d", key, seen[key]), template, r.LocationType))
	}
	return out
}

func instanceKey(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "monster"
	}
	return sb.String()
}
