package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func xps(monsters []Monster) []int {
	out := make([]int, len(monsters))
	for i, m := range monsters {
		out[i] = m.XP
	}
	return out
}

func TestGreedySelector(t *testing.T) {
	candidates := []Monster{
		{Name: "ogre", XP: 450},
		{Name: "wolf", XP: 50},
		{Name: "goblin", XP: 100},
		{Name: "bugbear", XP: 200},
		{Name: "troll", XP: 700},
	}

	tests := []struct {
		name   string
		count  int
		target float64
		want   []int
	}{
		{"single fits", 1, 120, []int{50}},
		{"single nothing fits takes smallest", 1, 10, []int{50}},
		{"boss then fill", 2, 300, []int{200, 50}},
		{"boss then overshoot", 3, 100, []int{100, 50, 200}},
		{"no boss fits", 2, 40, []int{50, 100}},
		{"large target", 3, 2000, []int{700, 50, 100}},
		{"more slots than candidates", 9, 5000, []int{700, 50, 100, 200, 450}},
		{"zero count", 0, 500, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreedySelector{}.Select(candidates, tt.count, tt.target)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, xps(got))
		})
	}
}

func TestGreedySelector_DoesNotReorderInput(t *testing.T) {
	candidates := []Monster{{Name: "b", XP: 200}, {Name: "a", XP: 50}}
	GreedySelector{}.Select(candidates, 2, 1000)
	assert.Equal(t, "b", candidates[0].Name)
}

func TestGreedySelector_StableOnTies(t *testing.T) {
	candidates := []Monster{{Name: "first", XP: 50}, {Name: "second", XP: 50}}
	got := GreedySelector{}.Select(candidates, 1, 60)
	assert.Equal(t, "first", got[0].Name)
}
