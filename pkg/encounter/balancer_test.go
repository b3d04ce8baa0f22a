package encounter

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partyOf(levels ...int) Party {
	p := make(Party, len(levels))
	for i, l := range levels {
		p[i] = Character{Level: l}
	}
	return p
}

func TestPartyAverageLevel(t *testing.T) {
	assert.Equal(t, 0, Party{}.AverageLevel())
	assert.Equal(t, 3, partyOf(3).AverageLevel())
	assert.Equal(t, 4, partyOf(3, 4, 4).AverageLevel())
	assert.Equal(t, 4, partyOf(3, 4).AverageLevel(), "3.5 rounds half away from zero")
	assert.Equal(t, 2, partyOf(1, 2, 2, 2).AverageLevel())
}

func TestCreateEncounter_EmptyParty(t *testing.T) {
	b := NewBalancer(nil)

	for _, p := range []Party{nil, {}} {
		res := b.CreateEncounter(dice.NewSource(1), p, "forest", Medium)
		require.NotNil(t, res)
		assert.Equal(t, StatusError, res.Status)
		assert.NotEmpty(t, res.Message)
		assert.Empty(t, res.Monsters)
		assert.False(t, res.OK())
	}
}

func TestCreateEncounter_ForestLevelThree(t *testing.T) {
	b := NewBalancer(nil)

	for seed := uint64(0); seed < 50; seed++ {
		res := b.CreateEncounter(dice.NewSource(seed), partyOf(3), "forest", Medium)

		require.Equal(t, StatusSuccess, res.Status)
		require.NotEmpty(t, res.Monsters, "seed %d", seed)
		assert.Equal(t, 120, res.TargetXP)
		assert.Positive(t, res.ActualXP)
		assert.LessOrEqual(t, res.ActualXP, 4*res.TargetXP, "seed %d", seed)
		assert.Equal(t, "forest", res.LocationType)
		assert.Equal(t, Medium, res.Difficulty)
		assert.Equal(t, 3, res.EncounterLevel)
		assert.Empty(t, res.Note)
	}
}

func TestCreateEncounter_ActualXPMatchesSelection(t *testing.T) {
	b := NewBalancer(nil)
	tb := b.Tables()

	for _, d := range []Difficulty{Easy, Medium, Hard, Deadly, "heroic"} {
		t.Run(string(d), func(t *testing.T) {
			res := b.CreateEncounter(dice.NewSource(11), partyOf(5, 5, 6, 4), "dungeon", d)
			require.True(t, res.OK())
			require.NotEmpty(t, res.Monsters)

			assert.LessOrEqual(t, len(res.Monsters), MaxMonsters(4, d))
			assert.Equal(t, tables.Multiplier(len(res.Monsters)), res.EncounterMultiplier)
			assert.Equal(t, int(float64(totalXP(res.Monsters))*res.EncounterMultiplier), res.ActualXP)

			for _, m := range res.Monsters {
				assert.Equal(t, tb.XPForCR(m.ChallengeRating), m.XP, "xp is derived from CR")
				assert.GreaterOrEqual(t, m.ChallengeRating, 0.125)
				assert.Equal(t, "dungeon", m.Environment)
			}
		})
	}
}

func TestCreateEncounter_Reproducible(t *testing.T) {
	b := NewBalancer(nil)
	party := partyOf(7, 8, 8, 9, 7, 8)

	a := b.CreateEncounter(dice.NewSource(2024), party, "mountain", Hard)
	c := b.CreateEncounter(dice.NewSource(2024), party, "mountain", Hard)
	assert.Equal(t, a, c)
}

func TestCreateEncounter_Concurrent(t *testing.T) {
	b := NewBalancer(nil)
	party := partyOf(2, 3, 4)

	want := make([]*Result, 16)
	for i := range want {
		want[i] = b.CreateEncounter(dice.NewSource(uint64(i)), party, "swamp", Deadly)
	}

	got := make([]*Result, len(want))
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = b.CreateEncounter(dice.NewSource(uint64(i)), party, "swamp", Deadly)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, want, got)
}

func TestCreateEncounter_UnknownLocation(t *testing.T) {
	b := NewBalancer(nil)
	dungeon, _ := b.Tables().Monsters(tables.DefaultLocation)

	res := b.CreateEncounter(dice.NewSource(5), partyOf(4, 4, 4, 4), "moon_base", Medium)
	require.True(t, res.OK())
	assert.Equal(t, "moon_base", res.LocationType)
	for _, m := range res.Monsters {
		assert.Contains(t, dungeon, m.Name)
		assert.Equal(t, tables.DefaultLocation, m.Environment)
	}
}

func TestCreateEncounter_EmptyLocationFallback(t *testing.T) {
	tb := tables.Default().WithLocations(map[string][]string{"void": {}})
	b := NewBalancer(tb)

	tests := []struct {
		name      string
		party     Party
		wantCount int
		wantCR    float64
	}{
		{"single low level", partyOf(1), 1, 0.25},
		{"pair", partyOf(8, 8), 2, 2},
		{"large party caps at three", partyOf(12, 12, 12, 12, 12, 12), 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := b.CreateEncounter(dice.NewSource(3), tt.party, "void", Hard)
			require.True(t, res.OK())
			require.Len(t, res.Monsters, tt.wantCount)
			assert.NotEmpty(t, res.Note)
			assert.Equal(t, 1.0, res.EncounterMultiplier)
			assert.Equal(t, totalXP(res.Monsters), res.TargetXP)
			assert.Equal(t, res.TargetXP, res.ActualXP)
			for _, m := range res.Monsters {
				assert.Equal(t, tt.wantCR, m.ChallengeRating)
				assert.Contains(t, tb.FallbackMonsters(), m.Name)
				assert.GreaterOrEqual(t, m.HP, int(15*tt.wantCR)+5)
				assert.LessOrEqual(t, m.HP, int(15*tt.wantCR)+15)
			}
		})
	}
}

func TestTargetXP(t *testing.T) {
	b := NewBalancer(nil)
	tb := b.Tables()

	for size := 1; size <= 8; size++ {
		for _, level := range []int{1, 5, 13, 20} {
			for _, d := range []Difficulty{Easy, Medium, Hard, Deadly} {
				levels := make([]int, size)
				for i := range levels {
					levels[i] = level
				}
				sum := tb.Threshold(level, d) * size

				factor := 1.0
				if size < 3 {
					factor = 0.8
				} else if size > 5 {
					factor = 1.2
				}
				assert.Equal(t, int(float64(sum)*factor), b.TargetXP(partyOf(levels...), d),
					"size=%d level=%d difficulty=%s", size, level, d)
			}
		}
	}

	assert.Equal(t, 1050, b.TargetXP(partyOf(3, 3, 4, 5), Medium), "150+150+250+500, no scaling")
}

func TestSizeFactor(t *testing.T) {
	assert.Equal(t, 0.8, SizeFactor(1))
	assert.Equal(t, 0.8, SizeFactor(2))
	assert.Equal(t, 1.0, SizeFactor(3))
	assert.Equal(t, 1.0, SizeFactor(5))
	assert.Equal(t, 1.2, SizeFactor(6))
}

func TestMaxMonsters(t *testing.T) {
	tests := []struct {
		size int
		d    Difficulty
		want int
	}{
		{1, Easy, 1},
		{1, Deadly, 2},
		{2, Medium, 1},
		{2, Hard, 2},
		{4, Easy, 3},
		{4, Medium, 4},
		{4, Hard, 5},
		{4, Deadly, 6},
		{4, "unknown", 4},
		{6, Easy, 6},
		{6, Deadly, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxMonsters(tt.size, tt.d), "size=%d difficulty=%s", tt.size, tt.d)
	}
}

func TestCandidates(t *testing.T) {
	b := NewBalancer(nil)
	tb := b.Tables()
	names := []string{"wolf", "goblin", "owlbear"}

	tests := []struct {
		level int
		d     Difficulty
	}{
		{1, Easy}, {3, Medium}, {10, Hard}, {20, Deadly}, {6, "odd"},
	}
	for _, tt := range tests {
		base := tb.BaseCR(tt.level, tt.d)
		lo, hi := tables.CRWindow(tt.d)
		cands := b.Candidates(dice.NewSource(9), names, tt.level, tt.d, "forest")
		require.Len(t, cands, len(names))
		for i, c := range cands {
			assert.Equal(t, names[i], c.Name)
			assert.GreaterOrEqual(t, c.ChallengeRating, max(0.125, roundCR(base*lo)))
			assert.LessOrEqual(t, c.ChallengeRating, max(0.125, roundCR(base*hi)))
			assert.Equal(t, tb.XPForCR(c.ChallengeRating), c.XP)
			assert.GreaterOrEqual(t, c.HP, int(15*c.ChallengeRating)+5)
			assert.LessOrEqual(t, c.HP, int(15*c.ChallengeRating)+15)
		}
	}
}

type emptySelector struct{}

func (emptySelector) Select([]Monster, int, float64) []Monster { return nil }

func TestCreateEncounter_ClosestCandidateFallback(t *testing.T) {
	b := NewBalancer(nil, WithSelector(emptySelector{}))

	res := b.CreateEncounter(dice.NewSource(77), partyOf(5, 5, 5, 5), "forest", Medium)
	require.True(t, res.OK())
	require.Len(t, res.Monsters, 1)
	assert.Equal(t, 1.0, res.EncounterMultiplier)
	assert.Equal(t, res.Monsters[0].XP, res.ActualXP)

	// the same seed regenerates the same candidates; none is closer to the target
	names, _ := b.Tables().Monsters("forest")
	all := b.Candidates(dice.NewSource(77), names, 5, Medium, "forest")
	for _, c := range all {
		assert.GreaterOrEqual(t, absInt(c.XP-res.TargetXP), absInt(res.ActualXP-res.TargetXP))
	}
}

func TestResultJSONFieldNames(t *testing.T) {
	res := NewBalancer(nil).CreateEncounter(dice.NewSource(1), partyOf(2, 2), "cave", Easy)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"status", "monsters", "difficulty", "target_xp", "actual_xp", "encounter_multiplier", "location_type"} {
		assert.Contains(t, fields, key)
	}

	errData, err := json.Marshal(errorResult("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"boom","target_xp":0,"actual_xp":0,"encounter_multiplier":0}`, string(errData))
}

func TestRoundCR(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.125},
		{0.1201, 0.125},
		{0.1299, 0.125},
		{0.1199, 0.12},
		{0.131, 0.13},
		{0.333, 0.33},
		{0.25, 0.25},
		{1.996, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundCR(tt.in), "roundCR(%g)", tt.in)
	}
}

func TestCandidates_EighthCRKeepsTabulatedXP(t *testing.T) {
	b := NewBalancer(nil)
	eighthXP := tables.Default().XPForCR(0.125)

	for seed := uint64(0); seed < 50; seed++ {
		for _, c := range b.Candidates(dice.NewSource(seed), []string{"kobold", "rat", "bandit"}, 1, Easy, "cave") {
			assert.NotEqual(t, 0.13, c.ChallengeRating)
			if c.ChallengeRating == 0.125 {
				assert.Equal(t, eighthXP, c.XP)
			}
		}
	}
}
