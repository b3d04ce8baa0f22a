package tables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPForCR_Tabulated(t *testing.T) {
	tb := Default()
	for _, row := range tb.ChallengeRatings() {
		assert.Equal(t, row.XP, tb.XPForCR(row.CR), "CR %g", row.CR)
	}
}

func TestXPForCR_Interpolated(t *testing.T) {
	tb := Default()
	rows := tb.ChallengeRatings()

	for i := 1; i < len(rows); i++ {
		lo, hi := rows[i-1], rows[i]
		prev := lo.XP
		for step := 1; step < 10; step++ {
			cr := lo.CR + (hi.CR-lo.CR)*float64(step)/10
			xp := tb.XPForCR(cr)
			if xp < lo.XP || xp > hi.XP {
				t.Fatalf("CR %g gave %d, outside [%d, %d]", cr, xp, lo.XP, hi.XP)
			}
			if xp < prev {
				t.Fatalf("CR %g gave %d, lower than previous %d", cr, xp, prev)
			}
			prev = xp
		}
	}

	assert.Equal(t, 150, tb.XPForCR(0.75))
	assert.Equal(t, 325, tb.XPForCR(1.5))
}

func TestXPForCR_OutOfRange(t *testing.T) {
	tb := Default()
	assert.Equal(t, 155000, tb.XPForCR(45))
	assert.Equal(t, 10, tb.XPForCR(-1))
}

func TestThresholdAndBaseCR(t *testing.T) {
	tb := Default()

	assert.Equal(t, 50, tb.Threshold(1, Medium))
	assert.Equal(t, 12700, tb.Threshold(20, Deadly))
	assert.Equal(t, tb.Threshold(1, Easy), tb.Threshold(0, Easy), "levels below 1 clamp")
	assert.Equal(t, tb.Threshold(20, Hard), tb.Threshold(35, Hard), "levels above 20 clamp")
	assert.Equal(t, tb.Threshold(5, Medium), tb.Threshold(5, Difficulty("brutal")))

	assert.Equal(t, 1.0, tb.BaseCR(3, Medium))
	assert.Equal(t, tb.BaseCR(7, Medium), tb.BaseCR(7, Difficulty("")))
}

func TestCRWindow(t *testing.T) {
	tests := []struct {
		d      Difficulty
		lo, hi float64
	}{
		{Easy, 0.5, 1.5},
		{Medium, 0.67, 2},
		{Hard, 0.83, 3},
		{Deadly, 1, 4},
		{Difficulty("nightmare"), 0.5, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			lo, hi := CRWindow(tt.d)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestMultiplier(t *testing.T) {
	want := map[int]float64{1: 1.0, 2: 1.5}
	for n := 3; n <= 6; n++ {
		want[n] = 2.0
	}
	for n := 7; n <= 10; n++ {
		want[n] = 2.5
	}
	for n := 11; n <= 14; n++ {
		want[n] = 3.0
	}
	for n := 15; n <= 40; n++ {
		want[n] = 4.0
	}
	for n, m := range want {
		assert.Equal(t, m, Multiplier(n), "n=%d", n)
	}
}

func TestMonsters(t *testing.T) {
	tb := Default()

	names, loc := tb.Monsters("forest")
	assert.Equal(t, "forest", loc)
	assert.Contains(t, names, "owlbear")

	names, loc = tb.Monsters("moon_base")
	assert.Equal(t, DefaultLocation, loc)
	assert.NotEmpty(t, names)

	names[0] = "mutated"
	again, _ := tb.Monsters("moon_base")
	assert.NotEqual(t, "mutated", again[0], "callers must not be able to mutate the tables")
}

func TestLocationsSorted(t *testing.T) {
	locs := Default().Locations()
	assert.IsIncreasing(t, locs)
	assert.Contains(t, locs, "dungeon")
}

func TestCatalogNearest(t *testing.T) {
	c := NewCatalog(map[int][]string{
		10:  {"a"},
		50:  {"b"},
		100: {"c"},
		500: {},
	})

	tests := []struct {
		value int
		want  int
	}{
		{10, 10},
		{0, 10},
		{29, 10},
		{30, 10}, // midpoint prefers the lower key
		{31, 50},
		{75, 50}, // midpoint again
		{76, 100},
		{400, 100}, // empty buckets are dropped
	}
	for _, tt := range tests {
		key, names, ok := c.Nearest(tt.value)
		require.True(t, ok)
		assert.Equal(t, tt.want, key, "value %d", tt.value)
		assert.NotEmpty(t, names)
	}

	_, _, ok := NewCatalog(nil).Nearest(10)
	assert.False(t, ok)
}

func TestCoinCopperValue(t *testing.T) {
	assert.Equal(t, 1, CP.CopperValue())
	assert.Equal(t, 10, SP.CopperValue())
	assert.Equal(t, 100, GP.CopperValue())
	assert.Equal(t, 1000, PP.CopperValue())
	assert.Equal(t, 0, Coin("ep").CopperValue())
}

func TestAccessorsReturnCopies(t *testing.T) {
	tb := Default()

	ind := tb.Individual(TierLow)
	want := ind[0]
	ind[0] = CoinRoll{Multiplier: -1}
	assert.Equal(t, want, tb.Individual(TierLow)[0])

	h := tb.Hoard(TierHigh)
	wantCoin := h.Coins[0]
	h.Coins[0].Multiplier = 0
	assert.Equal(t, wantCoin, tb.Hoard(TierHigh).Coins[0])

	items, ok := tb.MagicTable("A")
	require.True(t, ok)
	wantItem := items[0]
	items[0] = "cursed scroll"
	got, _ := tb.MagicTable("A")
	assert.Equal(t, wantItem, got[0])

	_, names, ok := tb.Gems().Nearest(10)
	require.True(t, ok)
	wantGem := names[0]
	names[0] = "glass bead"
	_, names, _ = tb.Gems().Nearest(10)
	assert.Equal(t, wantGem, names[0])
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	broken := *Default()
	broken.magic = map[string][]string{"A": {"potion of healing"}}
	err := broken.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing magic item table")
}

func TestUnknownTierReadsLow(t *testing.T) {
	tb := Default()
	assert.Equal(t, tb.Individual(TierLow), tb.Individual(Tier("mythic")))
	assert.Equal(t, tb.Hoard(TierLow).Magic.Table, tb.Hoard(Tier("mythic")).Magic.Table)
}

func TestDecodeLocations(t *testing.T) {
	lf, err := DecodeLocations(strings.NewReader("locations:\n  haunted_mill: [ghost, specter]\n  empty_room: []\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "specter"}, lf.Locations["haunted_mill"])
	assert.Empty(t, lf.Locations["empty_room"])

	_, err = DecodeLocations(strings.NewReader("places:\n  x: [y]\n"))
	assert.Error(t, err, "unknown fields are rejected")

	lf, err = DecodeLocations(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lf.Locations)
}

func TestLoadLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locations:\n  forest: [treant]\n  crypt: [lich]\n"), 0o644))

	base := Default()
	tb, err := base.LoadLocations(path)
	require.NoError(t, err)

	names, _ := tb.Monsters("forest")
	assert.Equal(t, []string{"treant"}, names)
	names, loc := tb.Monsters("crypt")
	assert.Equal(t, "crypt", loc)
	assert.Equal(t, []string{"lich"}, names)

	names, _ = base.Monsters("forest")
	assert.Contains(t, names, "owlbear", "the base tables are left untouched")

	_, err = base.LoadLocations(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
