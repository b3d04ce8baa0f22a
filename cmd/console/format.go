package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/encounter-engine/internal/handlers"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/storage"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
	"github.com/jwebster45206/encounter-engine/pkg/treasure"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal
)

var titleCaser = cases.Title(language.English)

func monsterName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

func formatCR(cr float64) string {
	switch cr {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	}
	return fmt.Sprintf("%g", cr)
}

func formatEncounter(rec *storage.Record, width int) string {
	res := rec.Encounter
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s encounter: %s", titleCaser.String(string(res.Difficulty)), monsterName(res.LocationType))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("id %s  seed %d  level %d", rec.ID, rec.Seed, res.EncounterLevel)))
	b.WriteString("\n")

	for _, m := range res.Monsters {
		fmt.Fprintf(&b, "  • %-24s CR %-4s %6d xp  %3d hp\n", monsterName(m.Name), formatCR(m.ChallengeRating), m.XP, m.HP)
	}

	fmt.Fprintf(&b, "%s %d  %s %d  %s ×%g\n",
		labelStyle.Render("target"), res.TargetXP,
		labelStyle.Render("actual"), res.ActualXP,
		labelStyle.Render("multiplier"), res.EncounterMultiplier)
	if res.Note != "" {
		b.WriteString(wordwrap.String(dimStyle.Render(res.Note), width))
		b.WriteString("\n")
	}

	if rec.Treasure != nil {
		b.WriteString("\n")
		b.WriteString(formatTreasure(rec.Treasure, width))
	}
	return b.String()
}

func formatTreasure(res *treasure.Result, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Treasure (%s tier)", strings.ReplaceAll(string(res.Tier), "_", " "))))
	b.WriteString("\n")

	var coins []string
	for _, c := range []tables.Coin{tables.PP, tables.GP, tables.SP, tables.CP} {
		if n := res.Coins[c]; n > 0 {
			coins = append(coins, fmt.Sprintf("%d %s", n, c))
		}
	}
	if len(coins) == 0 {
		coins = []string{"none"}
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("coins"), strings.Join(coins, ", "))

	if len(res.Gems) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("gems"), wordwrap.String(groupValuables(res.Gems), width))
	}
	if len(res.ArtObjects) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("art"), wordwrap.String(groupValuables(res.ArtObjects), width))
	}
	if len(res.MagicItems) > 0 {
		items := make([]string, len(res.MagicItems))
		for i, item := range res.MagicItems {
			items[i] = titleCaser.String(item)
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("magic"), wordwrap.String(strings.Join(items, ", "), width))
	}
	fmt.Fprintf(&b, "%s %.2f gp\n", labelStyle.Render("total"), res.TotalValue)
	return b.String()
}

// groupValuables renders "2× bloodstone (50 gp), jasper (50 gp)".
func groupValuables(vs []treasure.Valuable) string {
	counts := make(map[treasure.Valuable]int)
	var order []treasure.Valuable
	for _, v := range vs {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	parts := make([]string, len(order))
	for i, v := range order {
		name := titleCaser.String(v.Type)
		if n := counts[v]; n > 1 {
			name = fmt.Sprintf("%d× %s", n, name)
		}
		parts[i] = fmt.Sprintf("%s (%d gp)", name, v.Value)
	}
	return strings.Join(parts, ", ")
}

func formatRoll(r *handlers.RollResponse) string {
	out := fmt.Sprintf("%s %s = %s  %s",
		labelStyle.Render("roll"), r.Dice,
		titleStyle.Render(fmt.Sprintf("%d", r.Result)),
		dimStyle.Render(fmt.Sprintf("(%d–%d, seed %d)", r.Min, r.Max, r.Seed)))
	if len(r.Rolls) > 0 {
		out += "\n" + dimStyle.Render(r.Detail)
	}
	return out
}

func formatLocations(resp *handlers.LocationsResponse, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Locations"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (unknown types use %s)", resp.Default)))
	b.WriteString("\n")

	locs := append([]handlers.Location(nil), resp.Locations...)
	sort.Slice(locs, func(i, j int) bool { return locs[i].Name < locs[j].Name })
	for _, loc := range locs {
		names := make([]string, len(loc.Monsters))
		for i, n := range loc.Monsters {
			names[i] = monsterName(n)
		}
		line := fmt.Sprintf("%s: %s", labelStyle.Render(loc.Name), strings.Join(names, ", "))
		b.WriteString(wordwrap.String(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// formatCombatants spawns the encounter's monsters and reports the stats
// of the d20 actors built from them.
func formatCombatants(res *encounter.Result) (string, error) {
	spawned := res.Spawn()
	if len(spawned) == 0 {
		return "", fmt.Errorf("no monsters to spawn")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Combatants"))
	b.WriteString("\n")
	for _, m := range spawned {
		a, err := m.Actor()
		if err != nil {
			return "", fmt.Errorf("failed to build %s: %w", m.ID, err)
		}
		fmt.Fprintf(&b, "  • %-20s AC %2d  HP %3d/%-3d  prof +%d\n",
			m.ID, a.AC(), a.HP(), a.MaxHP(), m.CombatMods["proficiency"])
	}
	return b.String(), nil
}
