package encounter

import (
	"cmp"
	"slices"
)

// Selector picks count monsters from candidates whose summed XP best fits
// target. Implementations must not modify candidates. Returning fewer than
// count monsters is allowed when there are not enough candidates.
type Selector interface {
	Select(candidates []Monster, count int, target float64) []Monster
}

// GreedySelector is the default strategy: optionally seed with the largest
// candidate that fits ("boss"), then fill upward from the smallest.
// It is fast and deterministic but does not guarantee the best subset.
type GreedySelector struct{}

var _ Selector = GreedySelector{}

func (GreedySelector) Select(candidates []Monster, count int, target float64) []Monster {
	if count <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Monster) int {
		return cmp.Compare(a.XP, b.XP)
	})

	chosen := make([]bool, len(sorted))
	selected := make([]Monster, 0, count)
	sum := 0

	take := func(i int) {
		chosen[i] = true
		selected = append(selected, sorted[i])
		sum += sorted[i].XP
	}

	if count > 1 {
		for i := len(sorted) - 1; i >= 0; i-- {
			if float64(sorted[i].XP) <= target {
				take(i)
				break
			}
		}
	}

	for len(selected) < count {
		pick := -1
		for i, m := range sorted {
			if !chosen[i] && float64(sum+m.XP) <= target {
				pick = i
				break
			}
		}
		if pick < 0 {
			// nothing fits; accept overshoot with the smallest remaining
			for i := range sorted {
				if !chosen[i] {
					pick = i
					break
				}
			}
		}
		if pick < 0 {
			break
		}
		take(pick)
	}

	return selected
}

func totalXP(monsters []Monster) int {
	sum := 0
	for _, m := range monsters {
		sum += m.XP
	}
	return sum
}
