package tables

import (
	"maps"
	"slices"
)

// Catalog groups item names into value buckets (gp).
type Catalog struct {
	buckets map[int][]string
	keys    []int
}

// NewCatalog builds a catalog from value buckets. Empty buckets are dropped.
func NewCatalog(buckets map[int][]string) Catalog {
	c := Catalog{buckets: make(map[int][]string, len(buckets))}
	for v, names := range buckets {
		if len(names) == 0 {
			continue
		}
		c.buckets[v] = slices.Clone(names)
	}
	c.keys = slices.Sorted(maps.Keys(c.buckets))
	return c
}

// Values returns the bucket values in ascending order.
func (c Catalog) Values() []int {
	return slices.Clone(c.keys)
}

// Nearest returns the bucket whose value is closest to value. On an exact
// midpoint between two buckets the lower one wins. ok is false for an empty
// catalog.
func (c Catalog) Nearest(value int) (key int, names []string, ok bool) {
	if len(c.keys) == 0 {
		return 0, nil, false
	}
	if names, found := c.buckets[value]; found {
		return value, slices.Clone(names), true
	}

	best := c.keys[0]
	bestDiff := absInt(value - best)
	for _, k := range c.keys[1:] {
		// keys ascend, so a strictly smaller difference is required to move up
		if d := absInt(value - k); d < bestDiff {
			best, bestDiff = k, d
		}
	}
	return best, slices.Clone(c.buckets[best]), true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
