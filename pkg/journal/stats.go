package journal

import (
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
)

// Counts maps each feeling to the number of entries reporting it. Every
// feeling is present, with zero when unused.
type Counts map[feeling.Feeling]int

// Aggregate counts entries per feeling.
func Aggregate(entries []entry.Entry) Counts {
	c := make(Counts, 3)
	for _, f := range feeling.All() {
		c[f] = 0
	}
	for _, e := range entries {
		if e.Feeling.Valid() {
			c[e.Feeling]++
		}
	}
	return c
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
