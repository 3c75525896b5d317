package history

import (
	"sort"

	"github.com/2beens/trainingdiary/internal/diary"
)

// SortDatesDesc returns a sorted copy of the date keys, most recent first.
// Keys that do not parse as dates go last, in descending lexical order.
func SortDatesDesc(dates []string) []string {
	type key struct {
		raw   string
		valid bool
		unix  int64
	}

	keys := make([]key, len(dates))
	for i, d := range dates {
		keys[i].raw = d
		if t, err := diary.ParseDateKey(d); err == nil {
			keys[i].valid = true
			keys[i].unix = t.Unix()
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch {
		case a.valid && b.valid:
			return a.unix > b.unix
		case a.valid != b.valid:
			return a.valid
		default:
			return a.raw > b.raw
		}
	})

	sorted := make([]string, len(keys))
	for i, k := range keys {
		sorted[i] = k.raw
	}
	return sorted
}
