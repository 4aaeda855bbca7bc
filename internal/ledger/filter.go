package ledger

import (
	"strings"
	"time"
)

// Filter slices an already-computed ledger by inclusive date bounds
// and a case-insensitive substring over the display fields. It never
// re-folds: every surviving entry keeps the balance it was computed
// with, so the closing balance of a filtered view is simply the last
// surviving entry's balance. Zero bounds and an empty query leave the
// corresponding dimension unconstrained.
func Filter(entries []Entry, from, to time.Time, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		if query != "" && !matches(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e Entry, query string) bool {
	for _, field := range []string{e.Type, e.Reference, e.Narration, e.Party} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
