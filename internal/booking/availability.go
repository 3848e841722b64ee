package booking

import "time"

// Available reports whether a reservation starting at start may be added
// alongside the existing intervals of the same book.
//
// The conflict test is deliberately narrow: only the candidate's start
// instant is examined, and it conflicts iff it falls strictly inside an
// existing interval (existing.Start < start < existing.End). A candidate
// whose end overlaps an existing interval, or whose span fully covers one,
// is still accepted. Replacing this with a full interval-overlap test
// (a.Start < b.End && b.Start < a.End) would change which reservations are
// accepted; keep the legacy rule unless that is the intent.
func Available(existing []Interval, start time.Time) bool {
	for _, iv := range existing {
		if iv.Start.Before(start) && start.Before(iv.End) {
			return false
		}
	}
	return true
}
