// Package overlay stamps live booking status onto freshly compiled seats.
//
// Overrides arrive in three categories (reserved, blocked, sold). When the
// same seat id appears in more than one category the later category in
// [Precedence] wins; [Conflicts] reports such ids so callers can surface them.
package overlay

import (
	"sort"

	"github.com/matzehuels/seatplan/pkg/venue"
)

// Precedence is the merge order of override categories. Later entries
// overwrite earlier ones for the same seat id.
var Precedence = []venue.Status{venue.StatusReserved, venue.StatusBlocked, venue.StatusSold}

// categories returns the override lists in precedence order.
func categories(set venue.OverrideSet) [][]venue.Override {
	return [][]venue.Override{set.Reserved, set.Blocked, set.Sold}
}

// Index builds the seat-id lookup from set following Precedence.
func Index(set venue.OverrideSet) map[string]venue.Override {
	idx := make(map[string]venue.Override, set.Len())
	for i, list := range categories(set) {
		for _, o := range list {
			if o.Status == "" {
				o.Status = Precedence[i]
			}
			idx[o.SeatID] = o
		}
	}
	return idx
}

// Merge returns a copy of seats with every status resolved against set.
// Seats without an override become available. Overrides for unknown ids
// are ignored. The input slice is not modified.
func Merge(seats []venue.Seat, set venue.OverrideSet) []venue.Seat {
	idx := Index(set)
	out := make([]venue.Seat, len(seats))
	for i, s := range seats {
		if o, ok := idx[s.ID]; ok {
			s.Status = o.Status
			s.Reason = o.Reason
		} else {
			s.Status = venue.StatusAvailable
			s.Reason = ""
		}
		out[i] = s
	}
	return out
}

// Conflict describes a seat id listed in more than one category.
type Conflict struct {
	SeatID     string
	Categories []venue.Status
	Resolved   venue.Status
}

// Conflicts lists seat ids that occur in more than one category, sorted by id.
func Conflicts(set venue.OverrideSet) []Conflict {
	seen := make(map[string][]venue.Status)
	for i, list := range categories(set) {
		for _, o := range list {
			cats := seen[o.SeatID]
			if len(cats) == 0 || cats[len(cats)-1] != Precedence[i] {
				seen[o.SeatID] = append(cats, Precedence[i])
			}
		}
	}

	idx := Index(set)
	var out []Conflict
	for id, cats := range seen {
		if len(cats) > 1 {
			out = append(out, Conflict{SeatID: id, Categories: cats, Resolved: idx[id].Status})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatID < out[j].SeatID })
	return out
}

// Unmatched returns the override ids that do not name any seat, sorted.
func Unmatched(seats []venue.Seat, set venue.OverrideSet) []string {
	known := make(map[string]bool, len(seats))
	for _, s := range seats {
		known[s.ID] = true
	}
	var out []string
	for id := range Index(set) {
		if !known[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
