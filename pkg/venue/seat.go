package venue

import (
	"fmt"
	"sort"
)

// Status is the live booking state of a seat.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusBlocked   Status = "blocked"
	StatusSold      Status = "sold"
)

// Seat is one addressable, bookable unit of the compiled layout.
type Seat struct {
	ID          string  `json:"id"`
	Row         string  `json:"row,omitempty"`
	Number      int     `json:"number,omitempty"`
	SectionID   string  `json:"section_id"`
	BlockLetter string  `json:"block_letter,omitempty"`
	Tier        string  `json:"tier,omitempty"`
	Price       float64 `json:"price"`
	Color       string  `json:"color,omitempty"`
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	Standing    bool    `json:"standing,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Status      Status  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
}

// Label returns the printed seat label, e.g. "C12", or the id for standing seats.
func (s Seat) Label() string {
	if s.Standing {
		return s.ID
	}
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// Override is an externally supplied status for one seat id.
type Override struct {
	SeatID string `json:"seat_id"`
	Status Status `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OverrideSet groups the three override categories.
type OverrideSet struct {
	Reserved []Override `json:"reserved,omitempty"`
	Blocked  []Override `json:"blocked,omitempty"`
	Sold     []Override `json:"sold,omitempty"`
}

// Len returns the total number of overrides across all categories.
func (o OverrideSet) Len() int { return len(o.Reserved) + len(o.Blocked) + len(o.Sold) }

// RowLabel is the anchor of a row marker.
type RowLabel struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Side  Side    `json:"side"`
}

// Layout is the result of one compilation.
type Layout struct {
	Seats  []Seat     `json:"seats"`
	Labels []RowLabel `json:"labels"`
}

// Stats counts seats per status.
type Stats struct {
	Total     int `json:"total"`
	Standing  int `json:"standing"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Blocked   int `json:"blocked"`
	Sold      int `json:"sold"`
}

// Stats returns per-status seat counts.
func (l Layout) Stats() Stats {
	var st Stats
	for _, s := range l.Seats {
		st.Total++
		if s.Standing {
			st.Standing++
		}
		switch s.Status {
		case StatusReserved:
			st.Reserved++
		case StatusBlocked:
			st.Blocked++
		case StatusSold:
			st.Sold++
		default:
			st.Available++
		}
	}
	return st
}

// SectionStats returns per-section seat counts keyed by section id.
func (l Layout) SectionStats() map[string]Stats {
	out := make(map[string]Stats)
	for _, s := range l.Seats {
		st := out[s.SectionID]
		st = Layout{Seats: []Seat{s}}.Stats().add(st)
		out[s.SectionID] = st
	}
	return out
}

func (a Stats) add(b Stats) Stats {
	return Stats{
		Total:     a.Total + b.Total,
		Standing:  a.Standing + b.Standing,
		Available: a.Available + b.Available,
		Reserved:  a.Reserved + b.Reserved,
		Blocked:   a.Blocked + b.Blocked,
		Sold:      a.Sold + b.Sold,
	}
}

// DuplicateIDs returns the sorted seat ids that occur more than once.
func (l Layout) DuplicateIDs() []string {
	seen := make(map[string]int, len(l.Seats))
	for _, s := range l.Seats {
		seen[s.ID]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

// StandingIDs returns the ids of standing seats in layout order.
func (l Layout) StandingIDs() []string {
	var ids []string
	for _, s := range l.Seats {
		if s.Standing {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Find returns the seat with the given id.
func (l Layout) Find(id string) (Seat, bool) {
	for _, s := range l.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}
