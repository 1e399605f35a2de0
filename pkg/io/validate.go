package io

import (
	"strings"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/layout/numbering"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// ValidateVenue checks a normalized venue and reports every problem found
// as an errors.List.
//
// Besides well-formed enumerations and identifiers it rejects the
// configurations that would make the compiler emit colliding seat ids:
// duplicate section keys, sections that resolve to the same seat-id
// prefix, and per-block sections whose blocks share a block letter.
func ValidateVenue(v venue.Venue) error {
	var errs errors.List
	if len(v.Sections) == 0 {
		errs.Add(errors.ErrCodeInvalidVenue, "venue has no sections")
	}

	seen := make(map[string]bool, len(v.Sections))
	prefixes := make(map[string]string, len(v.Sections)) // prefix -> first section key
	for i, s := range v.Sections {
		key := s.Key()
		if err := errors.ValidateSectionID(key); err != nil {
			errs.Add(errors.ErrCodeInvalidSection, "section %d: %s", i+1, errors.UserMessage(err))
			continue
		}
		if seen[key] {
			errs.Add(errors.ErrCodeInvalidVenue, "duplicate section %q", key)
		}
		seen[key] = true
		validateSection(&errs, s)

		if s.IsFOH() {
			continue
		}
		prefix := s.Initial()
		if other, ok := prefixes[prefix]; ok && other != key {
			errs.Add(errors.ErrCodeInvalidVenue,
				"sections %q and %q both use seat-id prefix %q; set an explicit prefix on one of them", other, key, prefix)
			continue
		}
		prefixes[prefix] = key
	}
	return errs.Err()
}

func validateSection(errs *errors.List, s venue.Section) {
	key := s.Key()
	fail := func(format string, args ...any) {
		errs.Add(errors.ErrCodeInvalidSection, "section %q: "+format, append([]any{key}, args...)...)
	}

	switch s.Kind {
	case venue.KindSeated, venue.KindStanding, venue.KindFOH:
	default:
		fail("unknown kind %q", s.Kind)
	}
	switch s.Numbering {
	case venue.NumberingContinuous, venue.NumberingPerBlock:
	default:
		fail("unknown numbering %q", s.Numbering)
	}
	if s.Prefix != "" {
		if err := errors.ValidatePrefix(s.Prefix); err != nil {
			fail("%s", errors.UserMessage(err))
		}
	}
	if s.Rows < 0 || s.SeatsPerRow < 0 {
		fail("rows and seats_per_row cannot be negative")
	}
	if s.Price < 0 {
		fail("price cannot be negative")
	}
	if err := errors.ValidateColor(s.Color); err != nil {
		fail("%s", errors.UserMessage(err))
	}
	for _, l := range s.SkipLetters {
		if err := errors.ValidateLetter(l); err != nil {
			fail("skip_letters: %s", errors.UserMessage(err))
		}
	}

	if s.Kind == venue.KindStanding && s.Rows == 0 && s.SeatsPerRow == 0 {
		fail("standing section needs rows or seats_per_row to size its area")
	}

	for j, rc := range s.RowConfigs {
		validateBlock(fail, j+1, rc)
	}
	if s.Numbering == venue.NumberingPerBlock {
		used := make(map[string]bool, len(s.RowConfigs))
		for _, l := range layout.BlockLetters(layout.SortBlocks(s.RowConfigs)) {
			u := strings.ToUpper(l)
			if used[u] {
				fail("block letter %q used twice with per-block numbering", l)
			}
			used[u] = true
		}
	}
}

func validateBlock(fail func(string, ...any), n int, rc venue.RowConfig) {
	if rc.FromRow < 1 || rc.ToRow < rc.FromRow {
		fail("row_configs[%d]: invalid rows %d..%d", n, rc.FromRow, rc.ToRow)
	}
	if rc.FromColumn < 1 || rc.ToColumn < rc.FromColumn {
		fail("row_configs[%d]: invalid columns %d..%d", n, rc.FromColumn, rc.ToColumn)
	}
	if _, ok := numbering.ParseDirection(string(rc.Direction)); !ok {
		fail("row_configs[%d]: unknown direction %q", n, rc.Direction)
	}
	switch rc.LabelSide {
	case "", venue.SideLeft, venue.SideRight:
	default:
		fail("row_configs[%d]: unknown label_side %q", n, rc.LabelSide)
	}
	if rc.BlockLetter != "" {
		if err := errors.ValidateLetter(rc.BlockLetter); err != nil {
			fail("row_configs[%d]: block_letter: %s", n, errors.UserMessage(err))
		}
	}
	if rc.GapAfterColumn < 0 || rc.GapSize < 0 {
		fail("row_configs[%d]: gap values cannot be negative", n)
	}
	if rc.Price < 0 {
		fail("row_configs[%d]: price cannot be negative", n)
	}
	if err := errors.ValidateColor(rc.Color); err != nil {
		fail("row_configs[%d]: %s", n, errors.UserMessage(err))
	}
	for _, l := range rc.SkipLetters {
		if err := errors.ValidateLetter(l); err != nil {
			fail("row_configs[%d]: skip_letters: %s", n, errors.UserMessage(err))
		}
	}
}

// ValidateOverrides checks seat ids and explicit statuses of an override set.
// An explicit status must match the list the entry appears in, so the list
// precedence cannot be bypassed.
func ValidateOverrides(set venue.OverrideSet) error {
	var errs errors.List
	check := func(category venue.Status, list []venue.Override) {
		for i, o := range list {
			if err := errors.ValidateSeatID(o.SeatID); err != nil {
				errs.Add(errors.ErrCodeInvalidOverride, "%s[%d]: %s", category, i, errors.UserMessage(err))
			}
			switch o.Status {
			case "", category:
			case venue.StatusAvailable, venue.StatusReserved, venue.StatusBlocked, venue.StatusSold:
				errs.Add(errors.ErrCodeInvalidOverride, "%s[%d]: status %q contradicts the %s list", category, i, o.Status, category)
			default:
				errs.Add(errors.ErrCodeInvalidOverride, "%s[%d]: unknown status %q", category, i, o.Status)
			}
		}
	}
	check(venue.StatusReserved, set.Reserved)
	check(venue.StatusBlocked, set.Blocked)
	check(venue.StatusSold, set.Sold)
	return errs.Err()
}
