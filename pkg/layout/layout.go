// Package layout compiles declarative venue sections into seats and row labels.
//
// Compilation is a single synchronous pass:
//
//  1. Sections are ordered top-to-bottom, left-to-right by (Y, X).
//  2. Front-of-house sections are skipped.
//  3. Standing sections become one circular seat each via pkg/layout/standing.
//  4. Seated sections are expanded block by block. Each block contributes
//     one seat per (row, column) with a row letter from pkg/layout/rows and a
//     seat number from pkg/layout/numbering.
//  5. Live statuses are merged from the override lists via pkg/layout/overlay.
//
// The compiler never validates its input. Malformed ranges simply produce no
// seats, and letter or id exhaustion degrades to fallback labels that are
// logged as warnings.
package layout

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/layout/numbering"
	"github.com/matzehuels/seatplan/pkg/layout/overlay"
	"github.com/matzehuels/seatplan/pkg/layout/rows"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/venue"
)

// Compiler turns venue sections into a Layout.
//
// The zero value is usable: it logs nowhere and gives every compilation a
// fresh standing synthesizer with the default seed.
type Compiler struct {
	// Logger receives exhaustion warnings. Nil discards them.
	Logger *log.Logger

	// Standing issues standing-seat ids. Share one synthesizer across the
	// compilations of an editing session so on-demand standing tickets
	// never collide with compiled ones.
	Standing *standing.Synthesizer

	// OnExhausted, if set, is called for every fallback row label or
	// standing id, with kind one of the observability.Exhausted* constants.
	OnExhausted func(kind, section, label string)
}

// Compile builds the layout of sections and stamps statuses from overrides.
// Neither argument is modified.
func (c *Compiler) Compile(sections []venue.Section, overrides venue.OverrideSet) venue.Layout {
	l := c.Build(sections)
	l.Seats = overlay.Merge(l.Seats, overrides)
	return l
}

// Build computes the layout geometry with every seat available.
func (c *Compiler) Build(sections []venue.Section) venue.Layout {
	syn := c.Standing
	if syn == nil {
		syn = standing.New(standing.Options{OnExhausted: c.StandingExhausted})
	}

	seats := []venue.Seat{}
	labels := newLabelTracker()
	for _, sec := range SortSections(sections) {
		switch {
		case sec.IsFOH():
			continue
		case sec.IsStanding():
			seats = append(seats, syn.Synthesize(sec))
			continue
		}
		seats = c.section(sec, seats, labels)
	}

	return venue.Layout{Seats: seats, Labels: labels.anchors()}
}

// SortSections returns a copy of sections stably ordered by (Y, X).
func SortSections(sections []venue.Section) []venue.Section {
	out := append([]venue.Section(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// BlockLetters returns the effective block letter of each block of sorted,
// which must already be ordered by SortBlocks. Explicit letters are kept.
// A block without one takes its ordinal letter (A, B, ...), advancing past
// any letter another block of the section already uses. Letters compare
// case-insensitively.
func BlockLetters(sorted []venue.RowConfig) []string {
	letters := make([]string, len(sorted))
	taken := make(map[string]bool, len(sorted))
	for i, rc := range sorted {
		if rc.BlockLetter != "" {
			letters[i] = rc.BlockLetter
			taken[strings.ToUpper(rc.BlockLetter)] = true
		}
	}
	for i := range sorted {
		if letters[i] != "" {
			continue
		}
		for k := i; ; k++ {
			cand := rows.LetterForIndex(k, nil)
			if !taken[cand] {
				letters[i] = cand
				taken[cand] = true
				break
			}
		}
	}
	return letters
}

// SortBlocks returns a copy of blocks stably ordered by FromColumn.
func SortBlocks(blocks []venue.RowConfig) []venue.RowConfig {
	out := append([]venue.RowConfig(nil), blocks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].FromColumn < out[j].FromColumn })
	return out
}

// section expands one seated section and appends its seats.
func (c *Compiler) section(sec venue.Section, seats []venue.Seat, labels *labelTracker) []venue.Seat {
	perBlock := sec.Numbering == venue.NumberingPerBlock
	prefix := sec.Initial()
	key := sec.Key()

	exhausted := func(label string, attempts int) {
		c.logger().Warn("row letters exhausted", "section", key, "label", label, "attempts", attempts)
		if c.OnExhausted != nil {
			c.OnExhausted(observability.ExhaustedRowLetters, key, label)
		}
	}

	var gen *rows.Generator
	if !perBlock {
		gen = rows.NewGenerator()
		gen.OnExhausted = exhausted
	}

	blocks := SortBlocks(sec.RowConfigs)
	letters := BlockLetters(blocks)

	cursor := 0
	for i, rc := range blocks {
		if i > 0 {
			cursor += venue.BlockSeparation
		}

		skip := rows.Skip(sec.SkipLetters, rc.SkipLetters)
		block := rc.BlockLetter
		if perBlock {
			block = letters[i]
		}
		tier, price, color := blockDefaults(sec, rc)

		for row := rc.FromRow; row <= rc.ToRow; row++ {
			var letter string
			if perBlock {
				letter = rows.LetterForIndexFunc(row-rc.FromRow, skip, exhausted)
			} else {
				letter = gen.Next(skip)
			}
			cy := sec.Y + float64(row+sec.RowOffset)*venue.GridStep

			for col := rc.FromColumn; col <= rc.ToColumn; col++ {
				pos := cursor + col - rc.FromColumn
				if rc.GapAfterColumn > 0 && col > rc.GapAfterColumn {
					pos += rc.GapSize
				}
				cx := sec.X + float64(pos)*venue.GridStep
				n := numbering.SeatNumber(col, rc.FromColumn, rc.ToColumn, rc.Direction)

				seats = append(seats, venue.Seat{
					ID:          seatID(prefix, block, letter, n, perBlock),
					Row:         letter,
					Number:      n,
					SectionID:   key,
					BlockLetter: block,
					Tier:        tier,
					Price:       price,
					Color:       color,
					CX:          cx,
					CY:          cy,
					Status:      venue.StatusAvailable,
				})
				labels.observe(labelKey{section: key, block: block, row: letter}, cx, cy, rc)
			}
		}

		cursor += max(rc.Columns(), 0)
		if rc.HasGap() {
			cursor += rc.GapSize
		}
	}
	return seats
}

// blockDefaults resolves tier, price and color, falling back to the section.
func blockDefaults(sec venue.Section, rc venue.RowConfig) (string, float64, string) {
	tier, price, color := rc.Tier, rc.Price, rc.Color
	if tier == "" {
		tier = sec.Tier
	}
	if price == 0 {
		price = sec.Price
	}
	if color == "" {
		color = sec.Color
	}
	return tier, price, color
}

func seatID(prefix, block, row string, n int, perBlock bool) string {
	if perBlock {
		return fmt.Sprintf("%s-%s-%s%d", prefix, block, row, n)
	}
	return fmt.Sprintf("%s-%s%d", prefix, row, n)
}

// StandingExhausted reports a standing id taken from the sequential counter.
// It matches standing.Options.OnExhausted so callers building their own
// synthesizer can route its warnings through the compiler.
func (c *Compiler) StandingExhausted(section, id string, rolls int) {
	c.logger().Warn("standing ids exhausted", "section", section, "id", id, "rolls", rolls)
	if c.OnExhausted != nil {
		c.OnExhausted(observability.ExhaustedStandingID, section, id)
	}
}

func (c *Compiler) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

var discard = log.New(io.Discard)
