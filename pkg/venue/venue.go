// Package venue defines the data model shared by the seat-layout compiler.
//
// A venue is described declaratively as a list of [Section] values. Each
// seated section is split into one or more [RowConfig] blocks that carry their
// own tier, price and numbering rules. Compiling the sections produces a
// [Layout]: the fully enumerated [Seat] collection plus the [RowLabel]
// anchors used to draw row markers.
//
// The types here are plain values. They carry JSON and TOML tags so venue
// files can be loaded by pkg/io, but they hold no behaviour beyond small
// derived accessors.
package venue

import (
	"strings"
	"unicode"
)

// Geometry constants shared by the compiler and its consumers.
const (
	// GridStep is the distance in user units between adjacent seats and rows.
	GridStep = 22.0

	// BlockSeparation is the number of grid columns inserted between
	// successive row blocks of one section.
	BlockSeparation = 2

	// LabelOffset is the horizontal distance between a row's outermost seat
	// and its row label.
	LabelOffset = 15.0

	// LabelBaseline is the vertical correction applied to row labels.
	LabelBaseline = 4.0

	// StandingJitter bounds the random displacement of additional standing tickets.
	StandingJitter = 10.0
)

// SectionKind tags how a section is compiled.
type SectionKind string

const (
	// KindSeated is an ordinary gridded section.
	KindSeated SectionKind = "seated"
	// KindStanding is a capacity pool without a seat grid.
	KindStanding SectionKind = "standing"
	// KindFOH is a front-of-house area that produces no seats.
	KindFOH SectionKind = "foh"
)

// RowNumbering selects how row letters are assigned within a section.
type RowNumbering string

const (
	// NumberingContinuous shares one letter stream across all blocks of a section.
	NumberingContinuous RowNumbering = "continuous"
	// NumberingPerBlock restarts lettering at A for every block.
	NumberingPerBlock RowNumbering = "per-block"
)

// Direction is the seat-numbering policy of a row block.
type Direction string

const (
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"
	DirectionCenter Direction = "center"
)

// Side is the side of a row on which its label is drawn.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Venue is the top-level content of a venue file.
type Venue struct {
	Name     string    `json:"name" toml:"name"`
	Sections []Section `json:"sections" toml:"sections"`
}

// Section returns the section with the given key.
func (v Venue) Section(key string) (Section, bool) {
	for _, s := range v.Sections {
		if s.Key() == key {
			return s, true
		}
	}
	return Section{}, false
}

// Section is a rectangular venue area with its own row grid or standing capacity.
type Section struct {
	ID          string       `json:"id" toml:"id"`
	Name        string       `json:"name" toml:"name"`
	Prefix      string       `json:"prefix,omitempty" toml:"prefix"`
	X           float64      `json:"x" toml:"x"`
	Y           float64      `json:"y" toml:"y"`
	Rows        int          `json:"rows" toml:"rows"`
	SeatsPerRow int          `json:"seats_per_row" toml:"seats_per_row"`
	RowOffset   int          `json:"row_offset,omitempty" toml:"row_offset"`
	Kind        SectionKind  `json:"kind,omitempty" toml:"kind"`
	Numbering   RowNumbering `json:"numbering,omitempty" toml:"numbering"`
	SkipLetters []string     `json:"skip_letters,omitempty" toml:"skip_letters"`

	// Defaults applied when a block leaves them empty, and to standing seats.
	Tier  string  `json:"tier,omitempty" toml:"tier"`
	Price float64 `json:"price,omitempty" toml:"price"`
	Color string  `json:"color,omitempty" toml:"color"`

	RowConfigs []RowConfig `json:"row_configs,omitempty" toml:"row_configs"`
}

// RowConfig is one contiguous row-and-column block inside a section.
type RowConfig struct {
	FromRow        int       `json:"from_row" toml:"from_row"`
	ToRow          int       `json:"to_row" toml:"to_row"`
	FromColumn     int       `json:"from_column" toml:"from_column"`
	ToColumn       int       `json:"to_column" toml:"to_column"`
	Tier           string    `json:"tier,omitempty" toml:"tier"`
	Price          float64   `json:"price,omitempty" toml:"price"`
	Color          string    `json:"color,omitempty" toml:"color"`
	Direction      Direction `json:"direction,omitempty" toml:"direction"`
	BlockLetter    string    `json:"block_letter,omitempty" toml:"block_letter"`
	GapAfterColumn int       `json:"gap_after_column,omitempty" toml:"gap_after_column"`
	GapSize        int       `json:"gap_size,omitempty" toml:"gap_size"`
	SkipLetters    []string  `json:"skip_letters,omitempty" toml:"skip_letters"`

	// LabelSide pins the row-label side. Empty falls back to the
	// direction/block-letter heuristic.
	LabelSide Side `json:"label_side,omitempty" toml:"label_side"`
}

// Key returns the identity used to scope per-section state such as standing
// ticket counters. It is the section ID, or the name when no ID is set.
func (s Section) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

// Initial returns the seat-id prefix of the section: the explicit Prefix,
// else the upper-cased first letter of Name, else of ID, else "S".
func (s Section) Initial() string {
	if p := strings.TrimSpace(s.Prefix); p != "" {
		return p
	}
	for _, src := range []string{s.Name, s.ID} {
		for _, r := range strings.TrimSpace(src) {
			return string(unicode.ToUpper(r))
		}
	}
	return "S"
}

// IsStanding reports whether the section is a standing capacity pool.
func (s Section) IsStanding() bool { return s.Kind == KindStanding }

// IsFOH reports whether the section is front-of-house.
func (s Section) IsFOH() bool { return s.Kind == KindFOH }

// Width returns the horizontal extent of the section rectangle.
func (s Section) Width() float64 { return float64(s.SeatsPerRow) * GridStep }

// Height returns the vertical extent of the section rectangle.
func (s Section) Height() float64 { return float64(s.Rows) * GridStep }

// Columns returns the number of columns spanned by the block.
// Malformed ranges yield zero or a negative count.
func (rc RowConfig) Columns() int { return rc.ToColumn - rc.FromColumn + 1 }

// HasGap reports whether the block inserts an aisle gap.
func (rc RowConfig) HasGap() bool { return rc.GapAfterColumn > 0 && rc.GapSize > 0 }
