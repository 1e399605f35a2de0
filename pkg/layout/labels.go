package layout

import (
	"strings"

	"github.com/matzehuels/seatplan/pkg/venue"
)

// labelKey identifies one physical row of one block.
type labelKey struct {
	section string
	block   string
	row     string
}

// rowExtent is the horizontal span of a row plus what is needed to place
// its label.
type rowExtent struct {
	minX, maxX float64
	y          float64
	side       venue.Side
}

// labelTracker collects row extents in first-seen order.
type labelTracker struct {
	order []labelKey
	rows  map[labelKey]*rowExtent
}

func newLabelTracker() *labelTracker {
	return &labelTracker{rows: make(map[labelKey]*rowExtent)}
}

// observe widens the extent of the row at k to include x.
func (t *labelTracker) observe(k labelKey, x, y float64, rc venue.RowConfig) {
	if ext, ok := t.rows[k]; ok {
		ext.minX = min(ext.minX, x)
		ext.maxX = max(ext.maxX, x)
		return
	}
	t.order = append(t.order, k)
	t.rows[k] = &rowExtent{minX: x, maxX: x, y: y, side: LabelSide(rc)}
}

// anchors returns one label anchor per observed row.
func (t *labelTracker) anchors() []venue.RowLabel {
	out := make([]venue.RowLabel, 0, len(t.order))
	for _, k := range t.order {
		ext := t.rows[k]
		x := ext.minX - venue.LabelOffset
		if ext.side == venue.SideRight {
			x = ext.maxX + venue.LabelOffset
		}
		out = append(out, venue.RowLabel{
			X:     x,
			Y:     ext.y + venue.LabelBaseline,
			Label: k.row,
			Side:  ext.side,
		})
	}
	return out
}

// LabelSide returns the side on which rows of rc carry their label.
//
// An explicit RowConfig.LabelSide wins. Otherwise right-numbered rows are
// labelled on the right and left-numbered rows on the left. Center-numbered
// rows follow the block letter: R goes right, anything else (including C and
// L) goes left.
func LabelSide(rc venue.RowConfig) venue.Side {
	switch rc.LabelSide {
	case venue.SideLeft, venue.SideRight:
		return rc.LabelSide
	}
	switch rc.Direction {
	case venue.DirectionRight:
		return venue.SideRight
	case venue.DirectionCenter:
		if strings.EqualFold(strings.TrimSpace(rc.BlockLetter), "R") {
			return venue.SideRight
		}
	}
	return venue.SideLeft
}
