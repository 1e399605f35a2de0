// Package numbering maps physical columns of a row block to printed seat numbers.
package numbering

import (
	"strings"

	"github.com/matzehuels/seatplan/pkg/venue"
)

// SeatNumber returns the printed number of the seat at column within the
// block spanning fromColumn..toColumn.
//
//   - left: 1, 2, 3, ... from the left edge.
//   - right: 1, 2, 3, ... from the right edge.
//   - center: 1 in the middle, even numbers radiating left and odd numbers
//     radiating right, e.g. 4 2 1 3 5 for five seats and 6 4 2 1 3 5 for six.
//
// Any other direction numbers from the left.
func SeatNumber(column, fromColumn, toColumn int, dir venue.Direction) int {
	actual := column - fromColumn + 1
	total := toColumn - fromColumn + 1

	switch dir {
	case venue.DirectionRight:
		return total - actual + 1
	case venue.DirectionCenter:
		return center(actual, total)
	default:
		return actual
	}
}

func center(actual, total int) int {
	if total%2 == 1 {
		mid := (total + 1) / 2
		switch {
		case actual == mid:
			return 1
		case actual < mid:
			return (mid - actual) * 2
		default:
			return (actual-mid)*2 + 1
		}
	}

	// Even blocks have no middle seat: seat 1 is the first right of the split.
	leftCenter := total / 2
	if actual <= leftCenter {
		return (leftCenter - actual + 1) * 2
	}
	return (actual-leftCenter-1)*2 + 1
}

// ParseDirection converts a config string to a Direction.
// The empty string maps to left; unknown values report ok=false.
func ParseDirection(s string) (venue.Direction, bool) {
	switch d := venue.Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return venue.DirectionLeft, true
	case venue.DirectionLeft, venue.DirectionRight, venue.DirectionCenter:
		return d, true
	default:
		return venue.DirectionLeft, false
	}
}
