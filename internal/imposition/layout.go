// Package imposition lays the eight booklet pages out on the two sides of
// one landscape sheet. The top row of each side is printed upside down so
// the sheet folds into a booklet after a long-edge flip.
package imposition

import (
	"fmt"
	"strings"
)

// Side of the sheet
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// ParseSide accepts "a", "A", "b" or "B"
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideA:
		return SideA, true
	case SideB:
		return SideB, true
	default:
		return "", false
	}
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Instructions tells the user how to feed the paper for this side
func (s Side) Instructions() string {
	if s == SideA {
		return "Print First"
	}
	return "Flip Paper on Long Edge & Print Second"
}

// Position of a quadrant on a side
type Position string

const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Positions in reading order
var Positions = []Position{TopLeft, TopRight, BottomLeft, BottomRight}

// Rotated reports whether content in this position prints upside down
func (p Position) Rotated() bool {
	return p == TopLeft || p == TopRight
}

// mirror swaps left and right, which is where a quadrant lands after a long-edge flip
func (p Position) mirror() Position {
	switch p {
	case TopLeft:
		return TopRight
	case TopRight:
		return TopLeft
	case BottomLeft:
		return BottomRight
	default:
		return BottomLeft
	}
}

// Page is a booklet page number, 1 through 8
type Page int

const (
	PageCover Page = iota + 1
	PageMonth
	PagePriorities
	PageWeeks12
	PageWeeks34
	PageHabits
	PageChecklist
	PageNotes
)

var pageTitles = map[Page]string{
	PageCover:      "Cover",
	PageMonth:      "Month",
	PagePriorities: "Priorities",
	PageWeeks12:    "Weeks 1-2",
	PageWeeks34:    "Weeks 3-4",
	PageHabits:     "Habits",
	PageChecklist:  "Checklist",
	PageNotes:      "Notes",
}

func (p Page) String() string {
	return fmt.Sprintf("P%d %s", int(p), pageTitles[p])
}

// Quadrant places one page on a side
type Quadrant struct {
	Position Position
	Page     Page
	Rotated  bool
}

var table = map[Side]map[Position]Page{
	SideA: {TopLeft: PageNotes, TopRight: PageCover, BottomLeft: PageMonth, BottomRight: PageChecklist},
	SideB: {TopLeft: PageHabits, TopRight: PagePriorities, BottomLeft: PageWeeks12, BottomRight: PageWeeks34},
}

// Layout returns the four quadrants of a side in reading order
func Layout(side Side) ([]Quadrant, error) {
	pages, ok := table[side]
	if !ok {
		return nil, fmt.Errorf("unknown side %q", side)
	}

	quadrants := make([]Quadrant, 0, len(Positions))
	for _, pos := range Positions {
		quadrants = append(quadrants, Quadrant{Position: pos, Page: pages[pos], Rotated: pos.Rotated()})
	}
	return quadrants, nil
}

// Backing returns the page printed behind the given quadrant
func Backing(side Side, pos Position) (Page, error) {
	pages, ok := table[side.Other()]
	if !ok {
		return 0, fmt.Errorf("unknown side %q", side)
	}
	return pages[pos.mirror()], nil
}
