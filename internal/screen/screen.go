// Package screen is the read-only view of terminal state the cell rebuilder
// consumes: a snapshot of rows, the cursor, and an optional selection,
// cloned under the terminal's lock so the renderer can work lock-free.
//
// Grounded on the shape of terminal.BufferSnapshot/BufferCell (Cols, Rows,
// ViewportY, CursorX, CursorY, a per-row cell slice) but generalized from a
// flat Fg/Bg/Flags cell to the richer styled cell the rebuilder needs.
package screen

import "github.com/vibetunnel/termcore/internal/rowid"

// Type distinguishes the primary screen from the alternate screen, since
// the row cache keys on which one is active.
type Type int

const (
	Primary Type = iota
	Alternate
)

// CursorStyle mirrors the styles a terminal emulator typically exposes.
type CursorStyle int

const (
	CursorBox CursorStyle = iota
	CursorBoxHollow
	CursorBar
)

// UnderlineStyle enumerates the sprite variants the glyph atlas renders.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineDotted
	UnderlineDashed
	UnderlineCurly
)

// Color is an optional RGB triple. Set distinguishes "use this color" from
// "no color assigned, fall back to default" — the cell rebuilder's color
// resolution depends on that distinction, so black (R=G=B=0) cannot double
// as "unset". The zero-value Color, with Set false, is unset.
type Color struct {
	R, G, B uint8
	Set     bool
}

// CellAttrs carries the style bits attached to a cell's glyph.
type CellAttrs struct {
	Bold          bool
	Italic        bool
	Inverse       bool
	Faint         bool
	Wide          bool
	Underline     UnderlineStyle
	Strikethrough bool
}

// Cell is one character position in a row.
type Cell struct {
	Char       rune
	Fg         Color
	Bg         Color
	Attrs      CellAttrs
	FontIndex  uint16 `json:"font_index"`
	GlyphIndex uint32 `json:"glyph_index"`
}

// Row is one line of the screen, identified independent of its current
// screen-relative position so the cache survives scrolling.
type Row struct {
	ID    rowid.RowID
	Dirty bool
	Cells []Cell
}

// Point is a screen-absolute (not viewport-relative) coordinate.
type Point struct {
	X, Y int
}

// Selection is an inclusive range of screen points, in screen-absolute
// coordinates. A nil *Selection means no selection is active.
type Selection struct {
	Start Point
	End   Point
}

// normalized returns Start/End such that Start sorts before End.
func (s *Selection) normalized() (Point, Point) {
	start, end := s.Start, s.End
	if start.Y > end.Y || (start.Y == end.Y && start.X > end.X) {
		start, end = end, start
	}
	return start, end
}

// ContainsRow reports whether any column of the given screen-absolute row
// falls inside the selection.
func (s *Selection) ContainsRow(screenY int) bool {
	if s == nil {
		return false
	}
	start, end := s.normalized()
	return screenY >= start.Y && screenY <= end.Y
}

// Contains reports whether a single screen-absolute point is selected.
func (s *Selection) Contains(p Point) bool {
	if s == nil {
		return false
	}
	start, end := s.normalized()
	if p.Y < start.Y || p.Y > end.Y {
		return false
	}
	if p.Y == start.Y && p.X < start.X {
		return false
	}
	if p.Y == end.Y && p.X > end.X {
		return false
	}
	return true
}

// Cursor is the terminal's current cursor state.
type Cursor struct {
	X, Y    int
	Style   CursorStyle
	Visible bool
}

// Snapshot is the cloned, lock-free view the rebuilder operates on for one
// frame. Rows are in viewport order, index 0 is the top visible row.
type Snapshot struct {
	Cols      int
	Rows      int
	ViewportY int `json:"viewport_y"`
	Type      Type
	Grid      []Row
	Cursor    Cursor
}

// ViewportToScreen converts a viewport-relative coordinate to a
// screen-absolute one. ViewportY is the scrollback offset from the bottom
// of history; 0 means the viewport is pinned to the bottom.
func (s *Snapshot) ViewportToScreen(x, y int) Point {
	return Point{X: x, Y: s.ViewportY + y}
}

// AtBottom reports whether the viewport is showing the live bottom of the
// screen, i.e. not scrolled back into history.
func (s *Snapshot) AtBottom() bool {
	return s.ViewportY == 0
}

// Row returns the viewport row at y, or the zero Row if out of range.
func (s *Snapshot) Row(y int) Row {
	if y < 0 || y >= len(s.Grid) {
		return Row{}
	}
	return s.Grid[y]
}
