// Package shaping declares the font-shaper boundary the cell rebuilder
// renders against. Shaping itself — HarfBuzz-style run segmentation,
// ligature and emoji-cluster handling — is an external collaborator and
// out of scope here; this package only fixes the contract at the call
// boundary, the way session.Manager depends on a Session only through its
// exported method surface.
package shaping

import "github.com/vibetunnel/termcore/internal/screen"

// Glyph is one shaped glyph within a run, already resolved to an atlas key.
type Glyph struct {
	FontIndex  uint16
	GlyphIndex uint32
	IsEmoji    bool
}

// Run is a contiguous span of a row's cells shaped together. Glyphs is
// aligned 1:1 with the cells at columns [X, X+len(Glyphs)).
type Run struct {
	X      int
	Glyphs []Glyph
}

// Shaper produces shaped runs for a row of cells.
type Shaper interface {
	ShapeRow(cells []screen.Cell) []Run
}
