// Package atlas declares the glyph/sprite atlas boundary the cell
// rebuilder renders against. The atlas texture, its packing strategy, and
// GPU upload are external collaborators out of scope here; this package
// fixes the contract the rebuilder calls through.
package atlas

import "github.com/vibetunnel/termcore/internal/screen"

// Rect is a glyph's or sprite's placement within an atlas texture, plus
// the pen offset from the cell origin needed to position it.
type Rect struct {
	X, Y          uint32
	Width, Height uint32
	OffsetX       int32
	OffsetY       int32
}

// Metrics describes a font's regular-weight ascii glyph metrics, used to
// derive the terminal's cell size.
type Metrics struct {
	CellWidth         uint32
	CellHeight        uint32
	UnderlineThickness float32
	UnderlinePosition  float32
}

// Atlas is one texture (greyscale or color) the rebuilder samples glyphs
// and underline/strikethrough sprites from.
type Atlas interface {
	// LookupGlyph returns the placement for a shaped glyph, rendering it
	// into the atlas on first use if necessary.
	LookupGlyph(fontIndex uint16, glyphIndex uint32, cellHeight uint32) (Rect, bool)

	// LookupUnderline returns the placement of an underline sprite variant.
	LookupUnderline(style screen.UnderlineStyle, cellHeight uint32) (Rect, bool)

	// MeasureASCII returns metrics for a regular-weight ascii rune (callers
	// pass 'M' per convention; any ascii rune works), used for font-metric
	// resets.
	MeasureASCII(r rune, cellHeight uint32) Metrics

	// Modified reports whether the atlas texture has unflushed writes.
	Modified() bool
	// Resized reports whether the atlas texture itself grew since the last
	// flush, requiring a full reupload rather than a sub-image update.
	Resized() bool
	// ClearFlags resets Modified/Resized after a flush.
	ClearFlags()
}
