package main

import (
	"github.com/vibetunnel/termcore/internal/atlas"
	"github.com/vibetunnel/termcore/internal/screen"
	"github.com/vibetunnel/termcore/internal/shaping"
)

// asciiShaper and asciiAtlas are a minimal monospace stand-in for the real
// HarfBuzz shaper and rasterized glyph atlas, which are out of scope here
// (atlas rasterization internals are an external collaborator concern).
// They give `termcore rebuild` something concrete to drive the pipeline
// against without a font file on hand: one glyph per non-space cell, laid
// out at a fixed cell pitch, indexed by the cell's own rune value.
type asciiShaper struct{}

func (asciiShaper) ShapeRow(cells []screen.Cell) []shaping.Run {
	runs := make([]shaping.Run, 0, len(cells))
	for x, c := range cells {
		if c.Char == 0 || c.Char == ' ' {
			continue
		}
		runs = append(runs, shaping.Run{
			X: x,
			Glyphs: []shaping.Glyph{{
				FontIndex:  0,
				GlyphIndex: uint32(c.Char),
			}},
		})
	}
	return runs
}

type asciiAtlas struct {
	cellWidth, cellHeight uint32
}

func (a *asciiAtlas) LookupGlyph(fontIndex uint16, glyphIndex uint32, cellHeight uint32) (atlas.Rect, bool) {
	return atlas.Rect{X: glyphIndex, Y: 0, Width: a.cellWidth, Height: cellHeight}, true
}

func (a *asciiAtlas) LookupUnderline(style screen.UnderlineStyle, cellHeight uint32) (atlas.Rect, bool) {
	if style == screen.UnderlineNone {
		return atlas.Rect{}, false
	}
	return atlas.Rect{X: 0, Y: cellHeight - 1, Width: a.cellWidth, Height: 1}, true
}

func (a *asciiAtlas) MeasureASCII(r rune, cellHeight uint32) atlas.Metrics {
	return atlas.Metrics{
		CellWidth:           a.cellWidth,
		CellHeight:          cellHeight,
		UnderlineThickness:  1,
		UnderlinePosition:   float32(cellHeight) - 1,
	}
}

func (a *asciiAtlas) Modified() bool   { return false }
func (a *asciiAtlas) Resized() bool    { return false }
func (a *asciiAtlas) ClearFlags()      {}
