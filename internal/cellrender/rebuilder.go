// Package cellrender turns a screen snapshot into the GPU vertex-instance
// records a terminal renderer uploads each frame, caching unchanged rows
// at row granularity so a static screen costs a memcpy instead of a
// reshape.
//
// Grounded on terminal.BufferSnapshot.SerializeToBinary/encodeCell for the
// discipline of a fixed, order-significant packed record written
// field-by-field into a pre-sized buffer, and on TerminalBuffer's
// dirty/anydirty bookkeeping for the row cache's "hit requires !dirty"
// rule.
package cellrender

import (
	"errors"

	"go.uber.org/zap"

	"github.com/vibetunnel/termcore/internal/atlas"
	"github.com/vibetunnel/termcore/internal/config"
	"github.com/vibetunnel/termcore/internal/rowid"
	"github.com/vibetunnel/termcore/internal/screen"
	"github.com/vibetunnel/termcore/internal/shaping"
	"github.com/vibetunnel/termcore/internal/telemetry"
)

// ErrCapacityExceeded signals that a row could not be fully emitted into
// the current output array capacity; the caller should grow the arrays
// and retry a full rebuild.
var ErrCapacityExceeded = errors.New("cellrender: output array capacity exceeded mid-row")

// Palette is the set of default/selection/cursor colors the rebuilder
// falls back to when a cell or selection doesn't specify its own.
type Palette struct {
	DefaultFg   screen.Color
	DefaultBg   screen.Color
	SelectionFg screen.Color // zero value (Set=false) means "use DefaultBg"
	SelectionBg screen.Color // zero value (Set=false) means "use DefaultFg"
	CursorColor screen.Color
}

// Rebuilder holds the cache, output arrays, and GPU/atlas bookkeeping for
// one render target (window). It is single-threaded: callers must confine
// it to the render thread that owns the GPU context, per the teacher's
// threadEnter/threadExit discipline this package does not itself enforce.
type Rebuilder struct {
	shaper     shaping.Shaper
	greyscale  atlas.Atlas
	color      atlas.Atlas
	palette    Palette

	cache *rowCache

	cellsBG []GPUCell
	cells   []GPUCell

	cellWidth  uint32
	cellHeight uint32

	underlineThickness     float32
	underlinePosition      float32
	strikethroughPosition  float32
	strikethroughThickness float32

	bgUpload uploadState
	fgUpload uploadState

	mailbox chan MailboxMessage

	cacheHits   int64
	cacheMisses int64
}

// New builds a Rebuilder for a screen of the given size. rows is used
// only to size the initial row cache, via cfg's cellCache.minCapacity/
// capacityPerRow overrides of the max(80, rows*10) sizing rule; Rebuild
// re-derives array capacity from the snapshot it's given each call. Pass
// config.Config{} (or config.Default()) when no loaded config is at hand.
func New(shaper shaping.Shaper, greyscale, color atlas.Atlas, palette Palette, cfg config.Config, rows int) *Rebuilder {
	return &Rebuilder{
		shaper:    shaper,
		greyscale: greyscale,
		color:     color,
		palette:   palette,
		cache:     newRowCache(cfg.RowCacheCapacity(rows)),
		mailbox:   make(chan MailboxMessage, 8),
	}
}

// CacheStats reports the row cache's cumulative hit/miss counts since
// construction (a ResetFontMetrics-triggered cache clear does not reset
// them) and its current occupancy/capacity, for the debug bridge's frame
// stats.
func (r *Rebuilder) CacheStats() (hits, misses int64, size, capacity int) {
	return r.cacheHits, r.cacheMisses, r.cache.len(), r.cache.cap()
}

// RebuildInput is the per-frame input to Rebuild.
type RebuildInput struct {
	ActiveScreen screen.Type
	Selection    *screen.Selection
	Snapshot     *screen.Snapshot
	DrawCursor   bool
}

// CellsBG returns the current background array. Valid until the next
// Rebuild call.
func (r *Rebuilder) CellsBG() []GPUCell { return r.cellsBG }

// Cells returns the current foreground array. Valid until the next
// Rebuild call.
func (r *Rebuilder) Cells() []GPUCell { return r.cells }

// Rebuild populates the background and foreground arrays from scratch for
// one frame, per §4.2: reset arrays, walk rows top to bottom consulting
// the row cache, then overlay the cursor and its inverted-glyph twin.
func (r *Rebuilder) Rebuild(in RebuildInput) error {
	cols, rows := in.Snapshot.Cols, in.Snapshot.Rows

	r.cellsBG = resetWithCapacity(r.cellsBG, cols*rows)
	r.cells = resetWithCapacity(r.cells, cols*rows*2+1)

	r.bgUpload.glWritten = 0
	r.fgUpload.glWritten = 0

	cursorOverlayIdx := -1

	for y := 0; y < rows; y++ {
		var row screen.Row
		if y < len(in.Snapshot.Grid) {
			row = in.Snapshot.Grid[y]
		}

		screenPt := in.Snapshot.ViewportToScreen(0, y)
		var perRowSelection *screen.Selection
		if in.Selection != nil && in.Selection.ContainsRow(screenPt.Y) {
			perRowSelection = in.Selection
		}

		key := makeRowCacheKey(perRowSelection, in.ActiveScreen, row.ID)

		var rowCells []GPUCell
		if cached, ok := r.cache.get(key); ok && !row.Dirty {
			rowCells = cached
			r.cacheHits++
		} else {
			r.cacheMisses++
			built, err := r.shapeRow(perRowSelection, in.Snapshot, row, y)
			if err != nil {
				return err
			}
			rowCells = built
			r.cache.put(key, rowCells)
		}

		fgStart := len(r.cells)
		for _, c := range rowCells {
			c.GridRow = uint16(y)
			if c.Mode == ModeBG {
				r.cellsBG = append(r.cellsBG, c)
			} else {
				r.cells = append(r.cells, c)
			}
		}

		if in.DrawCursor && in.Snapshot.Cursor.Visible && in.Snapshot.Cursor.Style == screen.CursorBox &&
			in.Snapshot.AtBottom() && y == in.Snapshot.Cursor.Y {
			for i := fgStart; i < len(r.cells); i++ {
				if int(r.cells[i].GridCol) == in.Snapshot.Cursor.X && r.cells[i].Mode == ModeFG {
					cursorOverlayIdx = i
					break
				}
			}
		}

		if y < len(in.Snapshot.Grid) {
			in.Snapshot.Grid[y].Dirty = false
		}
	}

	if in.DrawCursor && in.Snapshot.Cursor.Visible {
		r.cells = append(r.cells, r.cursorCell(in.Snapshot))
	}

	if cursorOverlayIdx >= 0 {
		overlay := r.cells[cursorOverlayIdx]
		overlay.FgR, overlay.FgG, overlay.FgB, overlay.FgA = 0, 0, 0, 255
		r.cells = append(r.cells, overlay)
	}

	for _, c := range r.cellsBG {
		assertf(c.Mode == ModeBG, "non-background cell (mode %d) at col %d in background array", c.Mode, c.GridCol)
	}

	return nil
}

// resetWithCapacity truncates s to length 0, reallocating only if its
// capacity is smaller than needed — retaining capacity across frames is
// the point, per §4.2 step 1.
func resetWithCapacity(s []GPUCell, needed int) []GPUCell {
	if cap(s) < needed {
		return make([]GPUCell, 0, needed)
	}
	return s[:0]
}

// shapeRow shapes one row and emits its (background + foreground) cells
// in order, ready to be cached as a single combined list.
func (r *Rebuilder) shapeRow(sel *screen.Selection, snap *screen.Snapshot, row screen.Row, y int) ([]GPUCell, error) {
	var out []GPUCell
	for _, run := range r.shaper.ShapeRow(row.Cells) {
		for i, g := range run.Glyphs {
			x := run.X + i
			if x < 0 || x >= len(row.Cells) {
				continue
			}
			emitted, ok := r.updateCell(sel, snap, row.ID, row.Cells[x], g, x, y, len(out))
			if !ok {
				return nil, ErrCapacityExceeded
			}
			out = append(out, emitted...)
		}
	}
	return out, nil
}

func fallbackColor(c, fallback screen.Color) screen.Color {
	if c.Set {
		return c
	}
	return fallback
}

// updateCell resolves colors for one shaped glyph and returns up to four
// GPUCell records (background, glyph, underline, strikethrough), per
// §4.2's updateCell. pending is how many cells this row has already
// queued but not yet pushed into the output arrays, so the capacity check
// sees the row's true projected size.
func (r *Rebuilder) updateCell(sel *screen.Selection, snap *screen.Snapshot, rowID rowid.RowID, cell screen.Cell, g shaping.Glyph, x, y, pending int) ([]GPUCell, bool) {
	screenPt := snap.ViewportToScreen(x, y)

	var bg screen.Color
	bgSet := false
	var fg screen.Color

	switch {
	case sel != nil && sel.Contains(screenPt):
		bg = fallbackColor(r.palette.SelectionBg, r.palette.DefaultFg)
		bgSet = true
		fg = fallbackColor(r.palette.SelectionFg, r.palette.DefaultBg)
	case cell.Attrs.Inverse:
		bg = fallbackColor(cell.Fg, r.palette.DefaultFg)
		bgSet = true
		fg = fallbackColor(cell.Bg, r.palette.DefaultBg)
	default:
		if cell.Bg.Set {
			bg = cell.Bg
			bgSet = true
		}
		if cell.Fg.Set {
			fg = cell.Fg
		} else {
			fg = r.palette.DefaultFg
		}
	}

	alpha := uint8(255)
	if cell.Attrs.Faint {
		alpha = 175
	}

	hasGlyph := cell.Char > 0
	hasUnderline := cell.Attrs.Underline != screen.UnderlineNone
	hasStrike := cell.Attrs.Strikethrough

	needed := 0
	if bgSet {
		needed++
	}
	if hasGlyph {
		needed++
	}
	if hasUnderline {
		needed++
	}
	if hasStrike {
		needed++
	}

	if len(r.cellsBG)+len(r.cells)+pending+needed > cap(r.cellsBG)+cap(r.cells) {
		return nil, false
	}

	gridWidth := uint8(1)
	if cell.Attrs.Wide {
		gridWidth = 2
	}

	out := make([]GPUCell, 0, needed)

	if bgSet {
		out = append(out, GPUCell{
			GridCol: uint16(x), GridRow: uint16(y),
			BgR: bg.R, BgG: bg.G, BgB: bg.B, BgA: 255,
			Mode: ModeBG, GridWidth: gridWidth,
		})
	}

	if hasGlyph {
		rect, ok := r.atlasFor(g.IsEmoji).LookupGlyph(g.FontIndex, g.GlyphIndex, r.cellHeight)
		if !ok {
			telemetry.L().Warn("glyph lookup failed, skipping cell",
				telemetry.RowField(rowID.String()),
				zap.Int("col", x), zap.Int("row", y), zap.Uint32("glyph_index", g.GlyphIndex))
		} else {
			mode := ModeFG
			if g.IsEmoji {
				mode = ModeFGColor
			}
			out = append(out, GPUCell{
				GridCol: uint16(x), GridRow: uint16(y),
				GlyphX: rect.X, GlyphY: rect.Y,
				GlyphWidth: rect.Width, GlyphHeight: rect.Height,
				GlyphOffsetX: rect.OffsetX, GlyphOffsetY: rect.OffsetY,
				FgR: fg.R, FgG: fg.G, FgB: fg.B, FgA: alpha,
				Mode: mode, GridWidth: gridWidth,
			})
		}
	}

	if hasUnderline {
		rect, ok := r.greyscale.LookupUnderline(cell.Attrs.Underline, r.cellHeight)
		if !ok {
			telemetry.L().Warn("underline sprite lookup failed, skipping cell",
				telemetry.RowField(rowID.String()),
				zap.Int("col", x), zap.Int("row", y))
		} else {
			out = append(out, GPUCell{
				GridCol: uint16(x), GridRow: uint16(y),
				GlyphX: rect.X, GlyphY: rect.Y,
				GlyphWidth: rect.Width, GlyphHeight: rect.Height,
				GlyphOffsetX: rect.OffsetX, GlyphOffsetY: rect.OffsetY,
				FgR: fg.R, FgG: fg.G, FgB: fg.B, FgA: alpha,
				Mode: ModeFG, GridWidth: gridWidth,
			})
		}
	}

	if hasStrike {
		out = append(out, GPUCell{
			GridCol: uint16(x), GridRow: uint16(y),
			FgR: fg.R, FgG: fg.G, FgB: fg.B, FgA: alpha,
			Mode: ModeStrikethrough, GridWidth: gridWidth,
		})
	}

	return out, true
}

func (r *Rebuilder) atlasFor(isEmoji bool) atlas.Atlas {
	if isEmoji {
		return r.color
	}
	return r.greyscale
}

// cursorCell derives the overlay cell for the terminal cursor: mode from
// style, background from the cursor color, fg alpha forced to 0 so the
// glyph underneath determines visibility via the inverted-overlay cell
// rather than the cursor cell itself drawing text.
func (r *Rebuilder) cursorCell(snap *screen.Snapshot) GPUCell {
	mode := ModeCursorRect
	switch snap.Cursor.Style {
	case screen.CursorBoxHollow:
		mode = ModeCursorRectHollow
	case screen.CursorBar:
		mode = ModeCursorBar
	}

	gridWidth := uint8(1)
	if y := snap.Cursor.Y; y >= 0 && y < len(snap.Grid) {
		row := snap.Grid[y]
		if snap.Cursor.X >= 0 && snap.Cursor.X < len(row.Cells) && row.Cells[snap.Cursor.X].Attrs.Wide {
			gridWidth = 2
		}
	}

	c := r.palette.CursorColor
	return GPUCell{
		GridCol: uint16(snap.Cursor.X), GridRow: uint16(snap.Cursor.Y),
		BgR: c.R, BgG: c.G, BgB: c.B, BgA: 255,
		FgA:       0,
		Mode:      mode,
		GridWidth: gridWidth,
	}
}

// ResetFontMetrics re-queries the atlas for the metrics of a regular
// ascii glyph and updates the sprite face. Triggered on font-size change
// or first init. The row cache is cleared on a real size change because
// its cached cells reference now-stale atlas positions.
func (r *Rebuilder) ResetFontMetrics() {
	m := r.greyscale.MeasureASCII('M', r.cellHeight)
	changed := m.CellWidth != r.cellWidth || m.CellHeight != r.cellHeight

	r.cellWidth = m.CellWidth
	r.cellHeight = m.CellHeight
	r.underlineThickness = 2
	r.underlinePosition = m.UnderlinePosition
	r.strikethroughThickness = 2
	r.strikethroughPosition = m.UnderlinePosition / 2

	if changed {
		r.cache = newRowCache(r.cache.capacity)
		r.postMailbox(MailboxMessage{Type: MailboxCellSize, CellWidth: r.cellWidth, CellHeight: r.cellHeight})
	}
}

// CellSize returns the current cell dimensions in pixels/texels.
func (r *Rebuilder) CellSize() (width, height uint32) {
	return r.cellWidth, r.cellHeight
}

// StrikethroughUniforms returns the values the draw pass uploads as
// shader uniforms alongside cell_size.
func (r *Rebuilder) StrikethroughUniforms() (position, thickness float32) {
	return r.strikethroughPosition, r.strikethroughThickness
}
