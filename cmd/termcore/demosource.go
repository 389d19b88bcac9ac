package main

import (
	"fmt"
	"time"

	"github.com/vibetunnel/termcore/internal/cellrender"
	"github.com/vibetunnel/termcore/internal/debugbridge"
	"github.com/vibetunnel/termcore/internal/rowid"
	"github.com/vibetunnel/termcore/internal/screen"
)

// clockSource is the snapshot source `termcore serve` drives its render
// loop against when no real terminal is attached: a static grid with one
// line of text that changes every tick, so the row cache sees a realistic
// mix of hits (unchanged rows) and misses (the clock line). Real terminal
// integration is an external collaborator this repo doesn't own; this is
// enough to exercise the render loop and debug bridge end to end.
type clockSource struct {
	cols, rows int
	rowIDs     []rowid.RowID
}

func newClockSource(cols, rows int) *clockSource {
	ids := make([]rowid.RowID, rows)
	for i := range ids {
		ids[i] = rowid.New()
	}
	return &clockSource{cols: cols, rows: rows, rowIDs: ids}
}

func (s *clockSource) Snapshot() (*screen.Snapshot, *screen.Selection, bool) {
	text := fmt.Sprintf("termcore debug bridge %s", time.Now().Format("15:04:05"))

	grid := make([]screen.Row, s.rows)
	for y := range grid {
		var cells []screen.Cell
		dirty := y == 0
		if y == 0 {
			cells = make([]screen.Cell, s.cols)
			for x := range cells {
				if x < len(text) {
					cells[x] = screen.Cell{Char: rune(text[x]), Fg: screen.Color{R: 255, G: 255, B: 255, Set: true}}
				}
			}
		}
		grid[y] = screen.Row{ID: s.rowIDs[y], Dirty: dirty, Cells: cells}
	}

	return &screen.Snapshot{
		Cols: s.cols,
		Rows: s.rows,
		Type: screen.Primary,
		Grid: grid,
		Cursor: screen.Cursor{
			X: len(text), Y: 0, Style: screen.CursorBar, Visible: true,
		},
	}, nil, true
}

// bridgeFrameObserver forwards each rebuilt frame's cell counts and
// cumulative cache hit/miss counters to the debug bridge.
type bridgeFrameObserver struct {
	bridge              *debugbridge.Bridge
	lastHits, lastMisses int64
}

func (o *bridgeFrameObserver) OnFrame(r *cellrender.Rebuilder) {
	hits, misses, size, capacity := r.CacheStats()
	for ; o.lastHits < hits; o.lastHits++ {
		o.bridge.RecordHit()
	}
	for ; o.lastMisses < misses; o.lastMisses++ {
		o.bridge.RecordMiss()
	}
	o.bridge.RecordFrame(len(r.CellsBG()), len(r.Cells()), size, capacity)
}
