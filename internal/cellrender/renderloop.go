package cellrender

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vibetunnel/termcore/internal/screen"
	"github.com/vibetunnel/termcore/internal/telemetry"
)

// SnapshotSource supplies the next frame's screen state. A real embedder
// implements this against its terminal's mutex-guarded buffer, cloning
// under lock the way terminal.BufferSnapshot does before handing the
// clone across to the render thread. ok is false when there is nothing
// new to render (e.g. the session has closed).
type SnapshotSource interface {
	Snapshot() (snap *screen.Snapshot, sel *screen.Selection, ok bool)
}

// FrameObserver is notified after each frame is rebuilt, so an embedder
// can drive its GPU upload and diagnostics from one place rather than
// threading them through the loop itself.
type FrameObserver interface {
	OnFrame(r *Rebuilder)
}

// RenderLoop is the reference single-goroutine drive loop for a
// Rebuilder: poll a snapshot source on a fixed tick, rebuild, notify an
// observer, repeat until cancelled. Mirrors termsocket.Manager's
// monitorSession ticker/select/shutdown-channel shape; an embedder owning
// a real GPU context adapts this rather than using it verbatim.
type RenderLoop struct {
	rebuilder    *Rebuilder
	source       SnapshotSource
	observer     FrameObserver
	interval     time.Duration
	activeScreen screen.Type
	drawCursor   bool
}

// NewRenderLoop builds a loop that rebuilds at the given tick interval.
func NewRenderLoop(rebuilder *Rebuilder, source SnapshotSource, observer FrameObserver, interval time.Duration) *RenderLoop {
	return &RenderLoop{
		rebuilder:  rebuilder,
		source:     source,
		observer:   observer,
		interval:   interval,
		drawCursor: true,
	}
}

// SetActiveScreen switches which screen (primary/alternate) subsequent
// frames report to the row cache key.
func (l *RenderLoop) SetActiveScreen(t screen.Type) {
	l.activeScreen = t
}

// Run drives frames until ctx is cancelled. Intended to run on its own
// goroutine, one per render target, the way monitorSession runs one
// goroutine per session.
func (l *RenderLoop) Run(ctx context.Context) {
	l.rebuilder.ResetFontMetrics()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.renderOnce()
		case <-ctx.Done():
			return
		}
	}
}

func (l *RenderLoop) renderOnce() {
	snap, sel, ok := l.source.Snapshot()
	if !ok {
		return
	}

	l.rebuilder.ResetFontMetrics()

	if err := l.rebuilder.Rebuild(RebuildInput{
		ActiveScreen: l.activeScreen,
		Selection:    sel,
		Snapshot:     snap,
		DrawCursor:   l.drawCursor,
	}); err != nil {
		telemetry.L().Warn("cellrender: frame rebuild failed", zap.Error(err))
		return
	}

	if l.observer != nil {
		l.observer.OnFrame(l.rebuilder)
	}
}
