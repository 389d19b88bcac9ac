// Package debugbridge is an opt-in HTTP+WebSocket diagnostics surface
// that streams renderer frame statistics and window-mailbox messages to
// an attached debugging client. It never touches the GPU context and is
// not the in-app devmode overlay — it's the same "expose this process to
// a remote collaborator" shape the teacher's whole repo provides, scoped
// here to renderer diagnostics instead of a PTY session.
//
// Grounded on pkg/api/raw_websocket.go's upgrade/ping-pong/writer-goroutine
// shape and pkg/termsocket/manager.go's subscriber fan-out.
package debugbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vibetunnel/termcore/internal/cellrender"
	"github.com/vibetunnel/termcore/internal/config"
	"github.com/vibetunnel/termcore/internal/telemetry"
)

// FrameStats is one JSON message streamed to /stream after every
// cellrender.Rebuilder.Rebuild call.
type FrameStats struct {
	Type          string `json:"type"`
	BGCells       int    `json:"bgCells"`
	FGCells       int    `json:"fgCells"`
	CacheHits     int64  `json:"cacheHits"`
	CacheMisses   int64  `json:"cacheMisses"`
	CacheSize     int    `json:"cacheSize"`
	CacheCapacity int    `json:"cacheCapacity"`
}

// MailboxEvent is the JSON form of a cellrender.MailboxMessage streamed to
// /stream as it's posted.
type MailboxEvent struct {
	Type       string `json:"type"`
	CellWidth  uint32 `json:"cellWidth,omitempty"`
	CellHeight uint32 `json:"cellHeight,omitempty"`
}

// Bridge is the diagnostics server for one Rebuilder.
type Bridge struct {
	cfg       config.DebugBridge
	rebuilder *cellrender.Rebuilder

	hub *hub

	hits   int64
	misses int64

	mu    sync.RWMutex
	stats FrameStats

	stopMailbox chan struct{}
}

// New builds a Bridge for the given rebuilder. It does not start serving
// until ListenAndServe is called.
func New(cfg config.DebugBridge, rebuilder *cellrender.Rebuilder) *Bridge {
	b := &Bridge{
		cfg:         cfg,
		rebuilder:   rebuilder,
		hub:         newHub(),
		stopMailbox: make(chan struct{}),
	}
	go b.drainMailbox()
	return b
}

func (b *Bridge) drainMailbox() {
	for {
		select {
		case msg, ok := <-b.rebuilder.Mailbox():
			if !ok {
				return
			}
			ev := MailboxEvent{Type: "cell_size", CellWidth: msg.CellWidth, CellHeight: msg.CellHeight}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			b.hub.broadcast(data)
		case <-b.stopMailbox:
			return
		}
	}
}

// RecordHit/RecordMiss let the renderer report row-cache outcomes without
// this package reaching into cellrender's internals.
func (b *Bridge) RecordHit()  { atomic.AddInt64(&b.hits, 1) }
func (b *Bridge) RecordMiss() { atomic.AddInt64(&b.misses, 1) }

// RecordFrame publishes one frame's cell counts, both to /stats and as a
// broadcast to every attached /stream subscriber.
func (b *Bridge) RecordFrame(bgCells, fgCells, cacheSize, cacheCapacity int) {
	stats := FrameStats{
		Type:          "frame",
		BGCells:       bgCells,
		FGCells:       fgCells,
		CacheHits:     atomic.LoadInt64(&b.hits),
		CacheMisses:   atomic.LoadInt64(&b.misses),
		CacheSize:     cacheSize,
		CacheCapacity: cacheCapacity,
	}

	b.mu.Lock()
	b.stats = stats
	b.mu.Unlock()

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	b.hub.broadcast(data)
}

// Router builds the HTTP route table.
func (b *Bridge) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", b.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/stats", b.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/stream", b.handleStream).Methods(http.MethodGet)
	return r
}

func (b *Bridge) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (b *Bridge) handleStats(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	stats := b.stats
	b.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// Close stops the mailbox-draining goroutine.
func (b *Bridge) Close() {
	close(b.stopMailbox)
}

// ListenAndServe starts the HTTP server per the configured TLS/tunnel
// options and blocks until ctx is cancelled or the server errors.
func (b *Bridge) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              b.cfg.ListenAddr,
		Handler:           b.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.serve(srv)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (b *Bridge) serve(srv *http.Server) error {
	switch {
	case b.cfg.Tunnel.Enabled:
		telemetry.L().Info("debug bridge starting ngrok tunnel", zap.String("addr", srv.Addr))
		return b.serveViaTunnel(srv)
	case b.cfg.TLS.Enabled:
		telemetry.L().Info("debug bridge starting with managed TLS", zap.String("addr", srv.Addr))
		return b.serveViaCertmagic(srv)
	default:
		telemetry.L().Info("debug bridge listening", zap.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
