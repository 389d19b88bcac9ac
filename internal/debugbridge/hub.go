package debugbridge

import "sync"

// hub fans a stream of JSON messages out to N attached websocket clients,
// the same shape termsocket.Manager uses to fan a session's buffer
// snapshots out to its subscribers: a channel per subscriber, non-blocking
// sends so one slow reader can't stall the others.
type hub struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan []byte]struct{})}
}

func (h *hub) subscribe() chan []byte {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *hub) broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber is behind; drop rather than block the broadcaster.
		}
	}
}
