// Package keyencode translates a keyboard event plus terminal mode state
// into the exact byte sequence a shell expects, across the legacy
// PC-style/C0/modifyOtherKeys/fixterms protocols and the Kitty keyboard
// protocol.
package keyencode

import (
	"errors"
	"fmt"

	"github.com/vibetunnel/termcore/internal/keyevent"
)

// ErrBufferTooSmall is returned when the caller-provided buffer cannot
// hold the encoded sequence. It is the only runtime failure Encode can
// produce; an empty result is not an error (see Encode).
var ErrBufferTooSmall = errors.New("keyencode: buffer too small")

func errBufferTooSmall(need, have int) error {
	return fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, need, have)
}

// Encode writes the PTY byte sequence for ev into buf and returns the
// written prefix. An empty, non-nil slice means the event legitimately
// produces no output (e.g. a release without event reporting, or an
// in-progress IME composition) — that is not an error condition.
//
// Encoders are stateless and cheap; construct State once per terminal
// mode configuration and call Encode per event from a single goroutine.
func Encode(ev keyevent.Event, state State, buf []byte) ([]byte, error) {
	if state.KittyFlags.Any() {
		return encodeKitty(ev, state, buf)
	}
	return encodeLegacy(ev, state, buf)
}
