package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vibetunnel/termcore/internal/keyencode"
	"github.com/vibetunnel/termcore/internal/keyevent"
)

func newEncodeCmd() *cobra.Command {
	var kitty bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "encode [event.json]",
		Short: "Encode a key event fixture into its PTY byte sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runEncodeInteractive(kitty)
			}
			if len(args) != 1 {
				return fmt.Errorf("encode requires <event.json> unless --interactive is set")
			}
			return runEncodeFixture(args[0], kitty)
		},
	}

	cmd.Flags().BoolVar(&kitty, "kitty", false, "force the Kitty keyboard protocol regardless of the fixture's state")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "read raw keystrokes from this terminal and encode them live")
	return cmd
}

func runEncodeFixture(path string, kitty bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fixture encodeFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	ev, err := fixture.Event.toEvent()
	if err != nil {
		return err
	}
	state, err := fixture.State.toState()
	if err != nil {
		return err
	}
	if kitty && !state.KittyFlags.Any() {
		state.KittyFlags = keyencode.KittyDisambiguate
	}

	buf := make([]byte, 64)
	out, err := keyencode.Encode(ev, state, buf)
	if err != nil {
		return err
	}
	fmt.Printf("%q\n", string(out))
	return nil
}

// runEncodeInteractive puts the controlling terminal into raw mode and
// encodes each keystroke as it arrives, restoring cooked mode on exit.
// Grounded on keyboard/handler.go's term.MakeRaw/term.Restore dance.
func runEncodeInteractive(kitty bool) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Fprintln(os.Stderr, "reading raw keystrokes, ctrl-c to exit")

	state := keyencode.State{}
	if kitty {
		state.KittyFlags = keyencode.KittyDisambiguate
	}

	buf := make([]byte, 32)
	out := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		for _, b := range buf[:n] {
			ev, ok := bestEffortEvent(b)
			if !ok {
				continue
			}
			encoded, err := keyencode.Encode(ev, state, out)
			if err != nil {
				fmt.Fprintln(os.Stderr, "encode error:", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "%q\r\n", string(encoded))
			if b == 0x03 {
				return nil
			}
		}
	}
}

// bestEffortEvent turns one raw input byte into a plausible KeyEvent. This
// is necessarily lossy: a raw byte stream can't distinguish a literal
// Escape press from the start of an already-encoded sequence being typed
// by a test harness, so control bytes below 0x20 map to their Ctrl+letter
// origin and everything else is treated as a printable key press.
func bestEffortEvent(b byte) (keyevent.Event, bool) {
	switch {
	case b == 0x1b:
		return keyevent.Event{Key: keyevent.KeyEscape, Action: keyevent.ActionPress}, true
	case b == '\r' || b == '\n':
		return keyevent.Event{Key: keyevent.KeyEnter, Action: keyevent.ActionPress}, true
	case b == '\t':
		return keyevent.Event{Key: keyevent.KeyTab, Action: keyevent.ActionPress}, true
	case b == 0x7f:
		return keyevent.Event{Key: keyevent.KeyBackspace, Action: keyevent.ActionPress}, true
	case b < 0x20:
		letter := keyevent.KeyA + keyevent.Key(b-1)
		if letter < keyevent.KeyA || letter > keyevent.KeyZ {
			return keyevent.Event{}, false
		}
		return keyevent.Event{Key: letter, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl}, true
	case b >= 'a' && b <= 'z':
		return keyevent.Event{Key: keyevent.KeyA + keyevent.Key(b-'a'), Action: keyevent.ActionPress, UTF8: string(rune(b))}, true
	case b >= '0' && b <= '9':
		return keyevent.Event{Key: keyevent.Key0 + keyevent.Key(b-'0'), Action: keyevent.ActionPress, UTF8: string(rune(b))}, true
	case b == ' ':
		return keyevent.Event{Key: keyevent.KeySpace, Action: keyevent.ActionPress, UTF8: " "}, true
	default:
		return keyevent.Event{}, false
	}
}
