package keyencode

import (
	"github.com/vibetunnel/termcore/internal/keyevent"
)

// encodeLegacy implements spec.md §4.1.1: the traditional/PC-style,
// modifyOtherKeys, and fixterms CSI-u paths, tried in order with the
// first match winning.
func encodeLegacy(ev keyevent.Event, state State, buf []byte) ([]byte, error) {
	// 1. Only presses and repeats emit anything.
	if ev.Action != keyevent.ActionPress && ev.Action != keyevent.ActionRepeat {
		return buf[:0], nil
	}
	// 2. IME composition suppresses all output.
	if ev.Composing {
		return buf[:0], nil
	}

	binding := ev.BindingMods()

	// 3. PC-style function key table.
	if entries, ok := pcTable[ev.Key]; ok {
		for _, e := range entries {
			if e.matchesMode(state) && e.matchesMods(binding) {
				return writeBytes(buf, e.seq)
			}
		}
	}

	// 4. Control sequence (C0) table: exactly {ctrl}, alt optionally
	// prefixed with ESC, any other modifier disqualifies.
	if nonAlt := ev.Mods &^ keyevent.ModAlt; nonAlt == keyevent.ModCtrl {
		if b, ok := c0Table[ev.Key]; ok {
			if binding.Has(keyevent.ModAlt) {
				return writeBytes(buf, []byte{0x1B, b})
			}
			return writeBytes(buf, []byte{b})
		}
	}

	// 5. No text, and no table match above: nothing to send.
	if ev.UTF8 == "" {
		return buf[:0], nil
	}

	// 6. xterm modifyOtherKeys state 2.
	if state.ModifyOtherKeysState2 {
		runes := []rune(ev.UTF8)
		if len(runes) == 1 {
			cp := runes[0]
			shouldModify := (cp >= 0x40 && cp <= 0x7F) ||
				(binding&^keyevent.ModShift) != 0 ||
				(cp == ' ' && binding == keyevent.ModShift)
			if shouldModify {
				n := csiUMods(binding)
				if n >= 2 {
					return writeModifyOtherKeys(buf, n, int(cp))
				}
			}
		}
	}

	// 7. fixterms CSI u: raw first byte of utf8, not the decoded
	// codepoint (spec.md §9 Open Question — preserve as-is).
	if ev.Mods.Has(keyevent.ModCtrl) {
		b := ev.UTF8[0]
		m := csiUMods(ev.Mods)
		return writeFixterms(buf, int(b), m)
	}

	// 8. alt-prefixed utf8.
	if binding.Has(keyevent.ModAlt) && state.AltEscPrefix {
		return writeAltPrefixed(buf, ev.UTF8)
	}

	// 9. verbatim utf8.
	return writeBytes(buf, []byte(ev.UTF8))
}

func writeBytes(buf []byte, seq []byte) ([]byte, error) {
	if len(seq) > len(buf) {
		return nil, errBufferTooSmall(len(seq), len(buf))
	}
	n := copy(buf, seq)
	return buf[:n], nil
}

func writeAltPrefixed(buf []byte, text string) ([]byte, error) {
	need := 1 + len(text)
	if need > len(buf) {
		return nil, errBufferTooSmall(need, len(buf))
	}
	buf[0] = 0x1B
	n := copy(buf[1:], text)
	return buf[:1+n], nil
}

// writeModifyOtherKeys emits ESC [ 27 ; n ; cp ~.
func writeModifyOtherKeys(buf []byte, n, cp int) ([]byte, error) {
	s := "\x1b[27;" + itoa(n) + ";" + itoa(cp) + "~"
	return writeBytes(buf, []byte(s))
}

// writeFixterms emits ESC [ cp ; m u.
func writeFixterms(buf []byte, cp, m int) ([]byte, error) {
	s := "\x1b[" + itoa(cp) + ";" + itoa(m) + "u"
	return writeBytes(buf, []byte(s))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}
