package keyencode

import (
	"strconv"

	"github.com/vibetunnel/termcore/internal/keyevent"
)

// pcEntry is one candidate output for a PC-style function key, guarded by
// the mode requirements spec.md §4.1.1 step 3 describes.
type pcEntry struct {
	mods            keyevent.Mods
	modsEmptyIsAny  bool
	cursorKey       CursorKeyMode
	keypadKey       KeypadKeyMode
	modifyOtherKeys ModifyOtherKeysRequirement
	seq             []byte
}

func (e pcEntry) matchesMode(s State) bool {
	if e.cursorKey == CursorKeyNormal && s.CursorKeyApplication {
		return false
	}
	if e.cursorKey == CursorKeyApplication && !s.CursorKeyApplication {
		return false
	}
	if e.keypadKey == KeypadKeyNormal && s.KeypadKeyApplication {
		return false
	}
	if e.keypadKey == KeypadKeyApplication && !s.KeypadKeyApplication {
		return false
	}
	if e.modifyOtherKeys == ModifyOtherKeysSet && !s.ModifyOtherKeysState2 {
		return false
	}
	if e.modifyOtherKeys == ModifyOtherKeysSetOther && !s.ModifyOtherKeysState2 {
		return false
	}
	return true
}

func (e pcEntry) matchesMods(binding keyevent.Mods) bool {
	if e.mods == 0 {
		if e.modsEmptyIsAny {
			return true
		}
		return binding == 0
	}
	return e.mods == binding
}

// csiUMods is the 3-bit CSI-u / xterm modifyOtherKeys modifier code: raw
// bitmask of {shift=1, alt=2, ctrl=4} plus one.
func csiUMods(m keyevent.Mods) int {
	n := 0
	if m.Has(keyevent.ModShift) {
		n |= 1
	}
	if m.Has(keyevent.ModAlt) {
		n |= 2
	}
	if m.Has(keyevent.ModCtrl) {
		n |= 4
	}
	return n + 1
}

func modCombos() []keyevent.Mods {
	var out []keyevent.Mods
	for n := 1; n < 8; n++ {
		var m keyevent.Mods
		if n&1 != 0 {
			m |= keyevent.ModShift
		}
		if n&2 != 0 {
			m |= keyevent.ModAlt
		}
		if n&4 != 0 {
			m |= keyevent.ModCtrl
		}
		out = append(out, m)
	}
	return out
}

func csiModSuffix(mods keyevent.Mods, final byte) []byte {
	return append([]byte("\x1b[1;"+strconv.Itoa(csiUMods(mods))), final)
}

func tildeModSuffix(code int, mods keyevent.Mods) []byte {
	return []byte("\x1b[" + strconv.Itoa(code) + ";" + strconv.Itoa(csiUMods(mods)) + "~")
}

// cursorEntries builds the Up/Down/Right/Left style table: CSI letter in
// normal mode, SS3 letter in application mode when unmodified, CSI
// 1;n letter when modified (cursor-key mode is irrelevant once modified).
func cursorEntries(final byte) []pcEntry {
	entries := []pcEntry{
		{mods: 0, cursorKey: CursorKeyNormal, seq: []byte("\x1b[" + string(final))},
		{mods: 0, cursorKey: CursorKeyApplication, seq: []byte("\x1bO" + string(final))},
	}
	for _, m := range modCombos() {
		entries = append(entries, pcEntry{mods: m, cursorKey: CursorKeyAny, seq: csiModSuffix(m, final)})
	}
	return entries
}

// tildeEntries builds the Insert/Delete/Home/End/PageUp/PageDown/F5-F12
// style table: CSI code ~ unmodified, CSI code;n ~ modified.
func tildeEntries(code int) []pcEntry {
	entries := []pcEntry{
		{mods: 0, cursorKey: CursorKeyAny, seq: []byte("\x1b[" + strconv.Itoa(code) + "~")},
	}
	for _, m := range modCombos() {
		entries = append(entries, pcEntry{mods: m, cursorKey: CursorKeyAny, seq: tildeModSuffix(code, m)})
	}
	return entries
}

// ss3Entries builds the F1-F4 style table: SS3 letter unmodified, CSI
// 1;n letter modified.
func ss3Entries(final byte) []pcEntry {
	entries := []pcEntry{
		{mods: 0, seq: []byte("\x1bO" + string(final))},
	}
	for _, m := range modCombos() {
		entries = append(entries, pcEntry{mods: m, seq: csiModSuffix(m, final)})
	}
	return entries
}

// pcTable is the PC-style function key table: spec.md §4.1.1 step 3.
// First matching entry (mode requirements satisfied, mods equal to
// binding_mods per matchesMods) wins.
var pcTable = map[keyevent.Key][]pcEntry{
	keyevent.KeyUp:    cursorEntries('A'),
	keyevent.KeyDown:  cursorEntries('B'),
	keyevent.KeyRight: cursorEntries('C'),
	keyevent.KeyLeft:  cursorEntries('D'),

	keyevent.KeyHome: append(tildeEntries(1), pcEntry{mods: 0, seq: []byte("\x1b[H")}),
	keyevent.KeyEnd:  append(tildeEntries(4), pcEntry{mods: 0, seq: []byte("\x1b[F")}),

	keyevent.KeyInsert:   tildeEntries(2),
	keyevent.KeyDelete:   tildeEntries(3),
	keyevent.KeyPageUp:   tildeEntries(5),
	keyevent.KeyPageDown: tildeEntries(6),

	keyevent.KeyF1: ss3Entries('P'),
	keyevent.KeyF2: ss3Entries('Q'),
	keyevent.KeyF3: ss3Entries('R'),
	keyevent.KeyF4: ss3Entries('S'),

	keyevent.KeyF5:  tildeEntries(15),
	keyevent.KeyF6:  tildeEntries(17),
	keyevent.KeyF7:  tildeEntries(18),
	keyevent.KeyF8:  tildeEntries(19),
	keyevent.KeyF9:  tildeEntries(20),
	keyevent.KeyF10: tildeEntries(21),
	keyevent.KeyF11: tildeEntries(23),
	keyevent.KeyF12: tildeEntries(24),

	// Back-tab: only the shifted form has a dedicated sequence; plain tab
	// falls through to the C0/utf8 paths.
	keyevent.KeyTab: {
		{mods: keyevent.ModShift, seq: []byte("\x1b[Z")},
	},
}

// c0Table maps a key, pressed with ctrl and nothing else (alt handled
// separately by prefixing 0x1B), to the C0 control byte xterm would send.
// Deliberately a literal table rather than a computed formula: spec.md §9
// notes ctrl+2 -> 0x00 is not logically derivable and must stay hardcoded,
// and ctrl+[ is excluded here so the fixterms path can claim it instead.
var c0Table = map[keyevent.Key]byte{
	keyevent.KeySpace: 0x00,

	keyevent.KeyA: 0x01, keyevent.KeyB: 0x02, keyevent.KeyC: 0x03, keyevent.KeyD: 0x04,
	keyevent.KeyE: 0x05, keyevent.KeyF: 0x06, keyevent.KeyG: 0x07, keyevent.KeyH: 0x08,
	keyevent.KeyJ: 0x0A, keyevent.KeyK: 0x0B, keyevent.KeyL: 0x0C,
	keyevent.KeyN: 0x0E, keyevent.KeyO: 0x0F, keyevent.KeyP: 0x10,
	keyevent.KeyQ: 0x11, keyevent.KeyR: 0x12, keyevent.KeyS: 0x13, keyevent.KeyT: 0x14,
	keyevent.KeyU: 0x15, keyevent.KeyV: 0x16, keyevent.KeyW: 0x17, keyevent.KeyX: 0x18,
	keyevent.KeyY: 0x19, keyevent.KeyZ: 0x1A,

	// keyevent.KeyLeftBracket, KeyI, and KeyM intentionally absent: their
	// C0 bytes (ESC, Tab, CR) collide with a dedicated named key's own
	// byte, so these three are deferred to the fixterms step instead,
	// letting CSI-u disambiguate "the Tab key" from "ctrl+i".
	keyevent.KeyBackslash:    0x1C,
	keyevent.KeyRightBracket: 0x1D,

	// Digit row, matching xterm on US layouts rather than any logical
	// derivation from the digit's ASCII value (spec.md §9 Open Question).
	keyevent.Key2: 0x00,
	keyevent.Key3: 0x1B,
	keyevent.Key4: 0x1C,
	keyevent.Key5: 0x1D,
	keyevent.Key6: 0x1E,
	keyevent.Key7: 0x1F,
	keyevent.Key8: 0x7F,
}
