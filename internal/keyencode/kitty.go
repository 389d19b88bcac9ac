package keyencode

import (
	"github.com/vibetunnel/termcore/internal/keyevent"
)

const (
	kittyEventPress   = 1
	kittyEventRepeat  = 2
	kittyEventRelease = 3
)

// kittyMods is the 8-bit Kitty modifier code: raw bitmask plus one. The
// Mods bit order (shift, alt, ctrl, super, hyper, meta, caps_lock,
// num_lock) already matches the protocol's bit layout.
func kittyMods(m keyevent.Mods) int {
	return int(m) + 1
}

// kittySequence is the fully-resolved set of fields spec.md §4.1.2 step 5
// builds before encoding.
type kittySequence struct {
	key        int
	final      byte
	mods       int
	hasEvent   bool
	event      int
	alternates []int
	text       string
}

// encodeKitty implements spec.md §4.1.2.
func encodeKitty(ev keyevent.Event, state State, buf []byte) ([]byte, error) {
	entry, hasEntry := kittyTable[ev.Key]
	if !hasEntry && ev.Unshifted > 0 {
		entry = kittyEntry{code: int(ev.Unshifted), final: 'u'}
		hasEntry = true
	}

	if ev.Composing && !(hasEntry && entry.isModifier) {
		return buf[:0], nil
	}

	if !state.KittyFlags.Has(KittyReportAll) {
		if ev.EffectiveMods() == 0 {
			switch ev.Key {
			case keyevent.KeyEnter:
				return writeBytes(buf, []byte{'\r'})
			case keyevent.KeyTab:
				return writeBytes(buf, []byte{'\t'})
			case keyevent.KeyBackspace:
				return writeBytes(buf, []byte{0x7F})
			}
		}
		if ev.UTF8 != "" && ev.BindingMods() == 0 && ev.Action != keyevent.ActionRelease {
			return writeBytes(buf, []byte(ev.UTF8))
		}
	}

	if !hasEntry {
		return buf[:0], nil
	}

	seq := kittySequence{
		key:   entry.code,
		final: entry.final,
		mods:  kittyMods(ev.Mods),
	}

	if state.KittyFlags.Has(KittyReportEvents) {
		seq.hasEvent = true
		switch ev.Action {
		case keyevent.ActionPress:
			seq.event = kittyEventPress
		case keyevent.ActionRepeat:
			seq.event = kittyEventRepeat
		case keyevent.ActionRelease:
			seq.event = kittyEventRelease
		}
	}

	if state.KittyFlags.Has(KittyReportAlternates) {
		runes := []rune(ev.UTF8)
		if len(runes) == 1 && int(runes[0]) != entry.code {
			seq.alternates = []int{int(runes[0])}
		}
	}

	if state.KittyFlags.Has(KittyReportAssociated) {
		seq.text = ev.UTF8
	}

	return writeBytes(buf, encodeKittySequence(seq))
}

func encodeKittySequence(s kittySequence) []byte {
	if s.final == 'u' || s.final == '~' {
		return encodeKittyFullForm(s)
	}
	return encodeKittySpecialForm(s)
}

func encodeKittyFullForm(s kittySequence) []byte {
	out := append([]byte("\x1b["), []byte(itoa(s.key))...)
	for _, alt := range s.alternates {
		out = append(out, ':')
		out = append(out, []byte(itoa(alt))...)
	}

	modSection := s.hasEvent || s.mods > 1
	if modSection {
		out = append(out, ';')
		out = append(out, []byte(itoa(s.mods))...)
		if s.hasEvent {
			out = append(out, ':')
			out = append(out, []byte(itoa(s.event))...)
		}
	}

	if s.text != "" {
		if !modSection {
			out = append(out, ';')
		}
		out = append(out, ';')
		for i, cp := range []rune(s.text) {
			if i > 0 {
				out = append(out, ':')
			}
			out = append(out, []byte(itoa(int(cp)))...)
		}
	}

	out = append(out, s.final)
	return out
}

func encodeKittySpecialForm(s kittySequence) []byte {
	switch {
	case s.hasEvent:
		out := append([]byte("\x1b[1;"), []byte(itoa(s.mods))...)
		out = append(out, ':')
		out = append(out, []byte(itoa(s.event))...)
		out = append(out, s.final)
		return out
	case s.mods > 1:
		out := append([]byte("\x1b[1;"), []byte(itoa(s.mods))...)
		out = append(out, s.final)
		return out
	default:
		return []byte{0x1B, '[', s.final}
	}
}
