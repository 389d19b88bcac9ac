package keyencode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibetunnel/termcore/internal/keyevent"
)

func encode(t *testing.T, ev keyevent.Event, st State) []byte {
	t.Helper()
	buf := make([]byte, 128)
	out, err := Encode(ev, st, buf)
	require.NoError(t, err)
	return out
}

func TestLegacyConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		ev   keyevent.Event
		st   State
		want []byte
	}{
		{
			name: "ctrl+c",
			ev:   keyevent.Event{Key: keyevent.KeyC, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl, UTF8: "\x03"},
			want: []byte{0x03},
		},
		{
			name: "ctrl+alt+c",
			ev:   keyevent.Event{Key: keyevent.KeyC, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl | keyevent.ModAlt, UTF8: "\x03"},
			want: []byte{0x1B, 0x03},
		},
		{
			name: "ctrl+i defers to fixterms",
			ev:   keyevent.Event{Key: keyevent.KeyI, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl, UTF8: "i"},
			want: []byte("\x1b[105;5u"),
		},
		{
			name: "ctrl+shift+h modifyOtherKeys state 2",
			ev:   keyevent.Event{Key: keyevent.KeyH, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl | keyevent.ModShift, UTF8: "H"},
			st:   State{ModifyOtherKeysState2: true},
			want: []byte("\x1b[27;6;72~"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := encode(t, tc.ev, tc.st)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLegacyReleaseIsEmpty(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionRelease, UTF8: "a"}
	got := encode(t, ev, State{})
	require.Empty(t, got)
}

func TestLegacyComposingIsEmpty(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, UTF8: "a", Composing: true}
	got := encode(t, ev, State{})
	require.Empty(t, got)
}

func TestLegacyAltEscPrefix(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, Mods: keyevent.ModAlt, UTF8: "a"}
	got := encode(t, ev, State{AltEscPrefix: true})
	require.Equal(t, []byte("\x1ba"), got)

	got = encode(t, ev, State{AltEscPrefix: false})
	require.Equal(t, []byte("a"), got)
}

func TestLegacyVerbatimUTF8(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, UTF8: "a"}
	got := encode(t, ev, State{})
	require.Equal(t, []byte("a"), got)
}

func TestLegacyEmptyUTF8IsEmpty(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyLeftBracket, Action: keyevent.ActionPress}
	got := encode(t, ev, State{})
	require.Empty(t, got)
}

func TestLegacyArrowKeys(t *testing.T) {
	up := keyevent.Event{Key: keyevent.KeyUp, Action: keyevent.ActionPress}
	require.Equal(t, []byte("\x1b[A"), encode(t, up, State{}))
	require.Equal(t, []byte("\x1bOA"), encode(t, up, State{CursorKeyApplication: true}))

	shiftUp := keyevent.Event{Key: keyevent.KeyUp, Action: keyevent.ActionPress, Mods: keyevent.ModShift}
	require.Equal(t, []byte("\x1b[1;2A"), encode(t, shiftUp, State{}))
}

func TestBufferTooSmall(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyC, Action: keyevent.ActionPress, Mods: keyevent.ModCtrl, UTF8: "\x03"}
	buf := make([]byte, 0)
	_, err := Encode(ev, State{}, buf)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestKittyConcreteScenarios(t *testing.T) {
	t.Run("legacy-compat passthrough", func(t *testing.T) {
		ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, UTF8: "abcd"}
		st := State{KittyFlags: KittyDisambiguate}
		require.Equal(t, []byte("abcd"), encode(t, ev, st))
	})

	t.Run("shift+a with report alternates", func(t *testing.T) {
		ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, Mods: keyevent.ModShift, UTF8: "A", Unshifted: 'a'}
		st := State{KittyFlags: KittyDisambiguate | KittyReportAlternates}
		require.Equal(t, []byte("\x1b[97:65;2u"), encode(t, ev, st))
	})

	t.Run("left shift press while composing", func(t *testing.T) {
		ev := keyevent.Event{Key: keyevent.KeyLeftShift, Action: keyevent.ActionPress, Mods: keyevent.ModShift, Composing: true}
		st := State{KittyFlags: KittyDisambiguate}
		require.Equal(t, []byte("\x1b[57441;2u"), encode(t, ev, st))
	})
}

func TestKittyComposingNonModifierIsEmpty(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, UTF8: "a", Composing: true}
	st := State{KittyFlags: KittyDisambiguate}
	require.Empty(t, encode(t, ev, st))
}

func TestKittyReportEventsPressIsNotOmitted(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyUp, Action: keyevent.ActionPress}
	st := State{KittyFlags: KittyDisambiguate | KittyReportEvents}
	require.Equal(t, []byte("\x1b[1;1:1A"), encode(t, ev, st))
}

// The special form (letter-final keys like arrows) carries no slot for
// associated text; only the full form ('u'/'~' finals) reports it.
func TestKittySpecialFormDropsAssociatedText(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyUp, Action: keyevent.ActionPress, Mods: keyevent.ModShift, UTF8: "X"}
	st := State{KittyFlags: KittyDisambiguate | KittyReportAssociated}
	require.Equal(t, []byte("\x1b[1;2A"), encode(t, ev, st))
}

func TestKittyFullFormReportsAssociatedText(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyInsert, Action: keyevent.ActionPress, Mods: keyevent.ModShift, UTF8: "X"}
	st := State{KittyFlags: KittyDisambiguate | KittyReportAssociated}
	require.Equal(t, []byte("\x1b[2;2;88~"), encode(t, ev, st))
}

func TestKittyReportAllBypassesLegacyCompat(t *testing.T) {
	ev := keyevent.Event{Key: keyevent.KeyA, Action: keyevent.ActionPress, UTF8: "a", Unshifted: 'a'}
	st := State{KittyFlags: KittyDisambiguate | KittyReportAll}
	require.Equal(t, []byte("\x1b[97u"), encode(t, ev, st))
}
