package keyencode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibetunnel/termcore/internal/keyevent"
)

func TestPCTableCursorKeyModeSplit(t *testing.T) {
	entries := pcTable[keyevent.KeyLeft]
	var sawNormal, sawApplication bool
	for _, e := range entries {
		if e.mods != 0 {
			continue
		}
		switch e.cursorKey {
		case CursorKeyNormal:
			sawNormal = true
			require.Equal(t, []byte("\x1b[D"), e.seq)
		case CursorKeyApplication:
			sawApplication = true
			require.Equal(t, []byte("\x1bOD"), e.seq)
		}
	}
	require.True(t, sawNormal)
	require.True(t, sawApplication)
}

func TestPCTableTildeModifierEncoding(t *testing.T) {
	entries := pcTable[keyevent.KeyDelete]
	found := false
	for _, e := range entries {
		if e.mods == keyevent.ModCtrl {
			found = true
			require.Equal(t, []byte("\x1b[3;5~"), e.seq)
		}
	}
	require.True(t, found)
}

func TestC0TableExcludesCollidingLetters(t *testing.T) {
	_, hasI := c0Table[keyevent.KeyI]
	_, hasM := c0Table[keyevent.KeyM]
	_, hasBracket := c0Table[keyevent.KeyLeftBracket]
	require.False(t, hasI)
	require.False(t, hasM)
	require.False(t, hasBracket)
}

func TestCsiUModsFormula(t *testing.T) {
	require.Equal(t, 1, csiUMods(0))
	require.Equal(t, 2, csiUMods(keyevent.ModShift))
	require.Equal(t, 3, csiUMods(keyevent.ModAlt))
	require.Equal(t, 5, csiUMods(keyevent.ModCtrl))
	require.Equal(t, 6, csiUMods(keyevent.ModShift|keyevent.ModCtrl))
	require.Equal(t, 8, csiUMods(keyevent.ModShift|keyevent.ModAlt|keyevent.ModCtrl))
}

func TestKittyModsFormula(t *testing.T) {
	require.Equal(t, 1, kittyMods(0))
	require.Equal(t, 2, kittyMods(keyevent.ModShift))
	require.Equal(t, 129, kittyMods(keyevent.ModNumLock))
}
