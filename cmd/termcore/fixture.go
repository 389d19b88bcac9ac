package main

import (
	"fmt"
	"strings"

	"github.com/vibetunnel/termcore/internal/keyencode"
	"github.com/vibetunnel/termcore/internal/keyevent"
)

var keyByName = map[string]keyevent.Key{
	"a": keyevent.KeyA, "b": keyevent.KeyB, "c": keyevent.KeyC, "d": keyevent.KeyD,
	"e": keyevent.KeyE, "f": keyevent.KeyF, "g": keyevent.KeyG, "h": keyevent.KeyH,
	"i": keyevent.KeyI, "j": keyevent.KeyJ, "k": keyevent.KeyK, "l": keyevent.KeyL,
	"m": keyevent.KeyM, "n": keyevent.KeyN, "o": keyevent.KeyO, "p": keyevent.KeyP,
	"q": keyevent.KeyQ, "r": keyevent.KeyR, "s": keyevent.KeyS, "t": keyevent.KeyT,
	"u": keyevent.KeyU, "v": keyevent.KeyV, "w": keyevent.KeyW, "x": keyevent.KeyX,
	"y": keyevent.KeyY, "z": keyevent.KeyZ,

	"0": keyevent.Key0, "1": keyevent.Key1, "2": keyevent.Key2, "3": keyevent.Key3,
	"4": keyevent.Key4, "5": keyevent.Key5, "6": keyevent.Key6, "7": keyevent.Key7,
	"8": keyevent.Key8, "9": keyevent.Key9,

	"enter": keyevent.KeyEnter, "tab": keyevent.KeyTab, "backspace": keyevent.KeyBackspace,
	"escape": keyevent.KeyEscape, "space": keyevent.KeySpace, "delete": keyevent.KeyDelete,
	"insert": keyevent.KeyInsert, "home": keyevent.KeyHome, "end": keyevent.KeyEnd,
	"pageup": keyevent.KeyPageUp, "pagedown": keyevent.KeyPageDown,

	"up": keyevent.KeyUp, "down": keyevent.KeyDown, "left": keyevent.KeyLeft, "right": keyevent.KeyRight,

	"f1": keyevent.KeyF1, "f2": keyevent.KeyF2, "f3": keyevent.KeyF3, "f4": keyevent.KeyF4,
	"f5": keyevent.KeyF5, "f6": keyevent.KeyF6, "f7": keyevent.KeyF7, "f8": keyevent.KeyF8,
	"f9": keyevent.KeyF9, "f10": keyevent.KeyF10, "f11": keyevent.KeyF11, "f12": keyevent.KeyF12,

	"leftbracket": keyevent.KeyLeftBracket, "rightbracket": keyevent.KeyRightBracket,
	"backslash": keyevent.KeyBackslash, "minus": keyevent.KeyMinus, "equal": keyevent.KeyEqual,
	"semicolon": keyevent.KeySemicolon, "apostrophe": keyevent.KeyApostrophe,
	"grave": keyevent.KeyGrave, "comma": keyevent.KeyComma, "period": keyevent.KeyPeriod,
	"slash": keyevent.KeySlash,

	"left_shift": keyevent.KeyLeftShift, "left_ctrl": keyevent.KeyLeftCtrl,
	"left_alt": keyevent.KeyLeftAlt, "left_super": keyevent.KeyLeftSuper,
	"left_hyper": keyevent.KeyLeftHyper, "left_meta": keyevent.KeyLeftMeta,
	"right_shift": keyevent.KeyRightShift, "right_ctrl": keyevent.KeyRightCtrl,
	"right_alt": keyevent.KeyRightAlt, "right_super": keyevent.KeyRightSuper,
	"right_hyper": keyevent.KeyRightHyper, "right_meta": keyevent.KeyRightMeta,
	"capslock": keyevent.KeyCapsLock, "numlock": keyevent.KeyNumLock,
}

var actionByName = map[string]keyevent.Action{
	"release": keyevent.ActionRelease,
	"press":   keyevent.ActionPress,
	"repeat":  keyevent.ActionRepeat,
}

var modByName = map[string]keyevent.Mods{
	"shift":    keyevent.ModShift,
	"alt":      keyevent.ModAlt,
	"ctrl":     keyevent.ModCtrl,
	"super":    keyevent.ModSuper,
	"hyper":    keyevent.ModHyper,
	"meta":     keyevent.ModMeta,
	"capslock": keyevent.ModCapsLock,
	"numlock":  keyevent.ModNumLock,
}

var kittyFlagByName = map[string]keyencode.KittyFlags{
	"disambiguate":      keyencode.KittyDisambiguate,
	"report_events":     keyencode.KittyReportEvents,
	"report_alternates": keyencode.KittyReportAlternates,
	"report_associated": keyencode.KittyReportAssociated,
	"report_all":        keyencode.KittyReportAll,
}

// keyEventFixture is the JSON shape `termcore encode` accepts, with key
// and modifier names spelled out the way a hand-written test fixture
// would rather than as raw enum integers.
type keyEventFixture struct {
	Key       string   `json:"key"`
	Action    string   `json:"action"`
	Mods      []string `json:"mods"`
	UTF8      string   `json:"utf8"`
	Unshifted int32    `json:"unshifted_codepoint"`
	Composing bool     `json:"composing"`
}

func (f keyEventFixture) toEvent() (keyevent.Event, error) {
	key, ok := keyByName[strings.ToLower(f.Key)]
	if !ok {
		return keyevent.Event{}, fmt.Errorf("unknown key %q", f.Key)
	}
	action, ok := actionByName[strings.ToLower(f.Action)]
	if !ok && f.Action != "" {
		return keyevent.Event{}, fmt.Errorf("unknown action %q", f.Action)
	}

	var mods keyevent.Mods
	for _, name := range f.Mods {
		m, ok := modByName[strings.ToLower(name)]
		if !ok {
			return keyevent.Event{}, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= m
	}

	return keyevent.Event{
		Key:       key,
		Action:    action,
		Mods:      mods,
		UTF8:      f.UTF8,
		Unshifted: rune(f.Unshifted),
		Composing: f.Composing,
	}, nil
}

// encoderStateFixture is the JSON shape for EncoderState mode flags.
type encoderStateFixture struct {
	AltEscPrefix          bool     `json:"alt_esc_prefix"`
	CursorKeyApplication  bool     `json:"cursor_key_application"`
	KeypadKeyApplication  bool     `json:"keypad_key_application"`
	ModifyOtherKeysState2 bool     `json:"modify_other_keys_state_2"`
	KittyFlags            []string `json:"kitty_flags"`
}

func (f encoderStateFixture) toState() (keyencode.State, error) {
	var flags keyencode.KittyFlags
	for _, name := range f.KittyFlags {
		bit, ok := kittyFlagByName[strings.ToLower(name)]
		if !ok {
			return keyencode.State{}, fmt.Errorf("unknown kitty flag %q", name)
		}
		flags |= bit
	}

	return keyencode.State{
		AltEscPrefix:          f.AltEscPrefix,
		CursorKeyApplication:  f.CursorKeyApplication,
		KeypadKeyApplication:  f.KeypadKeyApplication,
		ModifyOtherKeysState2: f.ModifyOtherKeysState2,
		KittyFlags:            flags,
	}, nil
}

// encodeFixture is the top-level JSON document `termcore encode` reads.
type encodeFixture struct {
	Event keyEventFixture     `json:"event"`
	State encoderStateFixture `json:"state"`
}
