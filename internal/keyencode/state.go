package keyencode

// CursorKeyMode selects whether cursor keys (arrows) encode in "normal"
// mode (CSI letter) or "application" mode (SS3 letter), or whether the
// distinction doesn't apply to a given table entry.
type CursorKeyMode int

const (
	CursorKeyAny CursorKeyMode = iota
	CursorKeyNormal
	CursorKeyApplication
)

// KeypadKeyMode mirrors CursorKeyMode for the numeric keypad.
type KeypadKeyMode int

const (
	KeypadKeyAny KeypadKeyMode = iota
	KeypadKeyNormal
	KeypadKeyApplication
)

// ModifyOtherKeysRequirement constrains a PC-style table entry to a
// specific xterm modifyOtherKeys setting.
type ModifyOtherKeysRequirement int

const (
	ModifyOtherKeysAny ModifyOtherKeysRequirement = iota
	ModifyOtherKeysSet
	ModifyOtherKeysSetOther
)

// KittyFlags is the bitset of progressively-enabled Kitty keyboard
// protocol features.
type KittyFlags uint8

const (
	KittyDisambiguate KittyFlags = 1 << iota
	KittyReportEvents
	KittyReportAlternates
	KittyReportAssociated
	KittyReportAll
)

func (f KittyFlags) Has(bit KittyFlags) bool { return f&bit != 0 }

// Any reports whether at least one Kitty flag bit is set, which is the
// dispatch condition between the legacy and Kitty encoding paths.
func (f KittyFlags) Any() bool { return f != 0 }

// State carries the terminal mode flags the encoder needs alongside a
// single KeyEvent. It holds no per-event state; a State is reused across
// many Encode calls for the lifetime of a terminal mode configuration.
type State struct {
	AltEscPrefix           bool
	CursorKeyApplication   bool
	KeypadKeyApplication   bool
	ModifyOtherKeysState2  bool
	KittyFlags             KittyFlags
}
