package keyencode

import "github.com/vibetunnel/termcore/internal/keyevent"

// kittyEntry is a row in the Kitty functional-key table: the codepoint or
// legacy numeric code to report, the terminating letter, and whether this
// key is itself a modifier (shift/ctrl/alt/...) for the composition gate.
type kittyEntry struct {
	code       int
	final      byte
	isModifier bool
}

// kittyTable maps a logical key to its Kitty keyboard protocol entry.
// Codes 57344+ follow the numbering kitty and its adopters (e.g. the
// extended range documented by tcell's vt.BaseKey/KittyBase) assign to
// keys with no natural Unicode codepoint.
var kittyTable = map[keyevent.Key]kittyEntry{
	keyevent.KeyEscape:    {code: 27, final: 'u'},
	keyevent.KeyEnter:     {code: 13, final: 'u'},
	keyevent.KeyTab:       {code: 9, final: 'u'},
	keyevent.KeyBackspace: {code: 127, final: 'u'},

	keyevent.KeyUp:    {final: 'A'},
	keyevent.KeyDown:  {final: 'B'},
	keyevent.KeyRight: {final: 'C'},
	keyevent.KeyLeft:  {final: 'D'},
	keyevent.KeyHome:  {final: 'H'},
	keyevent.KeyEnd:   {final: 'F'},

	keyevent.KeyInsert:   {code: 2, final: '~'},
	keyevent.KeyDelete:   {code: 3, final: '~'},
	keyevent.KeyPageUp:   {code: 5, final: '~'},
	keyevent.KeyPageDown: {code: 6, final: '~'},

	keyevent.KeyF1: {final: 'P'},
	keyevent.KeyF2: {final: 'Q'},
	keyevent.KeyF3: {final: 'R'},
	keyevent.KeyF4: {final: 'S'},

	keyevent.KeyF5:  {code: 15, final: '~'},
	keyevent.KeyF6:  {code: 17, final: '~'},
	keyevent.KeyF7:  {code: 18, final: '~'},
	keyevent.KeyF8:  {code: 19, final: '~'},
	keyevent.KeyF9:  {code: 20, final: '~'},
	keyevent.KeyF10: {code: 21, final: '~'},
	keyevent.KeyF11: {code: 23, final: '~'},
	keyevent.KeyF12: {code: 24, final: '~'},

	keyevent.KeyCapsLock: {code: 57358, final: 'u', isModifier: true},
	keyevent.KeyNumLock:  {code: 57360, final: 'u', isModifier: true},

	keyevent.KeyLeftShift:  {code: 57441, final: 'u', isModifier: true},
	keyevent.KeyLeftCtrl:   {code: 57442, final: 'u', isModifier: true},
	keyevent.KeyLeftAlt:    {code: 57443, final: 'u', isModifier: true},
	keyevent.KeyLeftSuper:  {code: 57444, final: 'u', isModifier: true},
	keyevent.KeyLeftHyper:  {code: 57445, final: 'u', isModifier: true},
	keyevent.KeyLeftMeta:   {code: 57446, final: 'u', isModifier: true},
	keyevent.KeyRightShift: {code: 57447, final: 'u', isModifier: true},
	keyevent.KeyRightCtrl:  {code: 57448, final: 'u', isModifier: true},
	keyevent.KeyRightAlt:   {code: 57449, final: 'u', isModifier: true},
	keyevent.KeyRightSuper: {code: 57450, final: 'u', isModifier: true},
	keyevent.KeyRightHyper: {code: 57451, final: 'u', isModifier: true},
	keyevent.KeyRightMeta:  {code: 57452, final: 'u', isModifier: true},
}
