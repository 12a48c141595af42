// Package keyboard defines physical key identifiers and layout tables.
package keyboard

// Key identifies a physical keyboard position by its evdev scancode.
// It is independent of the active character layout.
type Key uint16

// Unmapped marks a target character with no known physical key.
// Validation falls back to character matching for such positions.
const Unmapped Key = 0

// Physical keys of a standard ANSI keyboard, by evdev scancode.
const (
	KeyEscape       Key = 1
	KeyTilde        Key = 41
	Key1            Key = 2
	Key2            Key = 3
	Key3            Key = 4
	Key4            Key = 5
	Key5            Key = 6
	Key6            Key = 7
	Key7            Key = 8
	Key8            Key = 9
	Key9            Key = 10
	Key0            Key = 11
	KeyMinus        Key = 12
	KeyEqual        Key = 13
	KeyBackspace    Key = 14
	KeyTab          Key = 15
	KeyQ            Key = 16
	KeyW            Key = 17
	KeyE            Key = 18
	KeyR            Key = 19
	KeyT            Key = 20
	KeyY            Key = 21
	KeyU            Key = 22
	KeyI            Key = 23
	KeyO            Key = 24
	KeyP            Key = 25
	KeyLeftBracket  Key = 26
	KeyRightBracket Key = 27
	KeyBackslash    Key = 43
	KeyA            Key = 30
	KeyS            Key = 31
	KeyD            Key = 32
	KeyF            Key = 33
	KeyG            Key = 34
	KeyH            Key = 35
	KeyJ            Key = 36
	KeyK            Key = 37
	KeyL            Key = 38
	KeySemicolon    Key = 39
	KeyQuote        Key = 40
	KeyEnter        Key = 28
	KeyShiftLeft    Key = 42
	KeyZ            Key = 44
	KeyX            Key = 45
	KeyC            Key = 46
	KeyV            Key = 47
	KeyB            Key = 48
	KeyN            Key = 49
	KeyM            Key = 50
	KeyComma        Key = 51
	KeyDot          Key = 52
	KeySlash        Key = 53
	KeyShiftRight   Key = 54
	KeySpace        Key = 57
)

// AllKeys lists every physical key in a fixed declaration order.
// Reverse character resolution iterates this slice, so the order is part
// of the resolver's determinism contract.
var AllKeys = []Key{
	KeyEscape, KeyTilde, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8,
	Key9, Key0, KeyMinus, KeyEqual, KeyBackspace,
	KeyTab, KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP,
	KeyLeftBracket, KeyRightBracket, KeyBackslash,
	KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, KeySemicolon,
	KeyQuote, KeyEnter,
	KeyShiftLeft, KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, KeyComma,
	KeyDot, KeySlash, KeyShiftRight,
	KeySpace,
}

// VisualRows arranges keys as they appear on the keyboard, top to bottom,
// for the on-screen keyboard pane.
var VisualRows = [][]Key{
	{KeyEscape, KeyTilde, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9, Key0, KeyMinus, KeyEqual, KeyBackspace},
	{KeyTab, KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP, KeyLeftBracket, KeyRightBracket, KeyBackslash},
	{KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, KeySemicolon, KeyQuote, KeyEnter},
	{KeyShiftLeft, KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, KeyComma, KeyDot, KeySlash, KeyShiftRight},
	{KeySpace},
}

// Finger identifies which finger strikes a key: L1-L4 left pinky to index,
// R1-R4 right index to pinky, Thumb for the space bar.
type Finger string

// Finger identifiers, ordered as rendered in the finger guide.
const (
	FingerL1    Finger = "L1"
	FingerL2    Finger = "L2"
	FingerL3    Finger = "L3"
	FingerL4    Finger = "L4"
	FingerR1    Finger = "R1"
	FingerR2    Finger = "R2"
	FingerR3    Finger = "R3"
	FingerR4    Finger = "R4"
	FingerThumb Finger = "THUMB"
)

// FingerMap assigns the striking finger to every physical key.
var FingerMap = map[Key]Finger{
	KeyTilde: FingerL1, Key1: FingerL1, Key2: FingerL2, Key3: FingerL3,
	Key4: FingerL4, Key5: FingerL4, Key6: FingerR1, Key7: FingerR1,
	Key8: FingerR2, Key9: FingerR3, Key0: FingerR4, KeyMinus: FingerR4,
	KeyEqual: FingerR4, KeyBackspace: FingerR4,
	KeyTab: FingerL1, KeyQ: FingerL1, KeyW: FingerL2, KeyE: FingerL3,
	KeyR: FingerL4, KeyT: FingerL4, KeyY: FingerR1, KeyU: FingerR1,
	KeyI: FingerR2, KeyO: FingerR3, KeyP: FingerR4, KeyLeftBracket: FingerR4,
	KeyRightBracket: FingerR4, KeyBackslash: FingerR4,
	KeyA: FingerL1, KeyS: FingerL2, KeyD: FingerL3, KeyF: FingerL4,
	KeyG: FingerL4, KeyH: FingerR1, KeyJ: FingerR1, KeyK: FingerR2,
	KeyL: FingerR3, KeySemicolon: FingerR4, KeyQuote: FingerR4, KeyEnter: FingerR4,
	KeyShiftLeft: FingerL1, KeyZ: FingerL1, KeyX: FingerL2, KeyC: FingerL3,
	KeyV: FingerL4, KeyB: FingerL4, KeyN: FingerR1, KeyM: FingerR1,
	KeyComma: FingerR2, KeyDot: FingerR3, KeySlash: FingerR4, KeyShiftRight: FingerR4,
	KeySpace: FingerThumb,
}

// DisplayMap overrides the on-screen label for non-character keys.
var DisplayMap = map[Key]string{
	KeyEscape:     "ESC",
	KeyTab:        "TAB",
	KeyBackspace:  "BACK",
	KeyEnter:      "ENTER",
	KeyShiftLeft:  "SHIFT",
	KeyShiftRight: "SHIFT",
	KeySpace:      "SPACE",
	KeyTilde:      "`",
}
