package layout

import "keydrill/internal/keyboard"

// levels holds the characters a key produces at the plain and shifted
// levels. A zero rune means the level is unmapped.
type levels struct {
	base  rune
	shift rune
}

type charTable map[keyboard.Key]levels

// tables maps XKB layout names to embedded character tables. Layouts not
// listed here leave the resolver unavailable and validation degrades to
// character-only matching.
var tables = map[string]charTable{
	"us": usTable,
	"gb": gbTable,
}

var usTable = charTable{
	keyboard.KeyTilde: {'`', '~'},
	keyboard.Key1:     {'1', '!'},
	keyboard.Key2:     {'2', '@'},
	keyboard.Key3:     {'3', '#'},
	keyboard.Key4:     {'4', '$'},
	keyboard.Key5:     {'5', '%'},
	keyboard.Key6:     {'6', '^'},
	keyboard.Key7:     {'7', '&'},
	keyboard.Key8:     {'8', '*'},
	keyboard.Key9:     {'9', '('},
	keyboard.Key0:     {'0', ')'},
	keyboard.KeyMinus: {'-', '_'},
	keyboard.KeyEqual: {'=', '+'},

	keyboard.KeyTab:          {'\t', '\t'},
	keyboard.KeyQ:            {'q', 'Q'},
	keyboard.KeyW:            {'w', 'W'},
	keyboard.KeyE:            {'e', 'E'},
	keyboard.KeyR:            {'r', 'R'},
	keyboard.KeyT:            {'t', 'T'},
	keyboard.KeyY:            {'y', 'Y'},
	keyboard.KeyU:            {'u', 'U'},
	keyboard.KeyI:            {'i', 'I'},
	keyboard.KeyO:            {'o', 'O'},
	keyboard.KeyP:            {'p', 'P'},
	keyboard.KeyLeftBracket:  {'[', '{'},
	keyboard.KeyRightBracket: {']', '}'},
	keyboard.KeyBackslash:    {'\\', '|'},

	keyboard.KeyA:         {'a', 'A'},
	keyboard.KeyS:         {'s', 'S'},
	keyboard.KeyD:         {'d', 'D'},
	keyboard.KeyF:         {'f', 'F'},
	keyboard.KeyG:         {'g', 'G'},
	keyboard.KeyH:         {'h', 'H'},
	keyboard.KeyJ:         {'j', 'J'},
	keyboard.KeyK:         {'k', 'K'},
	keyboard.KeyL:         {'l', 'L'},
	keyboard.KeySemicolon: {';', ':'},
	keyboard.KeyQuote:     {'\'', '"'},
	keyboard.KeyEnter:     {'\n', '\n'},

	keyboard.KeyZ:     {'z', 'Z'},
	keyboard.KeyX:     {'x', 'X'},
	keyboard.KeyC:     {'c', 'C'},
	keyboard.KeyV:     {'v', 'V'},
	keyboard.KeyB:     {'b', 'B'},
	keyboard.KeyN:     {'n', 'N'},
	keyboard.KeyM:     {'m', 'M'},
	keyboard.KeyComma: {',', '<'},
	keyboard.KeyDot:   {'.', '>'},
	keyboard.KeySlash: {'/', '?'},

	keyboard.KeySpace: {' ', ' '},
}

// gbTable differs from US only on the keys the UK layout moves around.
var gbTable = func() charTable {
	t := make(charTable, len(usTable))
	for k, v := range usTable {
		t[k] = v
	}
	t[keyboard.Key2] = levels{'2', '"'}
	t[keyboard.Key3] = levels{'3', '£'}
	t[keyboard.KeyTilde] = levels{'`', '¬'}
	t[keyboard.KeyQuote] = levels{'\'', '@'}
	t[keyboard.KeyBackslash] = levels{'#', '~'}
	return t
}()
