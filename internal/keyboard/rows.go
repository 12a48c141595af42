package keyboard

// RowSpec groups the practice keys of a named row by hand.
type RowSpec struct {
	Left  []Key
	Right []Key
}

// All returns the combined key set, left hand first.
func (r RowSpec) All() []Key {
	out := make([]Key, 0, len(r.Left)+len(r.Right))
	out = append(out, r.Left...)
	out = append(out, r.Right...)
	return out
}

// Empty reports whether the row has no keys at all.
func (r RowSpec) Empty() bool {
	return len(r.Left) == 0 && len(r.Right) == 0
}

// Rows maps row identifiers used by the curriculum to their key sets.
var Rows = map[string]RowSpec{
	"home": {
		Left:  []Key{KeyA, KeyS, KeyD, KeyF},
		Right: []Key{KeyJ, KeyK, KeyL, KeySemicolon},
	},
	"top": {
		Left:  []Key{KeyQ, KeyW, KeyE, KeyR},
		Right: []Key{KeyU, KeyI, KeyO, KeyP},
	},
	"bottom": {
		Left:  []Key{KeyZ, KeyX, KeyC, KeyV},
		Right: []Key{KeyN, KeyM, KeyComma, KeyDot},
	},
	"numbers": {
		Left:  []Key{Key1, Key2, Key3, Key4, Key5},
		Right: []Key{Key6, Key7, Key8, Key9, Key0, KeyMinus, KeyEqual},
	},
	"symbols_basic": {
		Left:  []Key{KeyTilde},
		Right: []Key{KeyLeftBracket, KeyRightBracket, KeySemicolon, KeyQuote},
	},
	"focus_e_i":     {Left: []Key{KeyE}, Right: []Key{KeyI}},
	"focus_r_u":     {Left: []Key{KeyR}, Right: []Key{KeyU}},
	"focus_t_o":     {Left: []Key{KeyT}, Right: []Key{KeyO}},
	"focus_c_comma": {Left: []Key{KeyC}, Right: []Key{KeyComma}},
	"focus_g_h":     {Left: []Key{KeyG}, Right: []Key{KeyH}},
	"focus_v_n_slash": {
		Left:  []Key{KeyV},
		Right: []Key{KeyN, KeySlash},
	},
	"focus_w_m": {Left: []Key{KeyW}, Right: []Key{KeyM}},
	"focus_q_p": {Left: []Key{KeyQ}, Right: []Key{KeyP}},
	"focus_b_y": {Left: []Key{KeyB}, Right: []Key{KeyY}},
	"focus_z_x": {Left: []Key{KeyZ}, Right: []Key{KeyX}},
	"focus_shift_period": {
		Left:  []Key{KeyA, KeyS, KeyD, KeyF, KeyE, KeyR, KeyT},
		Right: []Key{KeyJ, KeyK, KeyL, KeySemicolon, KeyI, KeyU, KeyO, KeyDot},
	},
}
