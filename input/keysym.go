package input

import (
	"github.com/jezek/xgb/xproto"

	"github.com/hsdcc/hsdwm/store"
)

// Keysym values needed by the binding table, taken directly from
// X11/keysymdef.h. Named individually (not imported from a keysym
// package) since only a handful are used.
const (
	xkReturn = 0xff0d
	xkTab    = 0xff09
	xkD      = 0x064
	xkF      = 0x066
	xkT      = 0x074
	xkQ      = 0x071
	xkA      = 0x061
	xkE      = 0x065
	xkH      = 0x068
	xkJ      = 0x06a
	xkK      = 0x06b
	xkL      = 0x06c
	xkLeft   = 0xff51
	xkUp     = 0xff52
	xkRight  = 0xff53
	xkDown   = 0xff54
	xk1      = 0x031

	// French AZERTY top row, in left-to-right order, mapping to
	// workspaces 0..8 the same way XK_1..XK_9 do on QWERTY.
	xkAmpersand  = 0x026
	xkEacute     = 0x0e9
	xkQuotedbl   = 0x022
	xkApostrophe = 0x027
	xkParenleft  = 0x028
	xkMinus      = 0x02d
	xkEgrave     = 0x0e8
	xkUnderscore = 0x05f
	xkCcedilla   = 0x0e7
)

var azertyTopRow = [9]xproto.Keysym{
	xkAmpersand, xkEacute, xkQuotedbl, xkApostrophe, xkParenleft,
	xkMinus, xkEgrave, xkUnderscore, xkCcedilla,
}

// keymap maps keycode to its first-level keysym, built once at startup
// from GetKeyboardMapping.
var keymap map[xproto.Keycode]xproto.Keysym

// minKeycode/maxKeycode bound the keymap query range.
var minKeycode, maxKeycode xproto.Keycode

// LoadKeymap fetches the server's keyboard mapping, mirroring the way
// dewm and marwind both build a keycode table at startup instead of
// calling XKeysymToKeycode per lookup.
func LoadKeymap() error {
	setup := xproto.Setup(store.X.Conn())
	minKeycode = setup.MinKeycode
	maxKeycode = setup.MaxKeycode

	count := byte(maxKeycode - minKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(store.X.Conn(), minKeycode, count).Reply()
	if err != nil {
		return err
	}

	keymap = make(map[xproto.Keycode]xproto.Keysym, count)
	perCode := int(reply.KeysymsPerKeycode)
	for i := 0; i < int(count); i++ {
		base := i * perCode
		if base >= len(reply.Keysyms) {
			break
		}
		sym := reply.Keysyms[base]
		if sym != 0 {
			keymap[xproto.Keycode(int(minKeycode)+i)] = sym
		}
	}
	return nil
}

// KeysymOf returns the first-level keysym bound to a keycode.
func KeysymOf(kc xproto.Keycode) xproto.Keysym {
	return keymap[kc]
}

// KeycodesFor returns every keycode the server maps to sym (normally
// zero or one, but X permits aliases).
func KeycodesFor(sym xproto.Keysym) []xproto.Keycode {
	var out []xproto.Keycode
	for kc, s := range keymap {
		if s == sym {
			out = append(out, kc)
		}
	}
	return out
}

// WorkspaceForKeysym maps a keysym to a workspace index, covering both
// the QWERTY digit row and the French AZERTY top row, or -1 if sym names
// neither.
func WorkspaceForKeysym(sym xproto.Keysym) int {
	if sym >= xk1 && sym <= xk1+8 {
		return int(sym - xk1)
	}
	for i, s := range azertyTopRow {
		if s == sym {
			return i
		}
	}
	return -1
}
