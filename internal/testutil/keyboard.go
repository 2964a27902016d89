package testutil

import "github.com/mj1618/ifwm/internal/platform"

// Keysyms used by the fake keyboard. Letters map to their lower-case ASCII
// value as on a real server.
const (
	XKReturn   platform.Keysym = 0xff0d
	XKTab      platform.Keysym = 0xff09
	XKEscape   platform.Keysym = 0xff1b
	XKShiftL   platform.Keysym = 0xffe1
	XKControlL platform.Keysym = 0xffe3
	XKMetaL    platform.Keysym = 0xffe7
	XKAltL     platform.Keysym = 0xffe9
	XKSuperL   platform.Keysym = 0xffeb
	XKSpace    platform.Keysym = 0x20
)

var namedKeysyms = map[string]platform.Keysym{
	"Return":    XKReturn,
	"Tab":       XKTab,
	"Escape":    XKEscape,
	"space":     XKSpace,
	"Shift_L":   XKShiftL,
	"Control_L": XKControlL,
	"Meta_L":    XKMetaL,
	"Alt_L":     XKAltL,
	"Super_L":   XKSuperL,
}

// Keycodes of a US layout on an evdev server.
var keycodes = map[platform.Keysym]platform.Keycode{
	XKEscape: 9, XKTab: 23, XKReturn: 36, XKSpace: 65,
	XKShiftL: 50, XKControlL: 37, XKAltL: 64, XKSuperL: 133, XKMetaL: 205,
	'q': 24, 'w': 25, 'e': 26, 'r': 27, 't': 28, 'y': 29, 'u': 30, 'i': 31, 'o': 32, 'p': 33,
	'a': 38, 's': 39, 'd': 40, 'f': 41, 'g': 42, 'h': 43, 'j': 44, 'k': 45, 'l': 46,
	'z': 52, 'x': 53, 'c': 54, 'v': 55, 'b': 56, 'n': 57, 'm': 58,
}

// Key returns the fake keycode for sym, panicking on unknown keys.
func Key(sym platform.Keysym) platform.Keycode {
	code, ok := keycodes[sym]
	if !ok {
		panic("testutil: no keycode for keysym")
	}
	return code
}

func (d *Display) Keysym(name string) (platform.Keysym, bool) {
	if sym, ok := namedKeysyms[name]; ok {
		return sym, true
	}
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		return platform.Keysym(name[0]), true
	}
	return platform.NoSymbol, false
}

func (d *Display) Keycode(sym platform.Keysym) (platform.Keycode, bool) {
	code, ok := keycodes[sym]
	return code, ok
}

func (d *Display) KeycodeKeysym(code platform.Keycode) platform.Keysym {
	for sym, c := range keycodes {
		if c == code {
			return sym
		}
	}
	return platform.NoSymbol
}

// ModifierMapping follows a typical server: Meta_L shares Mod1 with Alt_L.
func (d *Display) ModifierMapping() ([][]platform.Keycode, error) {
	return [][]platform.Keycode{
		{50},      // Shift
		{66},      // Lock
		{37},      // Control
		{64, 205}, // Mod1
		{77},      // Mod2
		nil,       // Mod3
		{133},     // Mod4
		{92},      // Mod5
	}, nil
}
