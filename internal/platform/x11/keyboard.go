package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/mj1618/ifwm/internal/platform"
)

// Keyboard reads the keyboard and modifier maps cached by keybind.
type Keyboard struct {
	xu *xgbutil.XUtil
}

// NewKeyboard requires keybind.Initialize to have run on xu.
func NewKeyboard(xu *xgbutil.XUtil) *Keyboard {
	return &Keyboard{xu: xu}
}

func (k *Keyboard) codeRange() (xproto.Keycode, xproto.Keycode, byte) {
	setup := k.xu.Setup()
	return setup.MinKeycode, setup.MaxKeycode, keybind.KeyMapGet(k.xu).KeysymsPerKeycode
}

func (k *Keyboard) Keysym(name string) (platform.Keysym, bool) {
	codes := keybind.StrToKeycodes(k.xu, name)
	if len(codes) == 0 {
		return platform.NoSymbol, false
	}
	_, _, per := k.codeRange()
	for col := byte(0); col < per; col++ {
		sym := keybind.KeysymGet(k.xu, codes[0], col)
		if strings.EqualFold(keybind.KeysymToStr(sym), name) {
			return platform.Keysym(sym), true
		}
	}
	return platform.Keysym(keybind.KeysymGet(k.xu, codes[0], 0)), true
}

func (k *Keyboard) Keycode(sym platform.Keysym) (platform.Keycode, bool) {
	lo, hi, per := k.codeRange()
	for code := int(lo); code <= int(hi); code++ {
		for col := byte(0); col < per; col++ {
			if keybind.KeysymGet(k.xu, xproto.Keycode(code), col) == xproto.Keysym(sym) {
				return platform.Keycode(code), true
			}
		}
	}
	return 0, false
}

func (k *Keyboard) KeycodeKeysym(code platform.Keycode) platform.Keysym {
	lo, hi, _ := k.codeRange()
	if xproto.Keycode(code) < lo || xproto.Keycode(code) > hi {
		return platform.NoSymbol
	}
	return platform.Keysym(keybind.KeysymGet(k.xu, xproto.Keycode(code), 0))
}

func (k *Keyboard) ModifierMapping() ([][]platform.Keycode, error) {
	mm := keybind.ModMapGet(k.xu)
	return modifierRows(mm.Keycodes, int(mm.KeycodesPerModifier)), nil
}

// modifierRows splits the flat modifier map into eight rows, dropping
// unused slots.
func modifierRows(codes []xproto.Keycode, per int) [][]platform.Keycode {
	rows := make([][]platform.Keycode, 8)
	if per <= 0 {
		return rows
	}
	for i := range rows {
		start, end := i*per, (i+1)*per
		if end > len(codes) {
			break
		}
		for _, c := range codes[start:end] {
			if c != 0 {
				rows[i] = append(rows[i], platform.Keycode(c))
			}
		}
	}
	return rows
}
