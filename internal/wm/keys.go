package wm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/platform"
)

var (
	// ErrUnknownKey is returned when a key name has no keysym or keycode.
	ErrUnknownKey = errors.New("unknown key")
	// ErrUnknownModifier is returned when a modifier name cannot be mapped
	// to a modifier bit.
	ErrUnknownModifier = errors.New("unknown modifier")
)

// Context is the scope a binding applies in.
type Context uint8

const (
	// ContextRoot bindings are grabbed on every screen root.
	ContextRoot Context = iota
	// ContextContainer bindings apply to key presses on a container frame.
	ContextContainer
)

func (c Context) String() string {
	if c == ContextContainer {
		return "container"
	}
	return "root"
}

// ParseContext converts "root" or "container".
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "root":
		return ContextRoot, nil
	case "container":
		return ContextContainer, nil
	default:
		return ContextRoot, fmt.Errorf("unknown binding context %q", s)
	}
}

// Action is what a binding runs.
type Action func()

// modifierAliases maps friendly names to the keysym whose modifier bit is
// used.
var modifierAliases = map[string]string{
	"alt":     "Alt_L",
	"super":   "Super_L",
	"meta":    "Meta_L",
	"ctrl":    "Control_L",
	"control": "Control_L",
	"shift":   "Shift_L",
}

// Binding is one registered key combination.
type Binding struct {
	Context   Context
	Keys      string
	Name      string
	Keysym    platform.Keysym
	Keycode   platform.Keycode
	Modifiers uint16

	action Action
}

type bindingKey struct {
	ctx  Context
	sym  platform.Keysym
	mods uint16
}

// Keymap resolves key strings and stores bindings by context, keysym and
// modifier mask.
type Keymap struct {
	kb       platform.Keyboard
	conn     platform.Conn
	roots    []platform.WindowID
	log      zerolog.Logger
	modmap   map[platform.Keycode]uint16
	bindings map[bindingKey]*Binding
}

// NewKeymap reads the keyboard's modifier mapping. Root-context bindings are
// grabbed on each of roots.
func NewKeymap(kb platform.Keyboard, conn platform.Conn, roots []platform.WindowID, log zerolog.Logger) (*Keymap, error) {
	rows, err := kb.ModifierMapping()
	if err != nil {
		return nil, fmt.Errorf("modifier mapping: %w", err)
	}
	modmap := make(map[platform.Keycode]uint16)
	for i, row := range rows {
		if i >= 8 {
			break
		}
		for _, code := range row {
			if code != 0 {
				modmap[code] |= 1 << uint(i)
			}
		}
	}
	return &Keymap{
		kb:       kb,
		conn:     conn,
		roots:    roots,
		log:      log,
		modmap:   modmap,
		bindings: make(map[bindingKey]*Binding),
	}, nil
}

// Parse resolves a "mod+mod+key" string without registering it.
func (k *Keymap) Parse(keys string) (Binding, error) {
	parts := strings.Split(strings.TrimSpace(keys), "+")
	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return Binding{}, fmt.Errorf("%q: missing key: %w", keys, ErrUnknownKey)
	}
	sym, ok := k.kb.Keysym(name)
	if !ok {
		return Binding{}, fmt.Errorf("%q: key %q: %w", keys, name, ErrUnknownKey)
	}
	code, ok := k.kb.Keycode(sym)
	if !ok {
		return Binding{}, fmt.Errorf("%q: no keycode for %q: %w", keys, name, ErrUnknownKey)
	}

	var mods uint16
	for _, part := range parts[:len(parts)-1] {
		mask, err := k.modifierMask(strings.TrimSpace(part))
		if err != nil {
			return Binding{}, fmt.Errorf("%q: %w", keys, err)
		}
		mods |= mask
	}
	return Binding{Keys: keys, Keysym: sym, Keycode: code, Modifiers: mods}, nil
}

func (k *Keymap) modifierMask(name string) (uint16, error) {
	symName := name
	if alias, ok := modifierAliases[strings.ToLower(name)]; ok {
		symName = alias
	}
	sym, ok := k.kb.Keysym(symName)
	if !ok {
		return 0, fmt.Errorf("modifier %q: %w", name, ErrUnknownModifier)
	}
	code, ok := k.kb.Keycode(sym)
	if !ok {
		return 0, fmt.Errorf("modifier %q has no keycode: %w", name, ErrUnknownModifier)
	}
	mask := k.modmap[code]
	if mask == 0 {
		return 0, fmt.Errorf("modifier %q is not mapped: %w", name, ErrUnknownModifier)
	}
	return mask, nil
}

// Register binds keys in ctx to action. On error nothing changes. Root
// bindings are grabbed on every root; a failed grab is logged and the
// binding is kept.
func (k *Keymap) Register(keys string, ctx Context, name string, action Action) error {
	b, err := k.Parse(keys)
	if err != nil {
		k.log.Warn().Err(err).Str("keys", keys).Msg("invalid key binding")
		return err
	}
	if action == nil {
		return fmt.Errorf("%q: nil action", keys)
	}
	b.Context = ctx
	b.Name = name
	b.action = action

	key := bindingKey{ctx: ctx, sym: b.Keysym, mods: b.Modifiers}
	if old, ok := k.bindings[key]; ok {
		k.log.Debug().Str("keys", keys).Str("replaces", old.Keys).Msg("binding replaced")
	}
	k.bindings[key] = &b

	if ctx == ContextRoot {
		for _, root := range k.roots {
			if err := k.conn.GrabKey(root, b.Keycode, b.Modifiers); err != nil {
				k.log.Warn().Err(err).Str("keys", keys).Stringer("root", root).Msg("key grab failed")
			}
		}
	}
	k.log.Debug().Str("keys", keys).Stringer("context", ctx).Str("action", name).Msg("binding registered")
	return nil
}

// Lookup returns the action stored for an exact (context, keysym, mask).
func (k *Keymap) Lookup(ctx Context, sym platform.Keysym, mods uint16) (Action, bool) {
	b, ok := k.bindings[bindingKey{ctx: ctx, sym: sym, mods: mods}]
	if !ok {
		return nil, false
	}
	return b.action, true
}

// Resolve finds the action for a key press. Container bindings win when the
// event window is a container frame; otherwise root bindings apply. The
// modifier state must match exactly.
func (k *Keymap) Resolve(onContainer bool, code platform.Keycode, state uint16) (Action, bool) {
	sym := k.kb.KeycodeKeysym(code)
	if sym == platform.NoSymbol {
		return nil, false
	}
	if onContainer {
		if action, ok := k.Lookup(ContextContainer, sym, state); ok {
			return action, true
		}
	}
	return k.Lookup(ContextRoot, sym, state)
}

// Bindings lists registered bindings ordered by context then key string.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Context != out[j].Context {
			return out[i].Context < out[j].Context
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}
