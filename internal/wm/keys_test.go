package wm

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/testutil"
)

func newKeymap(t *testing.T, d *testutil.Display) *Keymap {
	t.Helper()
	k, err := NewKeymap(d, d, []platform.WindowID{rootWindow}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestKeymap_Parse(t *testing.T) {
	k := newKeymap(t, newDisplay())
	tests := []struct {
		keys string
		sym  platform.Keysym
		code platform.Keycode
		mods uint16
	}{
		{"alt+j", 'j', 44, platform.Mod1},
		{"super+Return", testutil.XKReturn, 36, platform.Mod4},
		{"ctrl+shift+a", 'a', 38, platform.ModControl | platform.ModShift},
		{"control+h", 'h', 43, platform.ModControl},
		{"meta+x", 'x', 53, platform.Mod1},
		{"Alt_L+Tab", testutil.XKTab, 23, platform.Mod1},
		{"Return", testutil.XKReturn, 36, 0},
	}
	for _, tt := range tests {
		b, err := k.Parse(tt.keys)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.keys, err)
			continue
		}
		if b.Keysym != tt.sym || b.Keycode != tt.code || b.Modifiers != tt.mods {
			t.Errorf("Parse(%q) = sym %#x code %d mods %#x, want %#x %d %#x",
				tt.keys, b.Keysym, b.Keycode, b.Modifiers, tt.sym, tt.code, tt.mods)
		}
	}
}

func TestKeymap_RegisterErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		keys string
		want error
	}{
		{"alt+bogus", ErrUnknownKey},
		{"alt+", ErrUnknownKey},
		{"hyper+j", ErrUnknownModifier},
		{"Escape+j", ErrUnknownModifier},
		{"alt+bogus+j", ErrUnknownModifier},
	}
	for _, tt := range tests {
		d := newDisplay()
		k := newKeymap(t, d)
		called := false
		err := k.Register(tt.keys, ContextRoot, "test", func() { called = true })
		if !errors.Is(err, tt.want) {
			t.Errorf("Register(%q) = %v, want %v", tt.keys, err, tt.want)
		}
		if len(k.Bindings()) != 0 || len(d.Grabs) != 0 {
			t.Errorf("Register(%q) changed state: %d bindings, %d grabs", tt.keys, len(k.Bindings()), len(d.Grabs))
		}
		if called {
			t.Errorf("Register(%q) ran the action", tt.keys)
		}
	}
}

func TestKeymap_RootBindingsAreGrabbed(t *testing.T) {
	d := testutil.NewDisplay(platform.Rect{Width: 800, Height: 600}, platform.Rect{Width: 1024, Height: 768})
	k, err := NewKeymap(d, d, []platform.WindowID{1, 2}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := k.Register("alt+j", ContextRoot, "split", func() {}); err != nil {
		t.Fatal(err)
	}
	if err := k.Register("Return", ContextContainer, "spawn", func() {}); err != nil {
		t.Fatal(err)
	}
	want := []testutil.Grab{{Root: 1, Code: 44, Modifiers: platform.Mod1}, {Root: 2, Code: 44, Modifiers: platform.Mod1}}
	if len(d.Grabs) != len(want) {
		t.Fatalf("grabs = %+v, want %+v", d.Grabs, want)
	}
	for i := range want {
		if d.Grabs[i] != want[i] {
			t.Errorf("grab %d = %+v, want %+v", i, d.Grabs[i], want[i])
		}
	}
}

func TestKeymap_GrabFailureKeepsBinding(t *testing.T) {
	d := newDisplay()
	d.GrabErr = testutil.ErrGrab
	k := newKeymap(t, d)
	if err := k.Register("alt+j", ContextRoot, "split", func() {}); err != nil {
		t.Fatalf("grab failure should not fail registration: %v", err)
	}
	if _, ok := k.Lookup(ContextRoot, 'j', platform.Mod1); !ok {
		t.Error("binding should be stored")
	}
}

func TestKeymap_Resolve(t *testing.T) {
	d := newDisplay()
	k := newKeymap(t, d)
	var got []string
	mustRegister := func(keys string, ctx Context, name string) {
		t.Helper()
		if err := k.Register(keys, ctx, name, func() { got = append(got, name) }); err != nil {
			t.Fatal(err)
		}
	}
	mustRegister("alt+j", ContextRoot, "split")
	mustRegister("Return", ContextContainer, "spawn")
	mustRegister("alt+h", ContextContainer, "container-h")
	mustRegister("alt+h", ContextRoot, "root-h")

	tests := []struct {
		name        string
		onContainer bool
		code        platform.Keycode
		state       uint16
		want        string
	}{
		{"root binding on root", false, 44, platform.Mod1, "split"},
		{"root binding on container", true, 44, platform.Mod1, "split"},
		{"container binding on container", true, 36, 0, "spawn"},
		{"container binding elsewhere", false, 36, 0, ""},
		{"container wins on container", true, 43, platform.Mod1, "container-h"},
		{"root wins elsewhere", false, 43, platform.Mod1, "root-h"},
		{"extra modifier does not match", false, 44, platform.Mod1 | platform.Mod2, ""},
		{"missing modifier does not match", false, 44, 0, ""},
		{"unmapped keycode", false, 200, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			action, ok := k.Resolve(tt.onContainer, tt.code, tt.state)
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no binding")
				}
				return
			}
			if !ok {
				t.Fatalf("expected %q", tt.want)
			}
			action()
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("ran %v, want %q", got, tt.want)
			}
		})
	}
}

func TestKeymap_BindingsSorted(t *testing.T) {
	k := newKeymap(t, newDisplay())
	for _, keys := range []string{"alt+j", "alt+h"} {
		if err := k.Register(keys, ContextRoot, "x", func() {}); err != nil {
			t.Fatal(err)
		}
	}
	if err := k.Register("Return", ContextContainer, "spawn", func() {}); err != nil {
		t.Fatal(err)
	}
	bs := k.Bindings()
	if len(bs) != 3 {
		t.Fatalf("got %d bindings", len(bs))
	}
	if bs[0].Keys != "alt+h" || bs[1].Keys != "alt+j" || bs[2].Context != ContextContainer {
		t.Errorf("order = %s, %s, %s", bs[0].Keys, bs[1].Keys, bs[2].Keys)
	}
}

func TestParseContext(t *testing.T) {
	for in, want := range map[string]Context{"": ContextRoot, "root": ContextRoot, "Container": ContextContainer} {
		got, err := ParseContext(in)
		if err != nil || got != want {
			t.Errorf("ParseContext(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseContext("screen"); err == nil {
		t.Error("expected error for unknown context")
	}
}

func TestStart_RegistersDefaultBindings(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	if got := len(m.Keymap().Bindings()); got != 3 {
		t.Errorf("got %d bindings, want 3", got)
	}
	if len(d.Grabs) != 2 {
		t.Errorf("got %d grabs, want 2 (root bindings only)", len(d.Grabs))
	}
}
