package wm

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/testutil"
)

const rootWindow platform.WindowID = 1

func newDisplay() *testutil.Display {
	return testutil.NewDisplay(platform.Rect{Width: 800, Height: 600})
}

func newManager(t *testing.T, d *testutil.Display, mutate ...func(*config.Config)) *Manager {
	t.Helper()
	cfg := config.Default()
	for _, fn := range mutate {
		fn(&cfg)
	}
	m, err := New(d.Provider(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.now = func() time.Time { return time.Unix(1700000000, 0) }
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return m
}

// mapNew creates an unmapped application window and delivers its map request.
func mapNew(t *testing.T, m *Manager, d *testutil.Display, title string) *Client {
	t.Helper()
	w := d.AddWindow(0, title, false)
	m.Dispatch(platform.MapRequest{Window: w, Parent: rootWindow})
	cl, ok := m.Client(w)
	if !ok {
		t.Fatalf("window %s was not managed", w)
	}
	return cl
}

func clientWindows(c *Container) []platform.WindowID {
	var out []platform.WindowID
	for _, cl := range c.Clients() {
		out = append(out, cl.Window)
	}
	return out
}

func equalWindows(a, b []platform.WindowID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
