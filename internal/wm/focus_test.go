package wm

import (
	"testing"
)

func TestFocusContainer_HeadAndInputFocus(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	if err := m.SplitFrame(AxisHorizontal); err != nil {
		t.Fatal(err)
	}
	empty := m.Focused()

	m.FocusContainer(root)
	if m.Focused() != root {
		t.Fatal("focused container should move to the stack head")
	}
	if d.Focused != a.Window {
		t.Errorf("input focus = %s, want active client %s", d.Focused, a.Window)
	}
	if p, ok := d.LastTitlePaint(a.TitleBar); !ok || !p.Active {
		t.Error("active client's title bar should be repainted active")
	}
	if cs := m.Containers(); cs[1] != empty {
		t.Error("previous head should follow the new head")
	}

	m.FocusContainer(empty)
	if d.Focused != empty.Window {
		t.Errorf("empty container: input focus = %s, want frame %s", d.Focused, empty.Window)
	}
}

func TestSetCurrentClient_SwitchesTabs(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	b := mapNew(t, m, d, "b")
	if root.Current() != b {
		t.Fatal("last added client should be active")
	}
	d.ResetRequests()

	m.SetCurrentClient(root, a)

	if root.Current() != a {
		t.Fatal("current client not updated")
	}
	if d.Count("unmap", b.Window) != 1 || d.Window(b.Window).Mapped {
		t.Error("previous client should be unmapped")
	}
	if d.Count("map", a.Window) != 1 || !d.Window(a.Window).Mapped {
		t.Error("new client should be mapped")
	}
	if d.Focused != a.Window {
		t.Errorf("input focus = %s, want %s", d.Focused, a.Window)
	}
	if b.pendingUnmaps != 1 {
		t.Errorf("expected unmaps for previous client = %d, want 1", b.pendingUnmaps)
	}
	pa, _ := d.LastTitlePaint(a.TitleBar)
	pb, _ := d.LastTitlePaint(b.TitleBar)
	if !pa.Active || pb.Active {
		t.Errorf("title flags: a=%v b=%v", pa.Active, pb.Active)
	}

	d.ResetRequests()
	m.SetCurrentClient(root, a)
	if len(d.Requests) != 0 {
		t.Errorf("activating the active client should do nothing, got %s", d.Ops())
	}
}

func TestSetCurrentClient_StaleClientEvicted(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	b := mapNew(t, m, d, "b")

	d.Vanish(a.Window)
	m.SetCurrentClient(root, a)

	if _, ok := m.Client(a.Window); ok {
		t.Fatal("stale client should be evicted")
	}
	if root.Current() != b {
		t.Errorf("current = %v, want the remaining client", root.Current())
	}
	if !d.Window(b.Window).Mapped || d.Focused != b.Window {
		t.Error("remaining client should be shown and focused")
	}
	if !d.Window(a.TitleBar).Destroyed {
		t.Error("evicted client's title bar should be destroyed")
	}
}

func TestFocusContainer_StaleClientFallsBackToFrame(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")

	d.Vanish(a.Window)
	m.FocusContainer(root)

	if _, ok := m.Client(a.Window); ok {
		t.Error("stale client should be evicted")
	}
	if d.Focused != root.Window {
		t.Errorf("input focus = %s, want frame", d.Focused)
	}
}

func TestNextClient_Wraps(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	b := mapNew(t, m, d, "b")

	if err := m.NextClient(); err != nil {
		t.Fatal(err)
	}
	if root.Current() != a {
		t.Errorf("after wrap current = %s, want a", root.Current().Window)
	}
	if err := m.NextClient(); err != nil {
		t.Fatal(err)
	}
	if root.Current() != b {
		t.Errorf("current = %s, want b", root.Current().Window)
	}
}

func TestSetCurrentClient_IgnoresClientOfAnotherContainer(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	other, err := m.Split(root, AxisVertical)
	if err != nil {
		t.Fatal(err)
	}
	d.ResetRequests()

	m.SetCurrentClient(other, a)

	if other.Current() != nil || root.Current() != a {
		t.Errorf("current: other=%v root=%v", other.Current(), root.Current())
	}
	if len(d.Requests) != 0 {
		t.Errorf("foreign client should be ignored, got %s", d.Ops())
	}
}
