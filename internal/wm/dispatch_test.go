package wm

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/model"
	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/testutil"
)

func TestRun_ReturnsWhenConnectionCloses(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	d.Queue(platform.MapNotify{Window: 99}, platform.LeaveNotify{Window: 99})
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Pending() != 0 {
		t.Errorf("%d events left unprocessed", d.Pending())
	}
}

func TestStart_AdoptsViewableWindows(t *testing.T) {
	d := newDisplay()
	visible := d.AddWindow(0, "visible", true)
	hidden := d.AddWindow(0, "hidden", false)
	popup := d.AddOverrideRedirect(0)
	other := d.AddWindow(0, "other", true)

	m := newManager(t, d)
	root := m.Focused()

	if got := clientWindows(root); !equalWindows(got, []platform.WindowID{visible, other}) {
		t.Fatalf("adopted %v, want %v", got, []platform.WindowID{visible, other})
	}
	for _, w := range []platform.WindowID{hidden, popup} {
		if _, ok := m.Client(w); ok {
			t.Errorf("window %s should not be managed", w)
		}
	}
	// Reparenting a viewable window and hiding a tab both produce unmaps.
	if cl, _ := m.Client(visible); cl.pendingUnmaps != 2 {
		t.Errorf("visible: pending unmaps = %d, want 2", cl.pendingUnmaps)
	}
	if cl, _ := m.Client(other); cl.pendingUnmaps != 1 {
		t.Errorf("other: pending unmaps = %d, want 1", cl.pendingUnmaps)
	}
}

func TestStart_MultipleScreens(t *testing.T) {
	d := testutil.NewDisplay(platform.Rect{Width: 800, Height: 600}, platform.Rect{Width: 1024, Height: 768})
	m := newManager(t, d)
	cs := m.Containers()
	if len(cs) != 2 {
		t.Fatalf("got %d containers, want one per screen", len(cs))
	}
	if cs[0].Screen != 0 || cs[1].Screen != 1 || cs[1].Width != 1024 {
		t.Errorf("containers = %+v, %+v", cs[0].Rect(), cs[1].Rect())
	}

	w := d.AddWindow(1, "second", false)
	m.Dispatch(platform.MapRequest{Window: w, Parent: 2})
	cl, ok := m.Client(w)
	if !ok || cl.Container() != cs[1] {
		t.Error("window on screen 1 should go to that screen's container")
	}
	if len(d.Grabs) != 4 {
		t.Errorf("root bindings should be grabbed on both roots, got %d grabs", len(d.Grabs))
	}
}

func TestMapRequest_ManagedWindowIsReplaced(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	oldBar := a.TitleBar

	m.Dispatch(platform.MapRequest{Window: a.Window, Parent: rootWindow})

	again, ok := m.Client(a.Window)
	if !ok || again == a {
		t.Fatal("window should be managed by a fresh client")
	}
	if len(root.Clients()) != 1 {
		t.Errorf("clients = %v", clientWindows(root))
	}
	if !d.Window(oldBar).Destroyed {
		t.Error("old title bar should be destroyed")
	}
}

func TestMapRequest_GoesToFocusedContainer(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	if err := m.SplitFrame(AxisVertical); err != nil {
		t.Fatal(err)
	}
	m.FocusContainer(root)
	cl := mapNew(t, m, d, "a")
	if cl.Container() != root {
		t.Error("new window should join the focused container")
	}
}

func TestUnmapNotify_ExpectedUnmapsAreIgnored(t *testing.T) {
	d := newDisplay()
	d.NotifyUnmaps = true
	m := newManager(t, d)
	a := d.AddWindow(0, "a", false)
	b := d.AddWindow(0, "b", false)
	d.Queue(
		platform.MapRequest{Window: a, Parent: rootWindow},
		platform.MapRequest{Window: b, Parent: rootWindow},
	)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	for _, w := range []platform.WindowID{a, b} {
		if _, ok := m.Client(w); !ok {
			t.Errorf("window %s removed by the manager's own unmap", w)
		}
	}
	cl, _ := m.Client(a)
	if cl.pendingUnmaps != 0 {
		t.Errorf("pending unmaps = %d, want 0 after the notification", cl.pendingUnmaps)
	}
}

func TestUnmapNotify_ClientWithdrawal(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	b := mapNew(t, m, d, "b")

	m.Dispatch(platform.UnmapNotify{Window: b.Window, Event: root.Window})

	if _, ok := m.Client(b.Window); ok {
		t.Fatal("withdrawn window should be unmanaged")
	}
	if root.Current() != a {
		t.Error("remaining client should become active")
	}
	if d.Window(b.Window).Parent != rootWindow {
		t.Error("withdrawn window should be handed back to the root")
	}

	m.Dispatch(platform.UnmapNotify{Window: b.Window, Event: rootWindow})
	if len(root.Clients()) != 1 {
		t.Error("unmap of an unmanaged window must be ignored")
	}
}

func TestDestroyNotify_RemovesClient(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")

	d.Vanish(a.Window)
	m.Dispatch(platform.DestroyNotify{Window: a.Window, Event: root.Window})
	m.Dispatch(platform.DestroyNotify{Window: a.Window, Event: root.Window})

	if _, ok := m.Client(a.Window); ok {
		t.Error("destroyed window still managed")
	}
	if len(root.Clients()) != 0 || root.Current() != nil {
		t.Error("container should be empty")
	}
	if _, ok := m.Container(root.Window); !ok {
		t.Error("empty container should persist")
	}
}

func TestKeyPress_RunsBoundAction(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()

	m.Dispatch(platform.KeyPress{Window: rootWindow, Root: rootWindow, Code: testutil.Key('j'), State: platform.Mod1})
	if len(m.Containers()) != 2 || root.Height != 300 {
		t.Fatalf("alt+j should split horizontally, got %d containers", len(m.Containers()))
	}

	m.Dispatch(platform.KeyPress{Window: rootWindow, Root: rootWindow, Code: testutil.Key('h'), State: platform.Mod1})
	if len(m.Containers()) != 3 || m.Focused().Width != 400 {
		t.Fatalf("alt+h should split vertically, got %d containers", len(m.Containers()))
	}

	m.Dispatch(platform.KeyPress{Window: m.Focused().Window, Root: rootWindow, Code: testutil.Key(testutil.XKReturn)})
	if len(d.Spawned) != 1 || d.Spawned[0] != "xterm" {
		t.Errorf("Return on a container should spawn the terminal, got %v", d.Spawned)
	}

	m.Dispatch(platform.KeyPress{Window: rootWindow, Root: rootWindow, Code: testutil.Key(testutil.XKReturn)})
	if len(d.Spawned) != 1 {
		t.Error("container binding must not fire on the root")
	}
}

func TestKeyPress_UnboundKeyChangesNothing(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	before := m.Snapshot()
	d.ResetRequests()

	m.Dispatch(platform.KeyPress{Window: rootWindow, Root: rootWindow, Code: testutil.Key('q'), State: platform.Mod1})
	m.Dispatch(platform.KeyPress{Window: rootWindow, Root: rootWindow, Code: 250})

	if len(d.Requests) != 0 {
		t.Errorf("unbound key issued requests: %s", d.Ops())
	}
	if after := m.Snapshot(); len(after.Containers) != len(before.Containers) {
		t.Error("unbound key changed the layout")
	}
}

func TestInvalidBindingIsSkipped(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d, func(c *config.Config) {
		c.Bindings = []config.Binding{
			{Keys: "alt+nonsense", Action: config.ActionSplitVertical},
			{Keys: "alt+j", Action: config.ActionSplitHorizontal},
		}
	})
	bs := m.Keymap().Bindings()
	if len(bs) != 1 || bs[0].Keys != "alt+j" {
		t.Errorf("bindings = %+v", bs)
	}
}

func TestEnterNotify_FocusesContainer(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	if err := m.SplitFrame(AxisHorizontal); err != nil {
		t.Fatal(err)
	}
	other := m.Focused()

	m.Dispatch(platform.EnterNotify{Window: a.Window})
	if m.Focused() != root || d.Focused != a.Window {
		t.Error("entering a client should focus its container")
	}

	m.Dispatch(platform.EnterNotify{Window: other.Window})
	if m.Focused() != other || d.Focused != other.Window {
		t.Error("entering a container should focus it")
	}

	m.Dispatch(platform.EnterNotify{Window: 0xdead})
	if m.Focused() != other {
		t.Error("entering an unknown window should not change focus")
	}
}

func TestExpose_RepaintsFramesAndTitleBars(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	d.ResetRequests()

	m.Dispatch(platform.Expose{Window: root.Window, Area: platform.Rect{Width: 10, Height: 10}})
	if len(d.FramePaints) != 1 || d.FramePaints[0] != root.Window {
		t.Errorf("frame paints = %v", d.FramePaints)
	}

	m.Dispatch(platform.Expose{Window: a.TitleBar, Count: 2})
	if len(d.TitlePaints) != 0 {
		t.Error("title bars repaint only on the last expose of a series")
	}
	m.Dispatch(platform.Expose{Window: a.TitleBar})
	if p, ok := d.LastTitlePaint(a.TitleBar); !ok || p.Title != "a" || !p.Active {
		t.Errorf("title paint = %+v", p)
	}
}

func TestButtonRelease_ActivatesTab(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	root := m.Focused()
	a := mapNew(t, m, d, "a")
	mapNew(t, m, d, "b")

	m.Dispatch(platform.ButtonRelease{Window: a.TitleBar, Button: platform.MouseRight})
	if root.Current() == a {
		t.Error("non-primary button should not switch tabs")
	}
	m.Dispatch(platform.ButtonRelease{Window: a.TitleBar, Button: platform.MouseLeft})
	if root.Current() != a || d.Focused != a.Window {
		t.Error("clicking a tab should activate and focus its client")
	}
}

func TestPropertyNotify_RefreshesTitle(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	a := mapNew(t, m, d, "before")

	d.SetTitle(a.Window, "after")
	m.Dispatch(platform.PropertyNotify{Window: a.Window, Atom: "WM_CLASS"})
	if a.Title != "before" {
		t.Error("unrelated property should be ignored")
	}
	for _, atom := range []string{"WM_NAME", "_NET_WM_NAME", "_NET_WM_VISIBLE_NAME"} {
		d.SetTitle(a.Window, atom)
		m.Dispatch(platform.PropertyNotify{Window: a.Window, Atom: atom})
		if a.Title != atom {
			t.Errorf("%s: title = %q", atom, a.Title)
		}
		if p, _ := d.LastTitlePaint(a.TitleBar); p.Title != atom {
			t.Errorf("%s: painted %q", atom, p.Title)
		}
	}
}

func TestConfigureRequest_ApprovedWithoutBorder(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	w := d.AddWindow(0, "unmanaged", false)

	m.Dispatch(platform.ConfigureRequest{Window: w, Parent: rootWindow, Changes: platform.WindowChanges{
		Mask: platform.ConfigX | platform.ConfigWidth | platform.ConfigBorderWidth, X: 10, Width: 300, BorderWidth: 5,
	}})
	got := d.Window(w)
	if got.Rect.X != 10 || got.Rect.Width != 300 || got.Border != 0 {
		t.Errorf("window = %+v", got)
	}
}

func TestErrorEvent_EvictsStaleWindow(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	a := mapNew(t, m, d, "a")

	m.Dispatch(platform.ErrorEvent{Window: a.Window, Stale: false, Err: errors.New("bad match")})
	if _, ok := m.Client(a.Window); !ok {
		t.Fatal("non-stale errors must not evict")
	}
	m.Dispatch(platform.ErrorEvent{Window: a.Window, Stale: true, Err: platform.ErrStaleWindow})
	if _, ok := m.Client(a.Window); ok {
		t.Error("stale error should evict the client")
	}
}

func TestSubscriptions_AllMatchingInOrder(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	var order []int
	w := platform.WindowID(0x777)
	m.subscribe(platform.KindLeaveNotify, w, nil, func(platform.Event) { order = append(order, 1) })
	m.subscribe(platform.KindLeaveNotify, w, func(platform.Event) bool { return false }, func(platform.Event) { order = append(order, 2) })
	m.subscribe(platform.KindLeaveNotify, w, func(platform.Event) bool { return true }, func(platform.Event) { order = append(order, 3) })
	m.subscribe(platform.KindEnterNotify, w, nil, func(platform.Event) { order = append(order, 4) })

	m.Dispatch(platform.LeaveNotify{Window: w})
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("ran %v, want [1 3]", order)
	}

	m.subs.removeWindow(w)
	order = nil
	m.Dispatch(platform.LeaveNotify{Window: w})
	if len(order) != 0 {
		t.Errorf("removed subscriptions ran: %v", order)
	}
}

func TestDispatch_PanicDoesNotStopLoop(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	w := platform.WindowID(0x777)
	m.subscribe(platform.KindLeaveNotify, w, nil, func(platform.Event) { panic("boom") })
	a := d.AddWindow(0, "a", false)
	d.Queue(platform.LeaveNotify{Window: w}, platform.MapRequest{Window: a, Parent: rootWindow})

	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Client(a); !ok {
		t.Error("events after a panic should still be handled")
	}
}

func TestUnmanage_DropsTitleBarSubscriptions(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	a := mapNew(t, m, d, "a")
	tb := a.TitleBar
	if m.subs.count(platform.KindButtonRelease, tb) != 1 || m.subs.count(platform.KindExpose, tb) != 1 {
		t.Fatal("title bar subscriptions missing")
	}
	m.Dispatch(platform.DestroyNotify{Window: a.Window})
	if m.subs.count(platform.KindButtonRelease, tb) != 0 || m.subs.count(platform.KindExpose, tb) != 0 {
		t.Error("title bar subscriptions should be dropped")
	}
}

func TestOnLayout_PublishesAfterChanges(t *testing.T) {
	d := newDisplay()
	cfg := config.Default()
	m, err := New(d.Provider(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	var snaps []model.Layout
	m.OnLayout(func(l model.Layout) { snaps = append(snaps, l) })
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("start should publish once, got %d", len(snaps))
	}

	a := d.AddWindow(0, "xterm", false)
	d.Queue(
		platform.LeaveNotify{Window: rootWindow},
		platform.MapRequest{Window: a, Parent: rootWindow},
	)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	last := snaps[1]
	if last.ClientCount() != 1 || last.Containers[0].Clients[0].Title != "xterm" || !last.Containers[0].Clients[0].Active {
		t.Errorf("snapshot = %+v", last)
	}
	if last.Focused != last.Containers[0].Window || !last.Containers[0].Focused {
		t.Error("snapshot should mark the focused container")
	}
}

func TestSnapshot_ActivationOrder(t *testing.T) {
	d := newDisplay()
	m := newManager(t, d)
	if err := m.SplitFrame(AxisHorizontal); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot()
	if snap.TS != 1700000000 || len(snap.Containers) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Containers[0].Bounds != [4]int{0, 302, 800, 300} {
		t.Errorf("head bounds = %v", snap.Containers[0].Bounds)
	}
	if snap.Containers[1].Focused {
		t.Error("only the head should be marked focused")
	}
}
