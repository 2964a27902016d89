// Package testutil provides an in-memory display for exercising the window
// manager without an X server.
package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/ifwm/internal/platform"
)

// Base handles for windows created by the fake. Roots are numbered from 1.
const (
	firstOwnWindow    platform.WindowID = 0x400001
	firstClientWindow platform.WindowID = 0x600001
)

// ErrGrab is a convenience value for Display.GrabErr.
var ErrGrab = errors.New("key already grabbed")

// Window is the fake server's record of one window.
type Window struct {
	ID               platform.WindowID
	Parent           platform.WindowID
	Screen           int
	Rect             platform.Rect
	Border           int
	Kind             platform.WindowKind
	Own              bool
	Mapped           bool
	Destroyed        bool
	Managed          bool
	OverrideRedirect bool
	Title            string
}

// Request is one call the manager made against the fake.
type Request struct {
	Op      string
	Window  platform.WindowID
	Parent  platform.WindowID
	Changes platform.WindowChanges
}

func (r Request) String() string {
	if r.Parent != platform.None {
		return fmt.Sprintf("%s(%s -> %s)", r.Op, r.Window, r.Parent)
	}
	return fmt.Sprintf("%s(%s)", r.Op, r.Window)
}

// Grab is a recorded key grab.
type Grab struct {
	Root      platform.WindowID
	Code      platform.Keycode
	Modifiers uint16
}

// TitlePaint is a recorded title-bar repaint.
type TitlePaint struct {
	Window platform.WindowID
	Width  int
	Height int
	Title  string
	Active bool
}

// Display implements platform.Conn, Keyboard, Painter and Spawner over an
// in-memory window table. It is not safe for concurrent use.
type Display struct {
	screens []platform.Screen
	windows map[platform.WindowID]*Window
	order   []platform.WindowID
	nextOwn platform.WindowID
	nextApp platform.WindowID
	events  []platform.Event

	// NotifyUnmaps queues an UnmapNotify whenever a mapped window is
	// unmapped or reparented, as a server does for the manager's own
	// requests.
	NotifyUnmaps bool

	Requests    []Request
	Focused     platform.WindowID
	Grabs       []Grab
	GrabErr     error
	TitlePaints []TitlePaint
	FramePaints []platform.WindowID
	Spawned     []string
	SpawnErr    error
	Closed      bool
}

// NewDisplay returns a display with one screen per geometry.
func NewDisplay(geometries ...platform.Rect) *Display {
	d := &Display{
		windows: make(map[platform.WindowID]*Window),
		nextOwn: firstOwnWindow,
		nextApp: firstClientWindow,
	}
	for i, g := range geometries {
		root := platform.WindowID(i + 1)
		d.screens = append(d.screens, platform.Screen{Index: i, Root: root, Geometry: g})
		d.windows[root] = &Window{ID: root, Screen: i, Rect: g, Mapped: true}
	}
	return d
}

// Provider bundles the display as every backend interface.
func (d *Display) Provider() *platform.Provider {
	return &platform.Provider{Conn: d, Keyboard: d, Painter: d, Spawner: d}
}

// AddWindow creates an application window as a child of a screen root.
func (d *Display) AddWindow(screen int, title string, mapped bool) platform.WindowID {
	id := d.nextApp
	d.nextApp++
	d.windows[id] = &Window{
		ID:     id,
		Parent: d.screens[screen].Root,
		Screen: screen,
		Rect:   platform.Rect{Width: 200, Height: 100},
		Mapped: mapped,
		Title:  title,
	}
	d.order = append(d.order, id)
	return id
}

// AddOverrideRedirect creates a mapped popup-style window.
func (d *Display) AddOverrideRedirect(screen int) platform.WindowID {
	id := d.AddWindow(screen, "popup", true)
	d.windows[id].OverrideRedirect = true
	return id
}

// Window returns the record for id, or nil.
func (d *Display) Window(id platform.WindowID) *Window {
	return d.windows[id]
}

// Children returns the live children of parent in creation order.
func (d *Display) Children(parent platform.WindowID) []*Window {
	var out []*Window
	for _, id := range d.order {
		w := d.windows[id]
		if w.Parent == parent && !w.Destroyed {
			out = append(out, w)
		}
	}
	return out
}

// Queue appends events for NextEvent.
func (d *Display) Queue(events ...platform.Event) {
	d.events = append(d.events, events...)
}

// Pending returns the number of queued events.
func (d *Display) Pending() int {
	return len(d.events)
}

// Vanish destroys a window behind the manager's back: no notification is
// queued and later requests against it fail as stale.
func (d *Display) Vanish(id platform.WindowID) {
	if w, ok := d.windows[id]; ok {
		w.Destroyed = true
		w.Mapped = false
	}
}

// SetTitle changes a window's title property.
func (d *Display) SetTitle(id platform.WindowID, title string) {
	if w, ok := d.windows[id]; ok {
		w.Title = title
	}
}

// ResetRequests clears recorded calls.
func (d *Display) ResetRequests() {
	d.Requests = nil
	d.TitlePaints = nil
	d.FramePaints = nil
}

// Count returns how many times op was requested against window.
func (d *Display) Count(op string, window platform.WindowID) int {
	n := 0
	for _, r := range d.Requests {
		if r.Op == op && r.Window == window {
			n++
		}
	}
	return n
}

// Ops returns the recorded requests as "op(window)" strings.
func (d *Display) Ops() string {
	parts := make([]string, len(d.Requests))
	for i, r := range d.Requests {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// LastTitlePaint returns the most recent paint of a title bar.
func (d *Display) LastTitlePaint(id platform.WindowID) (TitlePaint, bool) {
	for i := len(d.TitlePaints) - 1; i >= 0; i-- {
		if d.TitlePaints[i].Window == id {
			return d.TitlePaints[i], true
		}
	}
	return TitlePaint{}, false
}

func (d *Display) record(r Request) {
	d.Requests = append(d.Requests, r)
}

func (d *Display) live(id platform.WindowID, op string) (*Window, error) {
	w, ok := d.windows[id]
	if !ok || w.Destroyed {
		return nil, platform.StaleWindowError(id, op)
	}
	return w, nil
}

// platform.Conn

func (d *Display) Screens() []platform.Screen {
	return append([]platform.Screen(nil), d.screens...)
}

func (d *Display) NextEvent() (platform.Event, error) {
	if d.Closed || len(d.events) == 0 {
		return nil, platform.ErrClosed
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev, nil
}

func (d *Display) TopLevelWindows(root platform.WindowID) ([]platform.WindowInfo, error) {
	if _, err := d.live(root, "query tree"); err != nil {
		return nil, err
	}
	var out []platform.WindowInfo
	for _, w := range d.Children(root) {
		out = append(out, platform.WindowInfo{
			ID:               w.ID,
			Viewable:         w.Mapped,
			OverrideRedirect: w.OverrideRedirect,
		})
	}
	return out, nil
}

func (d *Display) CreateWindow(opts platform.WindowOptions) (platform.WindowID, error) {
	if _, err := d.live(opts.Parent, "create window"); err != nil {
		return platform.None, err
	}
	id := d.nextOwn
	d.nextOwn++
	d.windows[id] = &Window{
		ID:     id,
		Parent: opts.Parent,
		Screen: opts.Screen,
		Rect:   opts.Rect,
		Border: opts.Border,
		Kind:   opts.Kind,
		Own:    true,
	}
	d.order = append(d.order, id)
	d.record(Request{Op: "create", Window: id, Parent: opts.Parent})
	return id, nil
}

func (d *Display) DestroyWindow(id platform.WindowID) error {
	d.record(Request{Op: "destroy", Window: id})
	w, err := d.live(id, "destroy window")
	if err != nil {
		return err
	}
	w.Destroyed = true
	w.Mapped = false
	return nil
}

func (d *Display) ReparentWindow(id, parent platform.WindowID, x, y int) error {
	d.record(Request{Op: "reparent", Window: id, Parent: parent})
	w, err := d.live(id, "reparent window")
	if err != nil {
		return err
	}
	if _, err := d.live(parent, "reparent window"); err != nil {
		return err
	}
	if w.Mapped && d.NotifyUnmaps {
		d.Queue(platform.UnmapNotify{Window: id, Event: w.Parent})
	}
	w.Parent = parent
	w.Rect.X, w.Rect.Y = x, y
	return nil
}

func (d *Display) ConfigureWindow(id platform.WindowID, ch platform.WindowChanges) error {
	d.record(Request{Op: "configure", Window: id, Changes: ch})
	w, err := d.live(id, "configure window")
	if err != nil {
		return err
	}
	if ch.Mask&platform.ConfigX != 0 {
		w.Rect.X = ch.X
	}
	if ch.Mask&platform.ConfigY != 0 {
		w.Rect.Y = ch.Y
	}
	if ch.Mask&platform.ConfigWidth != 0 {
		w.Rect.Width = ch.Width
	}
	if ch.Mask&platform.ConfigHeight != 0 {
		w.Rect.Height = ch.Height
	}
	if ch.Mask&platform.ConfigBorderWidth != 0 {
		w.Border = ch.BorderWidth
	}
	return nil
}

func (d *Display) MapWindow(id platform.WindowID) error {
	d.record(Request{Op: "map", Window: id})
	w, err := d.live(id, "map window")
	if err != nil {
		return err
	}
	w.Mapped = true
	return nil
}

func (d *Display) UnmapWindow(id platform.WindowID) error {
	d.record(Request{Op: "unmap", Window: id})
	w, err := d.live(id, "unmap window")
	if err != nil {
		return err
	}
	if w.Mapped && d.NotifyUnmaps {
		d.Queue(platform.UnmapNotify{Window: id, Event: w.Parent})
	}
	w.Mapped = false
	return nil
}

func (d *Display) ManageWindow(id platform.WindowID) error {
	d.record(Request{Op: "manage", Window: id})
	w, err := d.live(id, "manage window")
	if err != nil {
		return err
	}
	w.Managed = true
	return nil
}

func (d *Display) SetInputFocus(id platform.WindowID) error {
	d.record(Request{Op: "focus", Window: id})
	if _, err := d.live(id, "set input focus"); err != nil {
		return err
	}
	d.Focused = id
	return nil
}

func (d *Display) GrabKey(root platform.WindowID, code platform.Keycode, mods uint16) error {
	d.record(Request{Op: "grab", Window: root})
	if d.GrabErr != nil {
		return d.GrabErr
	}
	d.Grabs = append(d.Grabs, Grab{Root: root, Code: code, Modifiers: mods})
	return nil
}

func (d *Display) WindowTitle(id platform.WindowID) (string, error) {
	w, err := d.live(id, "get title")
	if err != nil {
		return "", err
	}
	return w.Title, nil
}

func (d *Display) Close() error {
	d.Closed = true
	return nil
}

// platform.Painter

func (d *Display) PaintFrame(id platform.WindowID, _ platform.Rect) error {
	if _, err := d.live(id, "paint frame"); err != nil {
		return err
	}
	d.FramePaints = append(d.FramePaints, id)
	return nil
}

func (d *Display) PaintTitleBar(id platform.WindowID, width, height int, title string, active bool) error {
	if _, err := d.live(id, "paint title"); err != nil {
		return err
	}
	d.TitlePaints = append(d.TitlePaints, TitlePaint{Window: id, Width: width, Height: height, Title: title, Active: active})
	return nil
}

// platform.Spawner

func (d *Display) Spawn(command string) error {
	if d.SpawnErr != nil {
		return d.SpawnErr
	}
	d.Spawned = append(d.Spawned, command)
	return nil
}
