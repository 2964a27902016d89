package wm

import (
	"fmt"

	"github.com/mj1618/ifwm/internal/platform"
)

// Axis selects the direction of a split. Exactly one bit must be set.
type Axis uint8

const (
	// AxisHorizontal stacks the two halves vertically.
	AxisHorizontal Axis = 1 << iota
	// AxisVertical places the two halves side by side.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("axis(%d)", uint8(a))
	}
}

// Container is a rectangular frame holding a tabbed list of clients.
type Container struct {
	Window platform.WindowID
	Parent platform.WindowID
	Screen int
	X, Y   int
	Width  int
	Height int
	Border int

	clients []*Client
	current *Client
}

// Clients returns the container's clients in tab order.
func (c *Container) Clients() []*Client {
	return append([]*Client(nil), c.clients...)
}

// Current returns the active client, or nil.
func (c *Container) Current() *Client {
	return c.current
}

// Rect returns the container's geometry relative to its parent.
func (c *Container) Rect() platform.Rect {
	return platform.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

func (c *Container) indexOf(cl *Client) int {
	for i, x := range c.clients {
		if x == cl {
			return i
		}
	}
	return -1
}

// TitleHeight is the height of every container's title strip.
func (m *Manager) TitleHeight() int {
	return m.metrics.Height()
}

// clientArea is where client windows sit inside a frame.
func (m *Manager) clientArea(c *Container) platform.Rect {
	th := m.TitleHeight()
	return platform.Rect{
		X:      c.Border,
		Y:      th,
		Width:  max(c.Width-2*c.Border, 1),
		Height: max(c.Height-2*c.Border-th, 1),
	}
}

// CreateRoot makes the container spanning a whole screen.
func (m *Manager) CreateRoot(s platform.Screen) (*Container, error) {
	return m.createContainer(s.Index, s.Root, s.Geometry)
}

func (m *Manager) createContainer(screen int, parent platform.WindowID, r platform.Rect) (*Container, error) {
	border := m.cfg.BorderWidth
	w, err := m.conn.CreateWindow(platform.WindowOptions{
		Screen: screen,
		Parent: parent,
		Rect:   r,
		Border: border,
		Kind:   platform.WindowFrame,
	})
	if err != nil {
		return nil, fmt.Errorf("create frame: %w", err)
	}
	if err := m.conn.MapWindow(w); err != nil {
		if derr := m.conn.DestroyWindow(w); derr != nil {
			m.log.Debug().Err(derr).Stringer("frame", w).Msg("destroy unmapped frame")
		}
		return nil, fmt.Errorf("map frame: %w", err)
	}
	c := &Container{
		Window: w,
		Parent: parent,
		Screen: screen,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Border: border,
	}
	m.containers[w] = c
	m.stack.push(c)
	m.changed()
	m.log.Debug().Stringer("container", w).Int("screen", screen).
		Int("x", r.X).Int("y", r.Y).Int("width", r.Width).Int("height", r.Height).
		Msg("container created")
	return c, nil
}

// Split halves c along axis and places a new empty container in the freed
// half. The new container becomes the head of the activation stack without
// taking input focus.
func (m *Manager) Split(c *Container, axis Axis) (*Container, error) {
	if axis != AxisHorizontal && axis != AxisVertical {
		m.log.Warn().Stringer("axis", axis).Msg("refusing split")
		return nil, fmt.Errorf("split %s: %w", axis, ErrInvalidSplit)
	}

	r := c.Rect()
	width, height := r.Width, r.Height
	switch axis {
	case AxisHorizontal:
		height = r.Height / 2
		r.Y += height + 2*c.Border
	case AxisVertical:
		width = r.Width / 2
		r.X += width + 2*c.Border
	}
	r.Width, r.Height = width, height

	if width < m.cfg.MinSplit || height < m.cfg.MinSplit {
		m.log.Info().Stringer("container", c.Window).Stringer("axis", axis).
			Int("width", width).Int("height", height).Msg("container too small to split")
		return nil, fmt.Errorf("split %s %dx%d: %w", axis, c.Width, c.Height, ErrSplitTooSmall)
	}

	oldWidth, oldHeight := c.Width, c.Height
	if err := m.Resize(c, width, height); err != nil {
		return nil, err
	}
	nc, err := m.createContainer(c.Screen, c.Parent, r)
	if err != nil {
		if rerr := m.Resize(c, oldWidth, oldHeight); rerr != nil {
			m.log.Warn().Err(rerr).Stringer("container", c.Window).Msg("restore after failed split")
		}
		return nil, err
	}
	return nc, nil
}

// Resize sets c's size and refits its clients and title bars. c keeps its
// size when the frame cannot be configured.
func (m *Manager) Resize(c *Container, width, height int) error {
	if err := m.conn.ConfigureWindow(c.Window, platform.Resize(width, height)); err != nil {
		return fmt.Errorf("resize frame %s: %w", c.Window, err)
	}
	c.Width, c.Height = width, height
	area := m.clientArea(c)
	for _, cl := range c.Clients() {
		err := m.conn.ConfigureWindow(cl.Window, platform.Resize(area.Width, area.Height))
		m.recoverStale(cl.Window, err)
	}
	m.layoutTitleBars(c)
	m.changed()
	return nil
}

// AddClient places cl in c as the active tab. Adding a client that is
// already in c moves it to the end of the tab list; a client held by another
// container is removed from it first.
func (m *Manager) AddClient(c *Container, cl *Client) error {
	area := m.clientArea(c)
	if err := m.conn.ReparentWindow(cl.Window, c.Window, area.X, area.Y); err != nil {
		return m.failClient(cl, fmt.Errorf("reparent %s: %w", cl.Window, err))
	}
	if cl.mapped {
		cl.pendingUnmaps++
	}
	err := m.conn.ConfigureWindow(cl.Window, platform.WindowChanges{
		Mask:   platform.ConfigWidth | platform.ConfigHeight | platform.ConfigBorderWidth,
		Width:  area.Width,
		Height: area.Height,
	})
	if err != nil {
		return m.failClient(cl, fmt.Errorf("configure %s: %w", cl.Window, err))
	}
	if err := m.conn.ManageWindow(cl.Window); err != nil {
		return m.failClient(cl, fmt.Errorf("manage %s: %w", cl.Window, err))
	}

	if old := cl.container; old != nil && old != c {
		m.RemoveClient(old, cl)
	}
	if i := c.indexOf(cl); i >= 0 {
		c.clients = append(c.clients[:i], c.clients[i+1:]...)
	}
	c.clients = append(c.clients, cl)
	cl.container = c
	if c.current == cl {
		c.current = nil
	}
	if err := m.ensureTitleBar(c, cl); err != nil {
		m.log.Warn().Err(err).Stringer("window", cl.Window).Msg("title bar unavailable")
	}
	m.SetCurrentClient(c, cl)
	m.layoutTitleBars(c)
	m.changed()
	return nil
}

// RemoveClient drops cl from c. When clients remain, the first becomes
// active. Removing a client c does not hold does nothing.
func (m *Manager) RemoveClient(c *Container, cl *Client) {
	i := c.indexOf(cl)
	if i < 0 {
		return
	}
	c.clients = append(c.clients[:i], c.clients[i+1:]...)
	if cl.container == c {
		cl.container = nil
	}
	if c.current == cl {
		c.current = nil
	}
	if len(c.clients) > 0 {
		m.SetCurrentClient(c, c.clients[0])
	}
	m.layoutTitleBars(c)
	m.changed()
}

// layoutTitleBars spreads the title bars evenly across the top of c.
func (m *Manager) layoutTitleBars(c *Container) {
	n := len(c.clients)
	if n == 0 {
		return
	}
	width := max(c.Width/n, 1)
	height := m.TitleHeight()
	for i, cl := range c.Clients() {
		if cl.TitleBar == platform.None {
			continue
		}
		tb := cl.TitleBar
		if err := m.conn.ReparentWindow(tb, c.Window, i*width, 0); err != nil {
			m.log.Debug().Err(err).Stringer("titlebar", tb).Msg("title bar reparent failed")
			continue
		}
		if err := m.conn.ConfigureWindow(tb, platform.Resize(width, height)); err != nil {
			m.log.Debug().Err(err).Stringer("titlebar", tb).Msg("title bar resize failed")
			continue
		}
		if err := m.conn.MapWindow(tb); err != nil {
			m.log.Debug().Err(err).Stringer("titlebar", tb).Msg("title bar map failed")
			continue
		}
		cl.titleWidth = width
		m.paintTitle(cl)
	}
}

// DestroyContainer tears down c: its clients go back to the screen root,
// then the frame is removed from every registry and destroyed. No event
// handler calls this; containers otherwise live for the whole session.
func (m *Manager) DestroyContainer(c *Container) error {
	if _, ok := m.containers[c.Window]; !ok {
		return nil
	}
	root := m.rootOf(c.Screen)
	for _, cl := range c.Clients() {
		m.unmanage(cl)
		if root == platform.None {
			continue
		}
		if err := m.conn.ReparentWindow(cl.Window, root, c.X, c.Y); err != nil {
			continue
		}
		if err := m.conn.MapWindow(cl.Window); err != nil {
			m.log.Debug().Err(err).Stringer("window", cl.Window).Msg("released client map failed")
		}
	}
	delete(m.containers, c.Window)
	m.stack.remove(c)
	m.subs.removeWindow(c.Window)
	m.changed()
	if err := m.conn.DestroyWindow(c.Window); err != nil && !platform.IsStale(err) {
		return fmt.Errorf("destroy frame %s: %w", c.Window, err)
	}
	m.log.Debug().Stringer("container", c.Window).Msg("container destroyed")
	return nil
}

func (m *Manager) rootOf(screen int) platform.WindowID {
	for _, s := range m.screens {
		if s.Index == screen {
			return s.Root
		}
	}
	return platform.None
}
