package wm

import (
	"fmt"

	"github.com/mj1618/ifwm/internal/platform"
)

// Client is a managed application window shown as one tab of a container.
type Client struct {
	Window   platform.WindowID
	TitleBar platform.WindowID
	Title    string

	container  *Container
	mapped     bool
	titleWidth int

	// pendingUnmaps counts unmap notifications caused by the manager's own
	// unmap and reparent requests.
	pendingUnmaps int
}

// Container returns the container holding c, or nil once removed.
func (c *Client) Container() *Container {
	return c.container
}

// manage registers w as a client and adds it to c. mapped says whether the
// window is already visible.
func (m *Manager) manage(c *Container, w platform.WindowID, mapped bool) error {
	if _, ok := m.clients[w]; ok {
		return fmt.Errorf("manage %s: already managed", w)
	}
	title, err := m.conn.WindowTitle(w)
	if err != nil {
		if platform.IsStale(err) {
			return fmt.Errorf("manage %s: %w", w, err)
		}
		m.log.Debug().Err(err).Stringer("window", w).Msg("no title")
	}
	cl := &Client{Window: w, Title: title, mapped: mapped}
	m.clients[w] = cl
	if err := m.AddClient(c, cl); err != nil {
		m.unmanage(cl)
		return err
	}
	m.log.Info().Stringer("window", w).Stringer("container", c.Window).Str("title", title).Msg("managing window")
	return nil
}

// unmanage forgets cl everywhere. It is safe to call more than once.
func (m *Manager) unmanage(cl *Client) {
	if m.clients[cl.Window] != cl {
		return
	}
	delete(m.clients, cl.Window)
	if c := cl.container; c != nil {
		m.RemoveClient(c, cl)
	}
	if tb := cl.TitleBar; tb != platform.None {
		delete(m.titleBars, tb)
		m.subs.removeWindow(tb)
		if err := m.conn.DestroyWindow(tb); err != nil && !platform.IsStale(err) {
			m.log.Debug().Err(err).Stringer("titlebar", tb).Msg("destroy title bar")
		}
		cl.TitleBar = platform.None
	}
	m.subs.removeWindow(cl.Window)
	m.changed()
	m.log.Info().Stringer("window", cl.Window).Msg("window unmanaged")
}

// ensureTitleBar gives cl its tab window inside c.
func (m *Manager) ensureTitleBar(c *Container, cl *Client) error {
	if cl.TitleBar != platform.None {
		return nil
	}
	tb, err := m.conn.CreateWindow(platform.WindowOptions{
		Screen: c.Screen,
		Parent: c.Window,
		Rect:   platform.Rect{Width: max(c.Width, 1), Height: m.TitleHeight()},
		Kind:   platform.WindowTitleBar,
	})
	if err != nil {
		return fmt.Errorf("create title bar: %w", err)
	}
	cl.TitleBar = tb
	m.titleBars[tb] = cl

	m.subscribe(platform.KindExpose, tb, func(ev platform.Event) bool {
		e, ok := ev.(platform.Expose)
		return ok && e.Count == 0
	}, func(platform.Event) {
		m.paintTitle(cl)
	})
	m.subscribe(platform.KindButtonRelease, tb, func(ev platform.Event) bool {
		e, ok := ev.(platform.ButtonRelease)
		return ok && e.Button == m.titleButton
	}, func(platform.Event) {
		if owner := cl.container; owner != nil {
			m.SetCurrentClient(owner, cl)
			m.FocusContainer(owner)
		}
	})
	return nil
}

// paintTitle draws cl's tab, active when it is its container's current client.
func (m *Manager) paintTitle(cl *Client) {
	c := cl.container
	if c == nil || cl.TitleBar == platform.None {
		return
	}
	width := cl.titleWidth
	if width <= 0 {
		width = max(c.Width/max(len(c.clients), 1), 1)
	}
	title := m.metrics.Fit(cl.Title, width)
	err := m.painter.PaintTitleBar(cl.TitleBar, width, m.TitleHeight(), title, c.current == cl)
	if err != nil && !platform.IsStale(err) {
		m.log.Debug().Err(err).Stringer("titlebar", cl.TitleBar).Msg("paint title bar")
	}
}

// refreshTitle re-reads cl's title property and repaints its tab.
func (m *Manager) refreshTitle(cl *Client) {
	title, err := m.conn.WindowTitle(cl.Window)
	if err != nil {
		m.recoverStale(cl.Window, err)
		return
	}
	if title == cl.Title {
		return
	}
	cl.Title = title
	m.paintTitle(cl)
	m.changed()
}
