package wm

import "github.com/mj1618/ifwm/internal/platform"

// FocusContainer makes c the head of the activation stack and gives input
// focus to its active client, or to the frame when it has none.
func (m *Manager) FocusContainer(c *Container) {
	if _, ok := m.containers[c.Window]; !ok {
		return
	}
	if m.stack.head() != c {
		m.stack.push(c)
		m.changed()
	}
	if cl := c.current; cl != nil {
		err := m.conn.SetInputFocus(cl.Window)
		if !m.recoverStale(cl.Window, err) {
			m.paintTitle(cl)
			return
		}
		// Eviction may have activated another client.
		if cl := c.current; cl != nil {
			if err := m.conn.SetInputFocus(cl.Window); !m.recoverStale(cl.Window, err) {
				m.paintTitle(cl)
				return
			}
		}
	}
	if err := m.conn.SetInputFocus(c.Window); err != nil {
		m.log.Warn().Err(err).Stringer("container", c.Window).Msg("focus frame")
	}
}

// SetCurrentClient makes cl the visible tab of c. The previous tab is
// unmapped and repainted inactive; cl is mapped, repainted and focused.
// A client that c does not hold is ignored.
func (m *Manager) SetCurrentClient(c *Container, cl *Client) {
	if c.current == cl || (cl != nil && c.indexOf(cl) < 0) {
		return
	}
	prev := c.current
	c.current = cl
	m.changed()

	if prev != nil && prev.container == c {
		err := m.conn.UnmapWindow(prev.Window)
		if !m.recoverStale(prev.Window, err) {
			if err == nil && prev.mapped {
				prev.pendingUnmaps++
			}
			prev.mapped = false
			m.paintTitle(prev)
		}
	}
	if cl == nil || c.current != cl {
		return
	}

	if err := m.conn.MapWindow(cl.Window); m.recoverStale(cl.Window, err) {
		return
	}
	cl.mapped = true
	m.paintTitle(cl)
	if err := m.conn.SetInputFocus(cl.Window); m.recoverStale(cl.Window, err) {
		return
	}
	m.log.Debug().Stringer("window", cl.Window).Stringer("container", c.Window).Msg("client activated")
}

// focusedOn returns the container that should receive new windows on a
// screen.
func (m *Manager) focusedOn(screen int) *Container {
	if c := m.stack.headOn(screen); c != nil {
		return c
	}
	return m.stack.head()
}

func (m *Manager) screenOf(root platform.WindowID) int {
	for _, s := range m.screens {
		if s.Root == root {
			return s.Index
		}
	}
	if c, ok := m.containers[root]; ok {
		return c.Screen
	}
	return 0
}
