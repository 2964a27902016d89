package wm

import (
	"fmt"

	"github.com/mj1618/ifwm/internal/platform"
)

// Title properties that trigger a title refresh.
var titleAtoms = map[string]bool{
	"WM_NAME":              true,
	"_NET_WM_NAME":         true,
	"_NET_WM_VISIBLE_NAME": true,
}

// Dispatch handles one event: first by type, then through the dynamic
// subscriptions for its kind and window. Panics are logged and swallowed.
func (m *Manager) Dispatch(ev platform.Event) {
	if ev == nil {
		return
	}
	m.guard(ev, "handler", func() { m.handle(ev) })
	m.guard(ev, "subscription", func() { m.subs.dispatch(ev) })
}

func (m *Manager) guard(ev platform.Event, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Str("event", ev.Kind().String()).Stringer("window", ev.Target()).
				Str("stage", stage).Str("panic", fmt.Sprint(r)).Msg("event handler panicked")
		}
	}()
	fn()
}

func (m *Manager) handle(ev platform.Event) {
	switch e := ev.(type) {
	case platform.ConfigureRequest:
		m.onConfigureRequest(e)
	case platform.MapRequest:
		m.onMapRequest(e)
	case platform.UnmapNotify:
		m.onUnmapNotify(e)
	case platform.DestroyNotify:
		m.onDestroyNotify(e)
	case platform.KeyPress:
		m.onKeyPress(e)
	case platform.EnterNotify:
		m.onEnterNotify(e)
	case platform.Expose:
		m.onExpose(e)
	case platform.PropertyNotify:
		m.onPropertyNotify(e)
	case platform.ErrorEvent:
		m.onError(e)
	case platform.MapNotify, platform.KeyRelease, platform.ButtonPress, platform.ButtonRelease,
		platform.LeaveNotify, platform.ReparentNotify, platform.CreateNotify:
		// Nothing to do statically; title bars subscribe to button release.
	case platform.UnknownEvent:
		m.log.Debug().Int("code", e.Code).Str("name", e.Name).Msg("ignoring unknown event")
	default:
		m.log.Debug().Str("type", fmt.Sprintf("%T", ev)).Msg("ignoring unhandled event")
	}
}

// onConfigureRequest grants the requested geometry with the border removed.
func (m *Manager) onConfigureRequest(e platform.ConfigureRequest) {
	changes := e.Changes
	changes.Mask |= platform.ConfigBorderWidth
	changes.BorderWidth = 0
	err := m.conn.ConfigureWindow(e.Window, changes)
	m.recoverStale(e.Window, err)
}

func (m *Manager) onMapRequest(e platform.MapRequest) {
	if cl, ok := m.clients[e.Window]; ok {
		m.log.Debug().Stringer("window", e.Window).Msg("map request for managed window, re-managing")
		m.unmanage(cl)
	}
	c := m.focusedOn(m.screenOf(e.Parent))
	if c == nil {
		m.log.Warn().Stringer("window", e.Window).Msg("no container for new window")
		return
	}
	if err := m.manage(c, e.Window, false); err != nil {
		m.log.Warn().Err(err).Stringer("window", e.Window).Msg("failed to manage window")
	}
}

func (m *Manager) onUnmapNotify(e platform.UnmapNotify) {
	cl, ok := m.clients[e.Window]
	if !ok {
		return
	}
	if cl.pendingUnmaps > 0 {
		cl.pendingUnmaps--
		return
	}
	cl.mapped = false
	m.log.Debug().Stringer("window", e.Window).Msg("client withdrew")
	c := cl.container
	m.unmanage(cl)
	if c != nil {
		// Hand the window back to the root so a later map is redirected to us.
		if root := m.rootOf(c.Screen); root != platform.None {
			if err := m.conn.ReparentWindow(e.Window, root, c.X, c.Y); err != nil {
				m.log.Debug().Err(err).Stringer("window", e.Window).Msg("release withdrawn window")
			}
		}
	}
}

func (m *Manager) onDestroyNotify(e platform.DestroyNotify) {
	if cl, ok := m.clients[e.Window]; ok {
		m.unmanage(cl)
	}
}

func (m *Manager) onKeyPress(e platform.KeyPress) {
	if m.keys == nil {
		return
	}
	_, onContainer := m.containers[e.Window]
	action, ok := m.keys.Resolve(onContainer, e.Code, e.State)
	if !ok {
		m.log.Debug().Uint8("code", uint8(e.Code)).Uint16("state", e.State).Msg("unbound key")
		return
	}
	action()
}

func (m *Manager) onEnterNotify(e platform.EnterNotify) {
	if c, ok := m.containers[e.Window]; ok {
		m.FocusContainer(c)
		return
	}
	if cl, ok := m.clients[e.Window]; ok && cl.container != nil {
		m.FocusContainer(cl.container)
	}
}

func (m *Manager) onExpose(e platform.Expose) {
	if _, ok := m.containers[e.Window]; !ok {
		return
	}
	if err := m.painter.PaintFrame(e.Window, e.Area); err != nil && !platform.IsStale(err) {
		m.log.Debug().Err(err).Stringer("container", e.Window).Msg("paint frame")
	}
}

func (m *Manager) onPropertyNotify(e platform.PropertyNotify) {
	cl, ok := m.clients[e.Window]
	if !ok {
		return
	}
	if !titleAtoms[e.Atom] {
		m.log.Debug().Stringer("window", e.Window).Str("atom", e.Atom).Msg("ignoring property change")
		return
	}
	m.refreshTitle(cl)
}

func (m *Manager) onError(e platform.ErrorEvent) {
	if e.Stale && e.Window != platform.None {
		m.log.Debug().Err(e.Err).Stringer("window", e.Window).Msg("asynchronous stale window error")
		m.evict(e.Window)
		return
	}
	m.log.Warn().Err(e.Err).Msg("protocol error")
}
