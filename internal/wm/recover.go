package wm

import "github.com/mj1618/ifwm/internal/platform"

// recoverStale evicts w when err says the window is gone and reports
// whether it did. Other errors are logged and left to the caller.
func (m *Manager) recoverStale(w platform.WindowID, err error) bool {
	if err == nil {
		return false
	}
	if !platform.IsStale(err) {
		m.log.Warn().Err(err).Stringer("window", w).Msg("request failed")
		return false
	}
	m.evict(w)
	return true
}

// failClient evicts cl if err is a stale-window error and returns err.
func (m *Manager) failClient(cl *Client, err error) error {
	if platform.IsStale(err) {
		m.evict(cl.Window)
	}
	return err
}

// evict drops every record of a window the server no longer knows.
func (m *Manager) evict(w platform.WindowID) {
	if cl, ok := m.clients[w]; ok {
		m.log.Info().Stringer("window", w).Msg("evicting stale client")
		m.unmanage(cl)
		return
	}
	if cl, ok := m.titleBars[w]; ok {
		delete(m.titleBars, w)
		m.subs.removeWindow(w)
		cl.TitleBar = platform.None
		m.log.Warn().Stringer("titlebar", w).Msg("title bar vanished")
		return
	}
	if _, ok := m.containers[w]; ok {
		m.log.Error().Stringer("container", w).Msg("container frame vanished")
		return
	}
	m.log.Debug().Stringer("window", w).Msg("stale window not managed")
}
