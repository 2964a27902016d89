package wm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/ifwm/internal/config"
)

// SplitFrame splits the focused container.
func (m *Manager) SplitFrame(axis Axis) error {
	c := m.stack.head()
	if c == nil {
		return errors.New("split: no focused container")
	}
	if _, err := m.Split(c, axis); err != nil {
		return err
	}
	return nil
}

// Spawn starts command detached from the manager.
func (m *Manager) Spawn(command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return errors.New("spawn: empty command")
	}
	if m.spawner == nil {
		return errors.New("spawn: no launcher configured")
	}
	if err := m.spawner.Spawn(command); err != nil {
		return fmt.Errorf("spawn %q: %w", command, err)
	}
	m.log.Info().Str("command", command).Msg("spawned")
	return nil
}

// NextClient activates the tab after the current one in the focused
// container, wrapping around.
func (m *Manager) NextClient() error {
	c := m.stack.head()
	if c == nil || len(c.clients) == 0 {
		return nil
	}
	i := c.indexOf(c.current)
	next := c.clients[(i+1)%len(c.clients)]
	if next == c.current {
		return nil
	}
	m.SetCurrentClient(c, next)
	return nil
}

// actionFor builds the action a configured binding names. Failures inside
// the action are logged, never returned to the dispatcher.
func (m *Manager) actionFor(b config.Binding) (Action, error) {
	var run func() error
	switch b.Action {
	case config.ActionSplitHorizontal:
		run = func() error { return m.SplitFrame(AxisHorizontal) }
	case config.ActionSplitVertical:
		run = func() error { return m.SplitFrame(AxisVertical) }
	case config.ActionNextClient:
		run = m.NextClient
	case config.ActionSpawn:
		command := m.cfg.SpawnCommand(b)
		if strings.TrimSpace(command) == "" {
			return nil, fmt.Errorf("spawn binding %q has no command", b.Keys)
		}
		run = func() error { return m.Spawn(command) }
	default:
		return nil, fmt.Errorf("unknown action %q", b.Action)
	}
	name, keys := b.Action, b.Keys
	return func() {
		if err := run(); err != nil {
			m.log.Warn().Err(err).Str("action", name).Str("keys", keys).Msg("action failed")
		}
	}, nil
}
