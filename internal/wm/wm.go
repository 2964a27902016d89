// Package wm is the window manager core: containers, clients, focus,
// keybindings and event dispatch. It talks to the display only through the
// interfaces in internal/platform.
package wm

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/model"
	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/titlebar"
)

var (
	// ErrInvalidSplit is returned when a split axis is not exactly one of
	// AxisHorizontal and AxisVertical.
	ErrInvalidSplit = errors.New("invalid split axis")

	// ErrSplitTooSmall is returned when a split would produce a container
	// below the configured minimum size.
	ErrSplitTooSmall = errors.New("container too small to split")

	// ErrNoScreens is returned by Start when the display reports no screens.
	ErrNoScreens = errors.New("display has no screens")
)

// Manager owns every container and client and reacts to display events.
// All methods must be called from the goroutine running Run.
type Manager struct {
	conn    platform.Conn
	kb      platform.Keyboard
	painter platform.Painter
	spawner platform.Spawner
	cfg     config.Config
	log     zerolog.Logger
	metrics titlebar.Metrics

	screens     []platform.Screen
	containers  map[platform.WindowID]*Container
	stack       activationStack
	clients     map[platform.WindowID]*Client
	titleBars   map[platform.WindowID]*Client
	keys        *Keymap
	subs        subscriptions
	titleButton platform.MouseButton

	version   uint64
	published uint64
	onLayout  func(model.Layout)
	now       func() time.Time
}

// New builds a manager over the provider's backends. cfg should already
// have passed config.Validate.
func New(p *platform.Provider, cfg config.Config, log zerolog.Logger) (*Manager, error) {
	if p == nil || p.Conn == nil || p.Keyboard == nil || p.Painter == nil {
		return nil, errors.New("wm: provider is missing a display backend")
	}
	button, err := platform.ParseMouseButton(cfg.TitleClick)
	if err != nil {
		return nil, fmt.Errorf("title click: %w", err)
	}
	m := &Manager{
		conn:        p.Conn,
		kb:          p.Keyboard,
		painter:     p.Painter,
		spawner:     p.Spawner,
		cfg:         cfg,
		log:         log,
		metrics:     titlebar.New(nil, cfg.Title.Padding),
		containers:  make(map[platform.WindowID]*Container),
		clients:     make(map[platform.WindowID]*Client),
		titleBars:   make(map[platform.WindowID]*Client),
		subs:        newSubscriptions(),
		titleButton: button,
		now:         time.Now,
	}
	return m, nil
}

// OnLayout registers fn to receive a snapshot whenever handling an event
// changed the layout.
func (m *Manager) OnLayout(fn func(model.Layout)) {
	m.onLayout = fn
}

// Keymap returns the manager's binding registry. It is nil before Start.
func (m *Manager) Keymap() *Keymap {
	return m.keys
}

// Start creates a root container per screen, adopts existing windows and
// registers the configured bindings.
func (m *Manager) Start() error {
	m.screens = m.conn.Screens()
	if len(m.screens) == 0 {
		return ErrNoScreens
	}

	roots := make([]*Container, len(m.screens))
	// Created in reverse so screen 0 ends up at the head of the stack.
	for i := len(m.screens) - 1; i >= 0; i-- {
		c, err := m.CreateRoot(m.screens[i])
		if err != nil {
			return fmt.Errorf("create root container for screen %d: %w", i, err)
		}
		roots[i] = c
	}

	for i, s := range m.screens {
		if err := m.adoptExisting(s, roots[i]); err != nil {
			return err
		}
	}

	rootWindows := make([]platform.WindowID, len(m.screens))
	for i, s := range m.screens {
		rootWindows[i] = s.Root
	}
	keys, err := NewKeymap(m.kb, m.conn, rootWindows, m.log)
	if err != nil {
		return fmt.Errorf("load keyboard mapping: %w", err)
	}
	m.keys = keys
	m.registerBindings()

	m.publish()
	return nil
}

func (m *Manager) adoptExisting(s platform.Screen, root *Container) error {
	windows, err := m.conn.TopLevelWindows(s.Root)
	if err != nil {
		return fmt.Errorf("scan screen %d: %w", s.Index, err)
	}
	for _, w := range windows {
		if !w.Viewable || w.OverrideRedirect || m.isOwnWindow(w.ID) {
			continue
		}
		if err := m.manage(root, w.ID, true); err != nil {
			m.log.Warn().Err(err).Stringer("window", w.ID).Msg("failed to adopt existing window")
		}
	}
	return nil
}

func (m *Manager) registerBindings() {
	for _, b := range m.cfg.Bindings {
		action, err := m.actionFor(b)
		if err != nil {
			m.log.Warn().Err(err).Str("keys", b.Keys).Msg("skipping binding")
			continue
		}
		ctx, err := ParseContext(b.BindingContext())
		if err != nil {
			m.log.Warn().Err(err).Str("keys", b.Keys).Msg("skipping binding")
			continue
		}
		if err := m.keys.Register(b.Keys, ctx, b.Action, action); err != nil {
			m.log.Warn().Err(err).Str("keys", b.Keys).Msg("skipping binding")
		}
	}
}

// Run dispatches events until the display connection closes.
func (m *Manager) Run() error {
	for {
		ev, err := m.conn.NextEvent()
		if err != nil {
			if errors.Is(err, platform.ErrClosed) {
				m.log.Info().Msg("display connection closed")
				return nil
			}
			m.log.Error().Err(err).Msg("reading event")
			continue
		}
		m.Dispatch(ev)
		m.publish()
	}
}

// Focused returns the container at the head of the activation stack.
func (m *Manager) Focused() *Container {
	return m.stack.head()
}

// Containers returns containers in activation order, most recent first.
func (m *Manager) Containers() []*Container {
	return m.stack.all()
}

// Container returns the container whose frame is w.
func (m *Manager) Container(w platform.WindowID) (*Container, bool) {
	c, ok := m.containers[w]
	return c, ok
}

// Client returns the managed client for w.
func (m *Manager) Client(w platform.WindowID) (*Client, bool) {
	c, ok := m.clients[w]
	return c, ok
}

func (m *Manager) isOwnWindow(w platform.WindowID) bool {
	if _, ok := m.containers[w]; ok {
		return true
	}
	_, ok := m.titleBars[w]
	return ok
}

func (m *Manager) changed() {
	m.version++
}

// publish hands a snapshot to the layout hook if anything changed since the
// last call.
func (m *Manager) publish() {
	if m.version == m.published {
		return
	}
	m.published = m.version
	if m.onLayout != nil {
		m.onLayout(m.Snapshot())
	}
}

// Snapshot returns the current layout, containers in activation order.
func (m *Manager) Snapshot() model.Layout {
	layout := model.Layout{TS: m.now().Unix()}
	head := m.stack.head()
	if head != nil {
		layout.Focused = uint32(head.Window)
	}
	for _, c := range m.stack.all() {
		mc := model.Container{
			Window:  uint32(c.Window),
			Screen:  c.Screen,
			Bounds:  [4]int{c.X, c.Y, c.Width, c.Height},
			Border:  c.Border,
			Focused: c == head,
			Clients: make([]model.Client, 0, len(c.clients)),
		}
		for _, cl := range c.clients {
			mc.Clients = append(mc.Clients, model.Client{
				Window: uint32(cl.Window),
				Title:  cl.Title,
				Active: c.current == cl,
			})
		}
		layout.Containers = append(layout.Containers, mc)
	}
	return layout
}
