package wm

import "github.com/mj1618/ifwm/internal/platform"

type subscriptionKey struct {
	kind   platform.EventKind
	window platform.WindowID
}

type subscription struct {
	accept func(platform.Event) bool
	handle func(platform.Event)
}

// subscriptions is a multimap from (event kind, window) to handlers kept in
// registration order.
type subscriptions struct {
	byKey map[subscriptionKey][]subscription
}

func newSubscriptions() subscriptions {
	return subscriptions{byKey: make(map[subscriptionKey][]subscription)}
}

func (s *subscriptions) add(kind platform.EventKind, w platform.WindowID, accept func(platform.Event) bool, handle func(platform.Event)) {
	key := subscriptionKey{kind: kind, window: w}
	s.byKey[key] = append(s.byKey[key], subscription{accept: accept, handle: handle})
}

func (s *subscriptions) removeWindow(w platform.WindowID) {
	for key := range s.byKey {
		if key.window == w {
			delete(s.byKey, key)
		}
	}
}

func (s *subscriptions) count(kind platform.EventKind, w platform.WindowID) int {
	return len(s.byKey[subscriptionKey{kind: kind, window: w}])
}

// dispatch runs every accepting handler for ev in registration order and
// returns how many ran.
func (s *subscriptions) dispatch(ev platform.Event) int {
	subs := s.byKey[subscriptionKey{kind: ev.Kind(), window: ev.Target()}]
	if len(subs) == 0 {
		return 0
	}
	// Handlers may unsubscribe while running.
	subs = append([]subscription(nil), subs...)
	n := 0
	for _, sub := range subs {
		if sub.accept != nil && !sub.accept(ev) {
			continue
		}
		sub.handle(ev)
		n++
	}
	return n
}

// subscribe registers a dynamic handler. A nil accept matches every event.
func (m *Manager) subscribe(kind platform.EventKind, w platform.WindowID, accept func(platform.Event) bool, handle func(platform.Event)) {
	m.subs.add(kind, w, accept, handle)
}
