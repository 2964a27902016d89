package wm

import "github.com/mj1618/ifwm/internal/platform"

// activationStack orders containers most-recently-focused first. Each frame
// window appears at most once.
type activationStack struct {
	order []*Container
}

func (s *activationStack) index(w platform.WindowID) int {
	for i, c := range s.order {
		if c.Window == w {
			return i
		}
	}
	return -1
}

// push moves c to the head, inserting it if absent.
func (s *activationStack) push(c *Container) {
	if i := s.index(c.Window); i >= 0 {
		if i == 0 {
			return
		}
		copy(s.order[1:i+1], s.order[:i])
		s.order[0] = c
		return
	}
	s.order = append([]*Container{c}, s.order...)
}

func (s *activationStack) remove(c *Container) bool {
	i := s.index(c.Window)
	if i < 0 {
		return false
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	return true
}

func (s *activationStack) head() *Container {
	if len(s.order) == 0 {
		return nil
	}
	return s.order[0]
}

func (s *activationStack) contains(c *Container) bool {
	return s.index(c.Window) >= 0
}

func (s *activationStack) len() int {
	return len(s.order)
}

// all returns a copy in stack order.
func (s *activationStack) all() []*Container {
	return append([]*Container(nil), s.order...)
}

// headOn returns the most recently focused container on screen.
func (s *activationStack) headOn(screen int) *Container {
	for _, c := range s.order {
		if c.Screen == screen {
			return c
		}
	}
	return nil
}
