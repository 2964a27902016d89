package model

// Layout is a point-in-time view of the manager's containers and clients.
type Layout struct {
	TS         int64       `yaml:"ts"                json:"ts"`
	Focused    uint32      `yaml:"focused,omitempty" json:"focused,omitempty"`
	Containers []Container `yaml:"containers"        json:"containers"`
}

// Container is one frame in the layout. Bounds are [x, y, width, height]
// relative to the parent window.
type Container struct {
	Window  uint32   `yaml:"window"           json:"window"`
	Screen  int      `yaml:"screen"           json:"screen"`
	Bounds  [4]int   `yaml:"bounds"           json:"bounds"`
	Border  int      `yaml:"border"           json:"border"`
	Focused bool     `yaml:"focused,omitempty" json:"focused,omitempty"`
	Clients []Client `yaml:"clients"          json:"clients"`
}

// Client is a managed window shown as a tab of its container.
type Client struct {
	Window uint32 `yaml:"window"           json:"window"`
	Title  string `yaml:"title"            json:"title"`
	Active bool   `yaml:"active,omitempty" json:"active,omitempty"`
}

// FindContainer returns the container with the given window, or nil.
func (l Layout) FindContainer(window uint32) *Container {
	for i := range l.Containers {
		if l.Containers[i].Window == window {
			return &l.Containers[i]
		}
	}
	return nil
}

// ClientCount returns the number of managed clients across all containers.
func (l Layout) ClientCount() int {
	n := 0
	for _, c := range l.Containers {
		n += len(c.Clients)
	}
	return n
}

// Only returns a copy of l holding just the container with the given
// window.
func (l Layout) Only(window uint32) (Layout, bool) {
	c := l.FindContainer(window)
	if c == nil {
		return Layout{}, false
	}
	l.Containers = []Container{*c}
	return l, true
}
