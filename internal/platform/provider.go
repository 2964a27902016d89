package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the display backends the manager runs on.
type Provider struct {
	Conn     Conn
	Keyboard Keyboard
	Painter  Painter
	Spawner  Spawner
}

// Options configures a backend at connection time.
type Options struct {
	Display     string
	BorderColor uint32
	FrameColor  uint32
	Theme       TitleTheme
	Shell       string
}

// TitleTheme holds title-bar colors as 0xRRGGBB values.
type TitleTheme struct {
	ActiveBackground   uint32
	InactiveBackground uint32
	Foreground         uint32
	InactiveForeground uint32
	Padding            int
}

// ErrUnsupported is returned when no display backend is linked in.
var ErrUnsupported = fmt.Errorf("ifwm has no display backend for %s/%s; supported: linux and the BSDs with an X server", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by backend packages via init().
// See internal/platform/x11/init.go for the X11 registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider connects to the display described by opts.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
