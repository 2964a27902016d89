//go:build linux || freebsd || netbsd || openbsd || dragonfly

package x11

import (
	"github.com/mj1618/ifwm/internal/launcher"
	"github.com/mj1618/ifwm/internal/platform"
	"github.com/mj1618/ifwm/internal/titlebar"
)

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		conn, err := Open(opts)
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Conn:     conn,
			Keyboard: NewKeyboard(conn.XUtil()),
			Painter:  NewPainter(conn, titlebar.New(nil, opts.Theme.Padding)),
			Spawner:  launcher.New(opts.Shell, opts.Display),
		}, nil
	}
}
