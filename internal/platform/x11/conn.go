// Package x11 implements the platform interfaces on an X server through
// xgb and xgbutil.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/mj1618/ifwm/internal/platform"
)

// ErrAnotherWM is returned by Open when another client already holds
// substructure redirection on a root window.
var ErrAnotherWM = errors.New("another window manager is already running")

// Root event mask: redirect top-level configure and map requests, see
// structure changes and receive grabbed keys.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskKeyPress

// Conn is a display connection acting as the window manager.
type Conn struct {
	xu      *xgbutil.XUtil
	xc      *xgb.Conn
	opts    platform.Options
	screens []platform.Screen
	infos   []xproto.ScreenInfo

	// windowScreen remembers which screen each created window lives on.
	windowScreen map[platform.WindowID]int
	atomNames    map[xproto.Atom]string
}

// Open connects to opts.Display (or $DISPLAY) and claims window management
// on every screen.
func Open(opts platform.Options) (*Conn, error) {
	xu, err := xgbutil.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("connect to display %q: %w", opts.Display, err)
	}
	c := &Conn{
		xu:           xu,
		xc:           xu.Conn(),
		opts:         opts,
		windowScreen: make(map[platform.WindowID]int),
		atomNames:    make(map[xproto.Atom]string),
	}
	setup := xu.Setup()
	if setup == nil || len(setup.Roots) == 0 {
		c.xc.Close()
		return nil, errors.New("display reported no screens")
	}
	for i, info := range setup.Roots {
		c.infos = append(c.infos, info)
		c.screens = append(c.screens, platform.Screen{
			Index: i,
			Root:  platform.WindowID(info.Root),
			Geometry: platform.Rect{
				Width:  int(info.WidthInPixels),
				Height: int(info.HeightInPixels),
			},
		})
	}
	if err := c.becomeWM(); err != nil {
		c.xc.Close()
		return nil, err
	}
	keybind.Initialize(xu)
	return c, nil
}

func (c *Conn) becomeWM() error {
	for _, s := range c.screens {
		err := xproto.ChangeWindowAttributesChecked(c.xc, xproto.Window(s.Root),
			xproto.CwEventMask, []uint32{rootEventMask}).Check()
		if err != nil {
			if _, ok := err.(xproto.AccessError); ok {
				return ErrAnotherWM
			}
			return fmt.Errorf("select root events on screen %d: %w", s.Index, err)
		}
	}
	return nil
}

// XUtil exposes the underlying xgbutil connection.
func (c *Conn) XUtil() *xgbutil.XUtil {
	return c.xu
}

func (c *Conn) Screens() []platform.Screen {
	return append([]platform.Screen(nil), c.screens...)
}

// NextEvent blocks for the next event or asynchronous error. Keyboard
// mapping changes are applied here and reported as unknown events.
func (c *Conn) NextEvent() (platform.Event, error) {
	ev, xerr := c.xc.WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, platform.ErrClosed
	}
	if xerr != nil {
		return translateError(xerr), nil
	}
	if _, ok := ev.(xproto.MappingNotifyEvent); ok {
		keyMap, modMap := keybind.MapsGet(c.xu)
		keybind.KeyMapSet(c.xu, keyMap)
		keybind.ModMapSet(c.xu, modMap)
	}
	return translate(ev, c.atomName), nil
}

func (c *Conn) atomName(a xproto.Atom) string {
	if name, ok := c.atomNames[a]; ok {
		return name
	}
	name, err := xprop.AtomName(c.xu, a)
	if err != nil {
		return fmt.Sprintf("atom(%d)", a)
	}
	c.atomNames[a] = name
	return name
}

func (c *Conn) TopLevelWindows(root platform.WindowID) ([]platform.WindowInfo, error) {
	tree, err := xproto.QueryTree(c.xc, xproto.Window(root)).Reply()
	if err != nil {
		return nil, classify(root, "query tree", err)
	}
	cookies := make([]xproto.GetWindowAttributesCookie, len(tree.Children))
	for i, child := range tree.Children {
		cookies[i] = xproto.GetWindowAttributes(c.xc, child)
	}
	out := make([]platform.WindowInfo, 0, len(tree.Children))
	for i, cookie := range cookies {
		attrs, err := cookie.Reply()
		if err != nil {
			// Destroyed between the tree query and now.
			continue
		}
		out = append(out, platform.WindowInfo{
			ID:               platform.WindowID(tree.Children[i]),
			Viewable:         attrs.MapState == xproto.MapStateViewable,
			OverrideRedirect: attrs.OverrideRedirect,
		})
	}
	return out, nil
}

func (c *Conn) Close() error {
	c.xc.Close()
	return nil
}

func (c *Conn) screenInfo(index int) (xproto.ScreenInfo, error) {
	if index < 0 || index >= len(c.infos) {
		return xproto.ScreenInfo{}, fmt.Errorf("no screen %d", index)
	}
	return c.infos[index], nil
}
