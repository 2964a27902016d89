package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/mj1618/ifwm/internal/platform"
)

const (
	frameEventMask = xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskExposure |
		xproto.EventMaskKeyPress

	titleBarEventMask = xproto.EventMaskExposure |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease

	clientEventMask = xproto.EventMaskEnterWindow |
		xproto.EventMaskPropertyChange
)

func (c *Conn) CreateWindow(opts platform.WindowOptions) (platform.WindowID, error) {
	info, err := c.screenInfo(opts.Screen)
	if err != nil {
		return platform.None, err
	}
	wid, err := xproto.NewWindowId(c.xc)
	if err != nil {
		return platform.None, fmt.Errorf("allocate window id: %w", err)
	}

	background, mask := c.opts.FrameColor, uint32(frameEventMask)
	if opts.Kind == platform.WindowTitleBar {
		background, mask = c.opts.Theme.InactiveBackground, titleBarEventMask
	}
	r := opts.Rect
	err = xproto.CreateWindowChecked(c.xc, info.RootDepth, wid, xproto.Window(opts.Parent),
		int16(r.X), int16(r.Y), uint16(max(r.Width, 1)), uint16(max(r.Height, 1)), uint16(opts.Border),
		xproto.WindowClassInputOutput, info.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{background, c.opts.BorderColor, mask},
	).Check()
	if err != nil {
		return platform.None, classify(opts.Parent, "create window", err)
	}
	id := platform.WindowID(wid)
	c.windowScreen[id] = opts.Screen
	return id, nil
}

func (c *Conn) DestroyWindow(w platform.WindowID) error {
	delete(c.windowScreen, w)
	err := xproto.DestroyWindowChecked(c.xc, xproto.Window(w)).Check()
	return classify(w, "destroy window", err)
}

func (c *Conn) ReparentWindow(w, parent platform.WindowID, x, y int) error {
	err := xproto.ReparentWindowChecked(c.xc, xproto.Window(w), xproto.Window(parent),
		int16(x), int16(y)).Check()
	return classify(w, "reparent window", err)
}

func (c *Conn) ConfigureWindow(w platform.WindowID, changes platform.WindowChanges) error {
	mask, values := configureValues(changes)
	if mask == 0 {
		return nil
	}
	err := xproto.ConfigureWindowChecked(c.xc, xproto.Window(w), mask, values).Check()
	return classify(w, "configure window", err)
}

// configureValues encodes changes in the value-list order of the protocol.
func configureValues(ch platform.WindowChanges) (uint16, []uint32) {
	var values []uint32
	mask := ch.Mask & (platform.ConfigX | platform.ConfigY | platform.ConfigWidth |
		platform.ConfigHeight | platform.ConfigBorderWidth | platform.ConfigSibling |
		platform.ConfigStackMode)
	if mask&platform.ConfigX != 0 {
		values = append(values, uint32(int32(ch.X)))
	}
	if mask&platform.ConfigY != 0 {
		values = append(values, uint32(int32(ch.Y)))
	}
	if mask&platform.ConfigWidth != 0 {
		values = append(values, uint32(max(ch.Width, 1)))
	}
	if mask&platform.ConfigHeight != 0 {
		values = append(values, uint32(max(ch.Height, 1)))
	}
	if mask&platform.ConfigBorderWidth != 0 {
		values = append(values, uint32(max(ch.BorderWidth, 0)))
	}
	if mask&platform.ConfigSibling != 0 {
		values = append(values, uint32(ch.Sibling))
	}
	if mask&platform.ConfigStackMode != 0 {
		values = append(values, uint32(ch.StackMode))
	}
	return uint16(mask), values
}

func (c *Conn) MapWindow(w platform.WindowID) error {
	return classify(w, "map window", xproto.MapWindowChecked(c.xc, xproto.Window(w)).Check())
}

func (c *Conn) UnmapWindow(w platform.WindowID) error {
	return classify(w, "unmap window", xproto.UnmapWindowChecked(c.xc, xproto.Window(w)).Check())
}

func (c *Conn) ManageWindow(w platform.WindowID) error {
	err := xproto.ChangeWindowAttributesChecked(c.xc, xproto.Window(w),
		xproto.CwEventMask, []uint32{clientEventMask}).Check()
	if err != nil {
		return classify(w, "select client events", err)
	}
	err = xproto.ChangeSaveSetChecked(c.xc, xproto.SetModeInsert, xproto.Window(w)).Check()
	return classify(w, "add to save set", err)
}

func (c *Conn) SetInputFocus(w platform.WindowID) error {
	err := xproto.SetInputFocusChecked(c.xc, xproto.InputFocusPointerRoot,
		xproto.Window(w), xproto.TimeCurrentTime).Check()
	return classify(w, "set input focus", err)
}

func (c *Conn) GrabKey(root platform.WindowID, code platform.Keycode, modifiers uint16) error {
	err := xproto.GrabKeyChecked(c.xc, true, xproto.Window(root), modifiers, xproto.Keycode(code),
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
	if err != nil {
		return fmt.Errorf("grab key %d on %s: %w", code, root, err)
	}
	return nil
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME. A window
// without either property has an empty title.
func (c *Conn) WindowTitle(w platform.WindowID) (string, error) {
	if name, err := ewmh.WmNameGet(c.xu, xproto.Window(w)); err == nil && name != "" {
		return name, nil
	}
	name, err := icccm.WmNameGet(c.xu, xproto.Window(w))
	if err != nil {
		return "", nil
	}
	return name, nil
}
