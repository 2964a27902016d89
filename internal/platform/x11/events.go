package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/mj1618/ifwm/internal/platform"
)

func win(w xproto.Window) platform.WindowID {
	return platform.WindowID(w)
}

// translate converts an xgb event into its platform form. atomName resolves
// property atoms.
func translate(ev xgb.Event, atomName func(xproto.Atom) string) platform.Event {
	switch e := ev.(type) {
	case xproto.ConfigureRequestEvent:
		return platform.ConfigureRequest{
			Window: win(e.Window),
			Parent: win(e.Parent),
			Changes: platform.WindowChanges{
				Mask:        platform.ConfigMask(e.ValueMask),
				X:           int(e.X),
				Y:           int(e.Y),
				Width:       int(e.Width),
				Height:      int(e.Height),
				BorderWidth: int(e.BorderWidth),
				Sibling:     win(e.Sibling),
				StackMode:   e.StackMode,
			},
		}
	case xproto.MapRequestEvent:
		return platform.MapRequest{Window: win(e.Window), Parent: win(e.Parent)}
	case xproto.MapNotifyEvent:
		return platform.MapNotify{Window: win(e.Window)}
	case xproto.UnmapNotifyEvent:
		return platform.UnmapNotify{Window: win(e.Window), Event: win(e.Event)}
	case xproto.DestroyNotifyEvent:
		return platform.DestroyNotify{Window: win(e.Window), Event: win(e.Event)}
	case xproto.KeyPressEvent:
		return platform.KeyPress{Window: win(e.Event), Root: win(e.Root), Code: platform.Keycode(e.Detail), State: e.State}
	case xproto.KeyReleaseEvent:
		return platform.KeyRelease{Window: win(e.Event), Code: platform.Keycode(e.Detail), State: e.State}
	case xproto.ButtonPressEvent:
		return platform.ButtonPress{Window: win(e.Event), Button: platform.MouseButton(e.Detail), State: e.State}
	case xproto.ButtonReleaseEvent:
		return platform.ButtonRelease{Window: win(e.Event), Button: platform.MouseButton(e.Detail), State: e.State}
	case xproto.EnterNotifyEvent:
		return platform.EnterNotify{Window: win(e.Event)}
	case xproto.LeaveNotifyEvent:
		return platform.LeaveNotify{Window: win(e.Event)}
	case xproto.ExposeEvent:
		return platform.Expose{
			Window: win(e.Window),
			Area:   platform.Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
			Count:  int(e.Count),
		}
	case xproto.PropertyNotifyEvent:
		name := ""
		if atomName != nil {
			name = atomName(e.Atom)
		}
		return platform.PropertyNotify{Window: win(e.Window), Atom: name, Deleted: e.State == xproto.PropertyDelete}
	case xproto.ReparentNotifyEvent:
		return platform.ReparentNotify{Window: win(e.Window), Parent: win(e.Parent)}
	case xproto.CreateNotifyEvent:
		return platform.CreateNotify{Window: win(e.Window), Parent: win(e.Parent)}
	default:
		return platform.UnknownEvent{Name: eventName(ev)}
	}
}

// eventName turns "xproto.MappingNotifyEvent" into "MappingNotify".
func eventName(ev xgb.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "Event")
}

// isStaleError reports whether err names a window or drawable the server
// no longer has.
func isStaleError(err error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.DrawableError:
		return true
	}
	return false
}

func translateError(err xgb.Error) platform.ErrorEvent {
	if isStaleError(err) {
		return platform.ErrorEvent{Window: platform.WindowID(err.BadId()), Stale: true, Err: err}
	}
	return platform.ErrorEvent{Err: err}
}

// classify maps a failed checked request to platform.ErrStaleWindow when the
// target is gone.
func classify(w platform.WindowID, op string, err error) error {
	if err == nil {
		return nil
	}
	if isStaleError(err) {
		return platform.StaleWindowError(w, op)
	}
	return fmt.Errorf("%s %s: %w", op, w, err)
}
