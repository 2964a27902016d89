package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleWindow is returned by requests that target a window the server
	// no longer knows, typically because it was destroyed concurrently.
	ErrStaleWindow = errors.New("stale window")

	// ErrClosed is returned by NextEvent once the connection is gone.
	ErrClosed = errors.New("display connection closed")
)

// StaleWindowError wraps ErrStaleWindow with the window that failed.
func StaleWindowError(w WindowID, op string) error {
	return fmt.Errorf("%s %s: %w", op, w, ErrStaleWindow)
}

// IsStale reports whether err means the target window is gone.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleWindow)
}

// Conn is the display connection. It is the single channel for incoming
// notifications and outgoing requests.
type Conn interface {
	// Screens lists the display's screens in index order.
	Screens() []Screen

	// NextEvent blocks until the next notification arrives.
	NextEvent() (Event, error)

	// TopLevelWindows lists the children of a screen root.
	TopLevelWindows(root WindowID) ([]WindowInfo, error)

	CreateWindow(opts WindowOptions) (WindowID, error)
	DestroyWindow(w WindowID) error
	ReparentWindow(w, parent WindowID, x, y int) error
	ConfigureWindow(w WindowID, changes WindowChanges) error
	MapWindow(w WindowID) error
	UnmapWindow(w WindowID) error

	// ManageWindow subscribes to enter and property notifications on a
	// client window and adds it to the save set.
	ManageWindow(w WindowID) error

	SetInputFocus(w WindowID) error
	GrabKey(root WindowID, code Keycode, modifiers uint16) error

	// WindowTitle reads the window's title property.
	WindowTitle(w WindowID) (string, error)

	Close() error
}

// Keyboard exposes the server's keyboard and modifier mappings.
type Keyboard interface {
	// Keysym resolves a key name such as "Return" or "j".
	Keysym(name string) (Keysym, bool)
	// Keycode returns the first keycode producing sym.
	Keycode(sym Keysym) (Keycode, bool)
	// KeycodeKeysym returns the first-level keysym of code.
	KeycodeKeysym(code Keycode) Keysym
	// ModifierMapping returns eight rows of keycodes, one per modifier bit
	// from ModShift to Mod5.
	ModifierMapping() ([][]Keycode, error)
}

// Painter draws the manager's own windows.
type Painter interface {
	// PaintFrame fills a damaged region of a container frame.
	PaintFrame(w WindowID, area Rect) error
	// PaintTitleBar renders one tab of a container's title strip.
	PaintTitleBar(w WindowID, width, height int, title string, active bool) error
}

// Spawner launches external programs.
type Spawner interface {
	Spawn(command string) error
}
