package platform

import (
	"fmt"
	"strings"
)

// WindowID is an opaque display-server window handle.
type WindowID uint32

// None is the zero window handle.
const None WindowID = 0

func (w WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(w))
}

// Keysym is a symbolic key identity independent of modifier state.
type Keysym uint32

// Keycode is a physical key number as reported by the keyboard.
type Keycode uint8

// NoSymbol is returned for keycodes without a first-level keysym.
const NoSymbol Keysym = 0

// Modifier mask bits, in the order of the server's modifier mapping rows.
const (
	ModShift uint16 = 1 << iota
	ModLock
	ModControl
	Mod1
	Mod2
	Mod3
	Mod4
	Mod5
)

// MouseButton is a pointer button number.
type MouseButton uint8

const (
	MouseLeft   MouseButton = 1
	MouseMiddle MouseButton = 2
	MouseRight  MouseButton = 3
)

// ParseMouseButton converts a configuration value to a MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left", "1":
		return MouseLeft, nil
	case "middle", "2":
		return MouseMiddle, nil
	case "right", "3":
		return MouseRight, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, middle, or right)", s)
	}
}

// Rect is a rectangle relative to a parent window.
type Rect struct {
	X, Y, Width, Height int
}

// Screen is a display surface with its root window.
type Screen struct {
	Index    int
	Root     WindowID
	Geometry Rect
}

// WindowInfo describes an existing top-level window found at startup.
type WindowInfo struct {
	ID               WindowID
	Viewable         bool
	OverrideRedirect bool
}

// WindowKind tells the backend which event mask and colors a new window needs.
type WindowKind int

const (
	// WindowFrame is a container frame hosting client windows.
	WindowFrame WindowKind = iota
	// WindowTitleBar is a single tab in a container's title strip.
	WindowTitleBar
)

// WindowOptions describes a window the manager creates for itself.
type WindowOptions struct {
	Screen int
	Parent WindowID
	Rect   Rect
	Border int
	Kind   WindowKind
}

// ConfigMask selects the fields of WindowChanges that apply. The bit layout
// matches the core protocol's ConfigureWindow value mask.
type ConfigMask uint16

const (
	ConfigX ConfigMask = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// WindowChanges is a configure request.
type WindowChanges struct {
	Mask        ConfigMask
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   uint8
}

// Move returns changes that place a window at x, y.
func Move(x, y int) WindowChanges {
	return WindowChanges{Mask: ConfigX | ConfigY, X: x, Y: y}
}

// Resize returns changes that set a window's size.
func Resize(width, height int) WindowChanges {
	return WindowChanges{Mask: ConfigWidth | ConfigHeight, Width: width, Height: height}
}
