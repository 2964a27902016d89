package platform

// EventKind enumerates the protocol notifications the manager consumes.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindConfigureRequest
	KindMapRequest
	KindMapNotify
	KindUnmapNotify
	KindDestroyNotify
	KindKeyPress
	KindKeyRelease
	KindButtonPress
	KindButtonRelease
	KindEnterNotify
	KindLeaveNotify
	KindExpose
	KindPropertyNotify
	KindReparentNotify
	KindCreateNotify
	KindError
)

var kindNames = map[EventKind]string{
	KindUnknown:          "unknown",
	KindConfigureRequest: "configure-request",
	KindMapRequest:       "map-request",
	KindMapNotify:        "map-notify",
	KindUnmapNotify:      "unmap-notify",
	KindDestroyNotify:    "destroy-notify",
	KindKeyPress:         "key-press",
	KindKeyRelease:       "key-release",
	KindButtonPress:      "button-press",
	KindButtonRelease:    "button-release",
	KindEnterNotify:      "enter-notify",
	KindLeaveNotify:      "leave-notify",
	KindExpose:           "expose",
	KindPropertyNotify:   "property-notify",
	KindReparentNotify:   "reparent-notify",
	KindCreateNotify:     "create-notify",
	KindError:            "error",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one notification from the display connection. The concrete types
// below form a closed set; handlers match them with a type switch.
type Event interface {
	Kind() EventKind
	// Target is the window the event is about.
	Target() WindowID
}

// ConfigureRequest asks the manager to approve a geometry change.
type ConfigureRequest struct {
	Window  WindowID
	Parent  WindowID
	Changes WindowChanges
}

// MapRequest asks the manager to show a new top-level window.
type MapRequest struct {
	Window WindowID
	Parent WindowID
}

type MapNotify struct {
	Window WindowID
}

// UnmapNotify reports that Window was unmapped. Event is the window the
// notification was delivered to.
type UnmapNotify struct {
	Window WindowID
	Event  WindowID
}

type DestroyNotify struct {
	Window WindowID
	Event  WindowID
}

// KeyPress is delivered to Window, the event window holding focus or a grab.
type KeyPress struct {
	Window WindowID
	Root   WindowID
	Code   Keycode
	State  uint16
}

type KeyRelease struct {
	Window WindowID
	Code   Keycode
	State  uint16
}

type ButtonPress struct {
	Window WindowID
	Button MouseButton
	State  uint16
}

type ButtonRelease struct {
	Window WindowID
	Button MouseButton
	State  uint16
}

type EnterNotify struct {
	Window WindowID
}

type LeaveNotify struct {
	Window WindowID
}

// Expose reports a damaged region of Window.
type Expose struct {
	Window WindowID
	Area   Rect
	Count  int
}

// PropertyNotify reports a changed or deleted property, identified by atom name.
type PropertyNotify struct {
	Window  WindowID
	Atom    string
	Deleted bool
}

type ReparentNotify struct {
	Window WindowID
	Parent WindowID
}

type CreateNotify struct {
	Window WindowID
	Parent WindowID
}

// ErrorEvent carries an asynchronous protocol error. Window is set and Stale
// is true when the error names a window that no longer exists.
type ErrorEvent struct {
	Window WindowID
	Stale  bool
	Err    error
}

// UnknownEvent is any notification the manager has no handler for.
type UnknownEvent struct {
	Code int
	Name string
}

func (ConfigureRequest) Kind() EventKind { return KindConfigureRequest }
func (MapRequest) Kind() EventKind       { return KindMapRequest }
func (MapNotify) Kind() EventKind        { return KindMapNotify }
func (UnmapNotify) Kind() EventKind      { return KindUnmapNotify }
func (DestroyNotify) Kind() EventKind    { return KindDestroyNotify }
func (KeyPress) Kind() EventKind         { return KindKeyPress }
func (KeyRelease) Kind() EventKind       { return KindKeyRelease }
func (ButtonPress) Kind() EventKind      { return KindButtonPress }
func (ButtonRelease) Kind() EventKind    { return KindButtonRelease }
func (EnterNotify) Kind() EventKind      { return KindEnterNotify }
func (LeaveNotify) Kind() EventKind      { return KindLeaveNotify }
func (Expose) Kind() EventKind           { return KindExpose }
func (PropertyNotify) Kind() EventKind   { return KindPropertyNotify }
func (ReparentNotify) Kind() EventKind   { return KindReparentNotify }
func (CreateNotify) Kind() EventKind     { return KindCreateNotify }
func (ErrorEvent) Kind() EventKind       { return KindError }
func (UnknownEvent) Kind() EventKind     { return KindUnknown }

func (e ConfigureRequest) Target() WindowID { return e.Window }
func (e MapRequest) Target() WindowID       { return e.Window }
func (e MapNotify) Target() WindowID        { return e.Window }
func (e UnmapNotify) Target() WindowID      { return e.Window }
func (e DestroyNotify) Target() WindowID    { return e.Window }
func (e KeyPress) Target() WindowID         { return e.Window }
func (e KeyRelease) Target() WindowID       { return e.Window }
func (e ButtonPress) Target() WindowID      { return e.Window }
func (e ButtonRelease) Target() WindowID    { return e.Window }
func (e EnterNotify) Target() WindowID      { return e.Window }
func (e LeaveNotify) Target() WindowID      { return e.Window }
func (e Expose) Target() WindowID           { return e.Window }
func (e PropertyNotify) Target() WindowID   { return e.Window }
func (e ReparentNotify) Target() WindowID   { return e.Window }
func (e CreateNotify) Target() WindowID     { return e.Window }
func (e ErrorEvent) Target() WindowID       { return e.Window }
func (UnknownEvent) Target() WindowID       { return None }
