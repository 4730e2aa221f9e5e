package platform

import "errors"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// TitleBarStyle selects window decoration behavior.
type TitleBarStyle string

const (
	TitleBarNormal TitleBarStyle = "normal"
	TitleBarHidden TitleBarStyle = "hidden"
)

// ResizeEdge names where an interactive resize gesture starts.
type ResizeEdge string

const (
	EdgeTop         ResizeEdge = "top"
	EdgeBottom      ResizeEdge = "bottom"
	EdgeLeft        ResizeEdge = "left"
	EdgeRight       ResizeEdge = "right"
	EdgeTopLeft     ResizeEdge = "topLeft"
	EdgeTopRight    ResizeEdge = "topRight"
	EdgeBottomLeft  ResizeEdge = "bottomLeft"
	EdgeBottomRight ResizeEdge = "bottomRight"
)

// CreateOptions carries the initial properties of a new window.
type CreateOptions struct {
	Title         string
	Bounds        *Rect
	Hidden        bool
	AlwaysOnTop   bool
	TitleBarStyle TitleBarStyle
	Parent        WindowID // 0 means top-level
}

// EventKind tags a window lifecycle transition observed by the backend.
type EventKind string

const (
	EventClose           EventKind = "close"
	EventFocus           EventKind = "focus"
	EventBlur            EventKind = "blur"
	EventMaximize        EventKind = "maximize"
	EventUnmaximize      EventKind = "unmaximize"
	EventMinimize        EventKind = "minimize"
	EventRestore         EventKind = "restore"
	EventResize          EventKind = "resize"
	EventResized         EventKind = "resized"
	EventMove            EventKind = "move"
	EventMoved           EventKind = "moved"
	EventEnterFullScreen EventKind = "enter-full-screen"
	EventLeaveFullScreen EventKind = "leave-full-screen"
)

// Event is a single lifecycle transition for one window.
type Event struct {
	Kind   EventKind
	Window WindowID
}

// ErrUnsupported is returned by backends on platforms without an
// implementation.
var ErrUnsupported = errors.New("window backend not supported on this platform")

// Backend abstracts native window-system operations. This is the boundary
// the bridge protocol terminates at: everything behind it talks to the OS.
type Backend interface {
	Displays() ([]Display, error)
	ListWindows() ([]Window, error)
	ActiveWindow() (WindowID, error)

	CreateWindow(opts CreateOptions) (WindowID, error)
	Show(id WindowID) error
	Hide(id WindowID) error
	Focus(id WindowID) error
	Blur(id WindowID) error
	Close(id WindowID) error
	Destroy(id WindowID) error

	Maximize(id WindowID) error
	Unmaximize(id WindowID) error
	IsMaximized(id WindowID) (bool, error)
	Minimize(id WindowID) error
	Restore(id WindowID) error
	SetFullscreen(id WindowID, on bool) error

	Bounds(id WindowID) (Rect, error)
	MoveResize(id WindowID, bounds Rect) error
	SetTitle(id WindowID, title string) error
	SetTitleBarStyle(id WindowID, style TitleBarStyle) error
	SetAlwaysOnTop(id WindowID, onTop bool) error
	SetResizable(id WindowID, resizable bool) error
	SetMinimumSize(id WindowID, width, height int) error
	SetMaximumSize(id WindowID, width, height int) error
	SetOpacity(id WindowID, opacity float64) error

	StartMove(id WindowID) error
	StartResize(id WindowID, edge ResizeEdge) error

	// Watch polls window state and calls emit for every observed
	// transition until stop is closed.
	Watch(stop <-chan struct{}, emit func(Event)) error

	Disconnect()
}
