package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EWMH _NET_WM_MOVERESIZE directions
const (
	MoveresizeSizeTopLeft     = 0
	MoveresizeSizeTop         = 1
	MoveresizeSizeTopRight    = 2
	MoveresizeSizeRight       = 3
	MoveresizeSizeBottomRight = 4
	MoveresizeSizeBottom      = 5
	MoveresizeSizeBottomLeft  = 6
	MoveresizeSizeLeft        = 7
	MoveresizeMove            = 8
)

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// A maximized window ignores configure requests, drop the state first.
	c.unmaximizeWindow(windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" {
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, "_NET_WM_STATE_MAXIMIZED_HORZ")
		}
		if state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, "_NET_WM_STATE_MAXIMIZED_VERT")
		}
	}
	return nil
}

// SetWmState adds or removes one _NET_WM_STATE atom on a window.
func (c *Connection) SetWmState(windowID xproto.Window, add bool, atom string) error {
	action := ewmh.StateRemove
	if add {
		action = ewmh.StateAdd
	}
	return ewmh.WmStateReq(c.XUtil, windowID, action, atom)
}

// WmStates returns the current _NET_WM_STATE atoms of a window.
func (c *Connection) WmStates(windowID xproto.Window) ([]string, error) {
	return ewmh.WmStateGet(c.XUtil, windowID)
}

// GetActiveWindow returns the focused top-level window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// FocusWindow asks the window manager to activate a window.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	return ewmh.ActiveWindowReq(c.XUtil, windowID)
}

// UnfocusWindow reverts input focus to pointer root, dropping keyboard
// focus from whichever window holds it.
func (c *Connection) UnfocusWindow() error {
	cookie := xproto.SetInputFocusChecked(
		c.XUtil.Conn(),
		xproto.InputFocusPointerRoot,
		xproto.Window(xproto.InputFocusPointerRoot),
		xproto.TimeCurrentTime,
	)
	return cookie.Check()
}

// ClientList returns the window manager's managed top-level windows.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// WindowTitle returns a window's title, preferring _NET_WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return name
	}
	return ""
}

// SetWindowTitle sets both EWMH and ICCCM window names.
func (c *Connection) SetWindowTitle(windowID xproto.Window, title string) error {
	if err := ewmh.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("failed to set window title: %w", err)
	}
	icccm.WmNameSet(c.XUtil, windowID, title)
	return nil
}

// WindowPID returns the owning process ID, 0 when unset.
func (c *Connection) WindowPID(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}

// WindowClass returns the WM_CLASS class name, "" when unset.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	class, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return class.Class
}

// WindowGeometry returns a window's rectangle in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get window geometry: %w", err)
	}

	trans, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates: %w", err)
	}

	return int(trans.DstX), int(trans.DstY), int(geom.Width), int(geom.Height), nil
}

// MapWindow makes a window visible (also deiconifies).
func (c *Connection) MapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Map()
}

// UnmapWindow hides a window without destroying it.
func (c *Connection) UnmapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Unmap()
}

// IconifyWindow minimizes a window via WM_CHANGE_STATE.
func (c *Connection) IconifyWindow(windowID xproto.Window) error {
	return ewmh.ClientEvent(c.XUtil, windowID, "WM_CHANGE_STATE", icccm.StateIconic)
}

// CloseWindow politely asks the window to close (WM_DELETE_WINDOW).
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	return ewmh.CloseWindow(c.XUtil, windowID)
}

// DestroyWindow tears a window down without asking.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Destroy()
}

// StartMoveResize hands an interactive move or resize gesture to the
// window manager (_NET_WM_MOVERESIZE). The WM tracks the pointer from
// here on; no geometry is computed on our side.
func (c *Connection) StartMoveResize(windowID xproto.Window, direction int) error {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return fmt.Errorf("failed to query pointer: %w", err)
	}

	const (
		leftButton       = 1
		sourceIndication = 1 // normal application
	)
	return ewmh.ClientEvent(c.XUtil, windowID, "_NET_WM_MOVERESIZE",
		int(pointer.RootX), int(pointer.RootY), direction, leftButton, sourceIndication)
}

// SetWindowOpacity sets _NET_WM_WINDOW_OPACITY. opacity is in [0, 1].
func (c *Connection) SetWindowOpacity(windowID xproto.Window, opacity float64) error {
	value := uint(opacity * 0xffffffff)
	return xprop.ChangeProp32(c.XUtil, windowID, "_NET_WM_WINDOW_OPACITY", "CARDINAL", value)
}

// SetWindowDecorated toggles window manager decorations via Motif hints.
func (c *Connection) SetWindowDecorated(windowID xproto.Window, decorated bool) error {
	const mwmHintsDecorations = 1 << 1
	decor := uint(0)
	if decorated {
		decor = 1
	}
	return xprop.ChangeProp32(c.XUtil, windowID, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS",
		mwmHintsDecorations, 0, decor, 0, 0)
}

// SetMinSize constrains the window's minimum size via WM_NORMAL_HINTS.
func (c *Connection) SetMinSize(windowID xproto.Window, width, height int) error {
	hints := c.normalHints(windowID)
	hints.Flags |= icccm.SizeHintPMinSize
	hints.MinWidth = uint(width)
	hints.MinHeight = uint(height)
	return icccm.WmNormalHintsSet(c.XUtil, windowID, hints)
}

// SetMaxSize constrains the window's maximum size via WM_NORMAL_HINTS.
func (c *Connection) SetMaxSize(windowID xproto.Window, width, height int) error {
	hints := c.normalHints(windowID)
	hints.Flags |= icccm.SizeHintPMaxSize
	hints.MaxWidth = uint(width)
	hints.MaxHeight = uint(height)
	return icccm.WmNormalHintsSet(c.XUtil, windowID, hints)
}

// SetFixedSize pins min and max size to the current geometry, which is
// how X expresses "not resizable".
func (c *Connection) SetFixedSize(windowID xproto.Window, width, height int) error {
	hints := c.normalHints(windowID)
	hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
	hints.MinWidth = uint(width)
	hints.MinHeight = uint(height)
	hints.MaxWidth = uint(width)
	hints.MaxHeight = uint(height)
	return icccm.WmNormalHintsSet(c.XUtil, windowID, hints)
}

// ClearSizeConstraints removes min/max size hints.
func (c *Connection) ClearSizeConstraints(windowID xproto.Window) error {
	hints := c.normalHints(windowID)
	hints.Flags &^= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
	return icccm.WmNormalHintsSet(c.XUtil, windowID, hints)
}

func (c *Connection) normalHints(windowID xproto.Window) *icccm.NormalHints {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil || hints == nil {
		return &icccm.NormalHints{}
	}
	return hints
}

// CreateWindow creates a plain top-level X window. transientFor != 0
// marks the window as a sub-window of that parent.
func (c *Connection) CreateWindow(x, y, width, height int, title string, transientFor xproto.Window) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, x, y, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0xffffff, xproto.EventMaskStructureNotify)
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}

	if title != "" {
		c.SetWindowTitle(win.Id, title)
	}
	icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"})

	if transientFor != 0 {
		if err := icccm.WmTransientForSet(c.XUtil, win.Id, transientFor); err != nil {
			win.Destroy()
			return 0, fmt.Errorf("failed to set transient parent: %w", err)
		}
	}

	return win.Id, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	return len(types) == 0
}
