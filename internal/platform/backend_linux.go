//go:build linux

package platform

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winbridge/internal/x11"
)

// X11Backend implements Backend over an X11 connection using EWMH requests.
// The window manager does the actual moving, stacking and gesture tracking;
// this backend only issues requests and reads state back.
type X11Backend struct {
	conn *x11.Connection

	pollInterval time.Duration

	// Windows created through the bridge, tracked so hide/show and
	// destroy work even before the WM lists them.
	mu      sync.Mutex
	created map[WindowID]struct{}
}

var _ Backend = (*X11Backend)(nil)

// DefaultPollInterval is the watch loop's default sampling period.
const DefaultPollInterval = 200 * time.Millisecond

// NewX11Backend opens a fresh X11 connection.
func NewX11Backend(pollInterval time.Duration) (*X11Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &X11Backend{
		conn:         conn,
		pollInterval: pollInterval,
		created:      make(map[WindowID]struct{}),
	}, nil
}

// NewBackend opens the platform backend for this OS.
func NewBackend(pollInterval time.Duration) (Backend, error) {
	return NewX11Backend(pollInterval)
}

// Disconnect closes the underlying X11 connection.
func (b *X11Backend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Displays returns all active displays.
func (b *X11Backend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})
	return displays, nil
}

// ListWindows returns normal application windows plus bridge-created ones.
func (b *X11Backend) ListWindows() ([]Window, error) {
	clients, err := b.conn.ClientList()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	listed := make(map[WindowID]struct{}, len(clients))
	var windows []Window
	for _, win := range clients {
		if !b.conn.IsNormalWindow(win) {
			continue
		}
		windows = append(windows, b.windowInfo(win))
		listed[WindowID(win)] = struct{}{}
	}

	b.mu.Lock()
	for id := range b.created {
		if _, ok := listed[id]; !ok {
			windows = append(windows, b.windowInfo(xproto.Window(id)))
		}
	}
	b.mu.Unlock()

	sort.Slice(windows, func(i, j int) bool { return windows[i].ID < windows[j].ID })
	return windows, nil
}

func (b *X11Backend) windowInfo(win xproto.Window) Window {
	w := Window{
		ID:    WindowID(win),
		Title: b.conn.WindowTitle(win),
		AppID: b.conn.WindowClass(win),
		PID:   b.conn.WindowPID(win),
	}
	if x, y, width, height, err := b.conn.WindowGeometry(win); err == nil {
		w.Bounds = Rect{X: x, Y: y, Width: width, Height: height}
	}
	return w
}

// ActiveWindow returns the focused window.
func (b *X11Backend) ActiveWindow() (WindowID, error) {
	win, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return WindowID(win), nil
}

// CreateWindow creates a plain top-level window, or a transient child
// when opts.Parent is set.
func (b *X11Backend) CreateWindow(opts CreateOptions) (WindowID, error) {
	bounds := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}

	win, err := b.conn.CreateWindow(bounds.X, bounds.Y, bounds.Width, bounds.Height,
		opts.Title, xproto.Window(opts.Parent))
	if err != nil {
		return 0, err
	}
	id := WindowID(win)

	b.mu.Lock()
	b.created[id] = struct{}{}
	b.mu.Unlock()

	if opts.TitleBarStyle == TitleBarHidden {
		b.conn.SetWindowDecorated(win, false)
	}
	if !opts.Hidden {
		b.conn.MapWindow(win)
	}
	if opts.AlwaysOnTop {
		b.conn.SetWmState(win, true, "_NET_WM_STATE_ABOVE")
	}
	return id, nil
}

// Show maps the window (also deiconifies).
func (b *X11Backend) Show(id WindowID) error {
	b.conn.MapWindow(xproto.Window(id))
	return nil
}

// Hide unmaps the window.
func (b *X11Backend) Hide(id WindowID) error {
	b.conn.UnmapWindow(xproto.Window(id))
	return nil
}

// Focus activates the window.
func (b *X11Backend) Focus(id WindowID) error {
	return b.conn.FocusWindow(xproto.Window(id))
}

// Blur drops keyboard focus. X has no per-window blur, so focus reverts
// to pointer root regardless of id.
func (b *X11Backend) Blur(id WindowID) error {
	return b.conn.UnfocusWindow()
}

// Close asks the window to close via WM_DELETE_WINDOW.
func (b *X11Backend) Close(id WindowID) error {
	return b.conn.CloseWindow(xproto.Window(id))
}

// Destroy tears the window down unconditionally.
func (b *X11Backend) Destroy(id WindowID) error {
	b.conn.DestroyWindow(xproto.Window(id))
	b.mu.Lock()
	delete(b.created, id)
	b.mu.Unlock()
	return nil
}

// Maximize maximizes the window in both directions.
func (b *X11Backend) Maximize(id WindowID) error {
	win := xproto.Window(id)
	if err := b.conn.SetWmState(win, true, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		return err
	}
	return b.conn.SetWmState(win, true, "_NET_WM_STATE_MAXIMIZED_VERT")
}

// Unmaximize restores a maximized window.
func (b *X11Backend) Unmaximize(id WindowID) error {
	win := xproto.Window(id)
	if err := b.conn.SetWmState(win, false, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		return err
	}
	return b.conn.SetWmState(win, false, "_NET_WM_STATE_MAXIMIZED_VERT")
}

// IsMaximized reports whether the window is maximized in both directions.
func (b *X11Backend) IsMaximized(id WindowID) (bool, error) {
	states, err := b.conn.WmStates(xproto.Window(id))
	if err != nil {
		return false, fmt.Errorf("failed to read window state: %w", err)
	}
	horz, vert := false, false
	for _, s := range states {
		switch s {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			horz = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			vert = true
		}
	}
	return horz && vert, nil
}

// Minimize iconifies the window.
func (b *X11Backend) Minimize(id WindowID) error {
	return b.conn.IconifyWindow(xproto.Window(id))
}

// Restore deiconifies the window.
func (b *X11Backend) Restore(id WindowID) error {
	b.conn.MapWindow(xproto.Window(id))
	return nil
}

// SetFullscreen toggles _NET_WM_STATE_FULLSCREEN.
func (b *X11Backend) SetFullscreen(id WindowID, on bool) error {
	return b.conn.SetWmState(xproto.Window(id), on, "_NET_WM_STATE_FULLSCREEN")
}

// Bounds returns the window rectangle in root coordinates.
func (b *X11Backend) Bounds(id WindowID) (Rect, error) {
	x, y, width, height, err := b.conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}

// MoveResize applies a new rectangle to the window.
func (b *X11Backend) MoveResize(id WindowID, bounds Rect) error {
	return b.conn.MoveResizeWindow(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// SetTitle changes the window title.
func (b *X11Backend) SetTitle(id WindowID, title string) error {
	return b.conn.SetWindowTitle(xproto.Window(id), title)
}

// SetTitleBarStyle toggles WM decorations via Motif hints.
func (b *X11Backend) SetTitleBarStyle(id WindowID, style TitleBarStyle) error {
	switch style {
	case TitleBarNormal:
		return b.conn.SetWindowDecorated(xproto.Window(id), true)
	case TitleBarHidden:
		return b.conn.SetWindowDecorated(xproto.Window(id), false)
	default:
		return fmt.Errorf("unknown title bar style %q", style)
	}
}

// SetAlwaysOnTop toggles _NET_WM_STATE_ABOVE.
func (b *X11Backend) SetAlwaysOnTop(id WindowID, onTop bool) error {
	return b.conn.SetWmState(xproto.Window(id), onTop, "_NET_WM_STATE_ABOVE")
}

// SetResizable pins or releases the window's size via WM_NORMAL_HINTS.
func (b *X11Backend) SetResizable(id WindowID, resizable bool) error {
	win := xproto.Window(id)
	if resizable {
		return b.conn.ClearSizeConstraints(win)
	}
	_, _, width, height, err := b.conn.WindowGeometry(win)
	if err != nil {
		return err
	}
	return b.conn.SetFixedSize(win, width, height)
}

// SetMinimumSize constrains minimum dimensions.
func (b *X11Backend) SetMinimumSize(id WindowID, width, height int) error {
	return b.conn.SetMinSize(xproto.Window(id), width, height)
}

// SetMaximumSize constrains maximum dimensions.
func (b *X11Backend) SetMaximumSize(id WindowID, width, height int) error {
	return b.conn.SetMaxSize(xproto.Window(id), width, height)
}

// SetOpacity sets the compositor opacity hint.
func (b *X11Backend) SetOpacity(id WindowID, opacity float64) error {
	return b.conn.SetWindowOpacity(xproto.Window(id), opacity)
}

// StartMove hands a move gesture to the window manager.
func (b *X11Backend) StartMove(id WindowID) error {
	return b.conn.StartMoveResize(xproto.Window(id), x11.MoveresizeMove)
}

// StartResize hands a resize gesture to the window manager.
func (b *X11Backend) StartResize(id WindowID, edge ResizeEdge) error {
	direction, ok := resizeDirections[edge]
	if !ok {
		return fmt.Errorf("unknown resize edge %q", edge)
	}
	return b.conn.StartMoveResize(xproto.Window(id), direction)
}

var resizeDirections = map[ResizeEdge]int{
	EdgeTop:         x11.MoveresizeSizeTop,
	EdgeBottom:      x11.MoveresizeSizeBottom,
	EdgeLeft:        x11.MoveresizeSizeLeft,
	EdgeRight:       x11.MoveresizeSizeRight,
	EdgeTopLeft:     x11.MoveresizeSizeTopLeft,
	EdgeTopRight:    x11.MoveresizeSizeTopRight,
	EdgeBottomLeft:  x11.MoveresizeSizeBottomLeft,
	EdgeBottomRight: x11.MoveresizeSizeBottomRight,
}

// Watch samples window state on a ticker and emits the transitions
// between consecutive snapshots until stop is closed.
func (b *X11Backend) Watch(stop <-chan struct{}, emit func(Event)) error {
	prev, err := b.snapshot()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
			next, err := b.snapshot()
			if err != nil {
				continue
			}
			for _, ev := range DiffStates(prev, next) {
				emit(ev)
			}
			prev = next
		}
	}
}

func (b *X11Backend) snapshot() (map[WindowID]WindowState, error) {
	clients, err := b.conn.ClientList()
	if err != nil {
		return nil, err
	}
	active, _ := b.conn.GetActiveWindow()

	states := make(map[WindowID]WindowState, len(clients))
	for _, win := range clients {
		if !b.conn.IsNormalWindow(win) {
			continue
		}
		state := WindowState{Focused: win == active}
		if x, y, width, height, err := b.conn.WindowGeometry(win); err == nil {
			state.Bounds = Rect{X: x, Y: y, Width: width, Height: height}
		}
		if wmStates, err := b.conn.WmStates(win); err == nil {
			horz, vert := false, false
			for _, s := range wmStates {
				switch s {
				case "_NET_WM_STATE_MAXIMIZED_HORZ":
					horz = true
				case "_NET_WM_STATE_MAXIMIZED_VERT":
					vert = true
				case "_NET_WM_STATE_HIDDEN":
					state.Minimized = true
				case "_NET_WM_STATE_FULLSCREEN":
					state.Fullscreen = true
				}
			}
			state.Maximized = horz && vert
		}
		states[WindowID(win)] = state
	}
	return states, nil
}
