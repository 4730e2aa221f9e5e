package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/wire"
)

// Client is the typed remote-call surface over a Conn. Every method
// serializes into a named call with a flat argument mapping and forwards
// it to the native host; no window-management logic lives here.
type Client struct {
	conn *Conn
}

// NewClient wraps an existing connection.
func NewClient(conn *Conn) *Client {
	return &Client{conn: conn}
}

// Connect dials the host socket and returns a ready client.
func Connect(socketPath string, logger zerolog.Logger) (*Client, error) {
	conn, err := Dial(socketPath, NewDispatcher(), logger)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Events returns the dispatcher for host events on this client's connection.
func (c *Client) Events() *Dispatcher {
	return c.conn.Events()
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// CreateWindowOptions carries the optional properties of a new window.
// Zero-valued optionals are omitted from the call payload.
type CreateWindowOptions struct {
	Title         string
	Bounds        *wire.Bounds
	Hidden        bool
	AlwaysOnTop   bool
	TitleBarStyle wire.TitleBarStyle
}

func (o CreateWindowOptions) args() wire.Args {
	args := wire.Args{}
	if o.Title != "" {
		args["title"] = o.Title
	}
	if o.Bounds != nil {
		args["x"] = o.Bounds.X
		args["y"] = o.Bounds.Y
		args["width"] = o.Bounds.Width
		args["height"] = o.Bounds.Height
	}
	if o.Hidden {
		args["hidden"] = true
	}
	if o.AlwaysOnTop {
		args["onTop"] = true
	}
	if o.TitleBarStyle != "" {
		args["style"] = string(o.TitleBarStyle)
	}
	return args
}

// CreateWindow asks the host to create a new top-level window.
func (c *Client) CreateWindow(ctx context.Context, opts CreateWindowOptions) (wire.WindowID, error) {
	if opts.TitleBarStyle != "" && !wire.ValidTitleBarStyle(opts.TitleBarStyle) {
		return 0, fmt.Errorf("invalid title bar style %q", opts.TitleBarStyle)
	}
	data, err := c.conn.Call(ctx, wire.MethodCreateWindow, 0, opts.args())
	if err != nil {
		return 0, err
	}
	var created wire.CreatedData
	if err := json.Unmarshal(data, &created); err != nil {
		return 0, fmt.Errorf("failed to parse createWindow result: %w", err)
	}
	return created.WindowID, nil
}

// CreateSubWindow creates a window owned by parent (a transient child on
// platforms that model ownership that way).
func (c *Client) CreateSubWindow(ctx context.Context, parent wire.WindowID, opts CreateWindowOptions) (wire.WindowID, error) {
	if opts.TitleBarStyle != "" && !wire.ValidTitleBarStyle(opts.TitleBarStyle) {
		return 0, fmt.Errorf("invalid title bar style %q", opts.TitleBarStyle)
	}
	data, err := c.conn.Call(ctx, wire.MethodCreateSubWindow, parent, opts.args())
	if err != nil {
		return 0, err
	}
	var created wire.CreatedData
	if err := json.Unmarshal(data, &created); err != nil {
		return 0, fmt.Errorf("failed to parse createSubWindow result: %w", err)
	}
	return created.WindowID, nil
}

func (c *Client) simple(ctx context.Context, method wire.Method, window wire.WindowID) error {
	_, err := c.conn.Call(ctx, method, window, nil)
	return err
}

// Show makes the window visible.
func (c *Client) Show(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodShow, window)
}

// Hide removes the window from the screen without destroying it.
func (c *Client) Hide(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodHide, window)
}

// Focus gives the window keyboard focus.
func (c *Client) Focus(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodFocus, window)
}

// Blur relinquishes keyboard focus.
func (c *Client) Blur(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodBlur, window)
}

// CloseWindow asks the window to close (the application may refuse).
func (c *Client) CloseWindow(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodClose, window)
}

// Destroy tears the window down unconditionally.
func (c *Client) Destroy(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodDestroy, window)
}

// Maximize maximizes the window.
func (c *Client) Maximize(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodMaximize, window)
}

// Unmaximize restores a maximized window to its previous bounds.
func (c *Client) Unmaximize(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodUnmaximize, window)
}

// IsMaximized reports the window's maximized state.
func (c *Client) IsMaximized(ctx context.Context, window wire.WindowID) (bool, error) {
	data, err := c.conn.Call(ctx, wire.MethodIsMaximized, window, nil)
	if err != nil {
		return false, err
	}
	var m wire.MaximizedData
	if err := json.Unmarshal(data, &m); err != nil {
		return false, fmt.Errorf("failed to parse isMaximized result: %w", err)
	}
	return m.Maximized, nil
}

// Minimize iconifies the window.
func (c *Client) Minimize(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodMinimize, window)
}

// Restore brings a minimized window back.
func (c *Client) Restore(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodRestore, window)
}

// SetFullScreen toggles fullscreen state.
func (c *Client) SetFullScreen(ctx context.Context, window wire.WindowID, on bool) error {
	_, err := c.conn.Call(ctx, wire.MethodSetFullScreen, window, wire.Args{"fullscreen": on})
	return err
}

// SetBounds moves and resizes the window in one call.
func (c *Client) SetBounds(ctx context.Context, window wire.WindowID, b wire.Bounds) error {
	_, err := c.conn.Call(ctx, wire.MethodSetBounds, window, wire.Args{
		"x":      b.X,
		"y":      b.Y,
		"width":  b.Width,
		"height": b.Height,
	})
	return err
}

// GetBounds returns the window's current rectangle.
func (c *Client) GetBounds(ctx context.Context, window wire.WindowID) (wire.Bounds, error) {
	data, err := c.conn.Call(ctx, wire.MethodGetBounds, window, nil)
	if err != nil {
		return wire.Bounds{}, err
	}
	var b wire.Bounds
	if err := json.Unmarshal(data, &b); err != nil {
		return wire.Bounds{}, fmt.Errorf("failed to parse getBounds result: %w", err)
	}
	return b, nil
}

// Center centers the window on its current display.
func (c *Client) Center(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodCenter, window)
}

// SetTitle changes the window title.
func (c *Client) SetTitle(ctx context.Context, window wire.WindowID, title string) error {
	_, err := c.conn.Call(ctx, wire.MethodSetTitle, window, wire.Args{"title": title})
	return err
}

// SetTitleBarStyle switches the title bar between normal and hidden.
func (c *Client) SetTitleBarStyle(ctx context.Context, window wire.WindowID, style wire.TitleBarStyle) error {
	if !wire.ValidTitleBarStyle(style) {
		return fmt.Errorf("invalid title bar style %q", style)
	}
	_, err := c.conn.Call(ctx, wire.MethodSetTitleBarStyle, window, wire.Args{"style": string(style)})
	return err
}

// SetAlwaysOnTop pins or unpins the window above others.
func (c *Client) SetAlwaysOnTop(ctx context.Context, window wire.WindowID, onTop bool) error {
	_, err := c.conn.Call(ctx, wire.MethodSetAlwaysOnTop, window, wire.Args{"onTop": onTop})
	return err
}

// SetResizable allows or forbids interactive resizing.
func (c *Client) SetResizable(ctx context.Context, window wire.WindowID, resizable bool) error {
	_, err := c.conn.Call(ctx, wire.MethodSetResizable, window, wire.Args{"resizable": resizable})
	return err
}

// SetMinimumSize constrains the window's minimum dimensions.
func (c *Client) SetMinimumSize(ctx context.Context, window wire.WindowID, width, height int) error {
	_, err := c.conn.Call(ctx, wire.MethodSetMinimumSize, window, wire.Args{"width": width, "height": height})
	return err
}

// SetMaximumSize constrains the window's maximum dimensions.
func (c *Client) SetMaximumSize(ctx context.Context, window wire.WindowID, width, height int) error {
	_, err := c.conn.Call(ctx, wire.MethodSetMaximumSize, window, wire.Args{"width": width, "height": height})
	return err
}

// SetOpacity sets the window opacity in [0.0, 1.0].
func (c *Client) SetOpacity(ctx context.Context, window wire.WindowID, opacity float64) error {
	if opacity < 0 || opacity > 1 {
		return fmt.Errorf("opacity %v out of range [0, 1]", opacity)
	}
	_, err := c.conn.Call(ctx, wire.MethodSetOpacity, window, wire.Args{"opacity": opacity})
	return err
}

// StartDragging hands the current pointer grab to the window manager as a
// move gesture. Geometry tracking happens entirely on the native side.
func (c *Client) StartDragging(ctx context.Context, window wire.WindowID) error {
	return c.simple(ctx, wire.MethodStartDragging, window)
}

// StartResizing starts a window-manager resize gesture from the given edge.
func (c *Client) StartResizing(ctx context.Context, window wire.WindowID, edge wire.ResizeEdge) error {
	if !wire.ValidResizeEdge(edge) {
		return fmt.Errorf("invalid resize edge %q", edge)
	}
	_, err := c.conn.Call(ctx, wire.MethodStartResizing, window, wire.Args{"edge": string(edge)})
	return err
}

// ListWindows returns every top-level window the host manages or sees.
func (c *Client) ListWindows(ctx context.Context) ([]wire.WindowInfo, error) {
	data, err := c.conn.Call(ctx, wire.MethodListWindows, 0, nil)
	if err != nil {
		return nil, err
	}
	var wd wire.WindowsData
	if err := json.Unmarshal(data, &wd); err != nil {
		return nil, fmt.Errorf("failed to parse listWindows result: %w", err)
	}
	return wd.Windows, nil
}

// Displays returns the host's physical display layout.
func (c *Client) Displays(ctx context.Context) ([]wire.DisplayInfo, error) {
	data, err := c.conn.Call(ctx, wire.MethodGetDisplays, 0, nil)
	if err != nil {
		return nil, err
	}
	var dd wire.DisplaysData
	if err := json.Unmarshal(data, &dd); err != nil {
		return nil, fmt.Errorf("failed to parse getDisplays result: %w", err)
	}
	return dd.Displays, nil
}
