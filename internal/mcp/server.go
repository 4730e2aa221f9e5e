package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/wire"
)

const (
	ServerName    = "winbridge"
	ServerVersion = "0.1.0"
)

// WindowCaller is the slice of the bridge client the tools need. Tests
// substitute an in-memory implementation.
type WindowCaller interface {
	ListWindows(ctx context.Context) ([]wire.WindowInfo, error)
	Displays(ctx context.Context) ([]wire.DisplayInfo, error)
	GetBounds(ctx context.Context, window wire.WindowID) (wire.Bounds, error)
	SetBounds(ctx context.Context, window wire.WindowID, b wire.Bounds) error
	Focus(ctx context.Context, window wire.WindowID) error
	Minimize(ctx context.Context, window wire.WindowID) error
	CloseWindow(ctx context.Context, window wire.WindowID) error
	SetFullScreen(ctx context.Context, window wire.WindowID, on bool) error
	SetAlwaysOnTop(ctx context.Context, window wire.WindowID, onTop bool) error
	SetTitle(ctx context.Context, window wire.WindowID, title string) error
}

// Server exposes window management over MCP. Every tool call is relayed
// through a bridge connection to the running host.
type Server struct {
	mcpServer *mcpsdk.Server
	caller    WindowCaller
	logger    zerolog.Logger
}

// NewServer creates an MCP server backed by the given bridge connection.
func NewServer(caller WindowCaller, logger zerolog.Logger) *Server {
	s := &Server{
		caller: caller,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all top-level windows with their IDs, titles and bounds. Window IDs from this list are the handles every other tool takes.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_displays",
		Description: "List connected displays with their geometry in the global coordinate space.",
	}, s.handleGetDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to a new origin, keeping its current size. Coordinates are global screen coordinates; use get_displays to find display bounds.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window to a new width and height, keeping its current origin.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window and give it keyboard focus.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize (iconify) a window.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fullscreen_window",
		Description: "Enter or leave fullscreen for a window. Defaults to entering fullscreen when no state is given.",
	}, s.handleFullscreenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_always_on_top",
		Description: "Pin a window above all other windows, or unpin it. Defaults to pinning when no state is given.",
	}, s.handleSetAlwaysOnTop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_title",
		Description: "Change a window's title.",
	}, s.handleSetWindowTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask a window to close. The application may refuse or prompt the user first.",
	}, s.handleCloseWindow)
}
