package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winbridge/internal/wire"
)

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.caller.ListWindows(ctx)
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, WindowSummary{
			ID:     uint32(w.ID),
			Title:  w.Title,
			AppID:  w.AppID,
			PID:    w.PID,
			X:      w.Bounds.X,
			Y:      w.Bounds.Y,
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		})
	}

	s.logger.Debug().Int("count", len(out.Windows)).Msg("list_windows")
	return nil, out, nil
}

func (s *Server) handleGetDisplays(ctx context.Context, _ *mcpsdk.CallToolRequest, _ GetDisplaysInput) (*mcpsdk.CallToolResult, GetDisplaysOutput, error) {
	displays, err := s.caller.Displays(ctx)
	if err != nil {
		return nil, GetDisplaysOutput{}, err
	}

	out := GetDisplaysOutput{Displays: make([]DisplaySummary, 0, len(displays))}
	for _, d := range displays {
		out.Displays = append(out.Displays, DisplaySummary{
			ID:     d.ID,
			Name:   d.Name,
			X:      d.X,
			Y:      d.Y,
			Width:  d.Width,
			Height: d.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleMoveWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, BoundsOutput, error) {
	id := wire.WindowID(args.Window)

	current, err := s.caller.GetBounds(ctx, id)
	if err != nil {
		return nil, BoundsOutput{}, fmt.Errorf("window %d: %w", args.Window, err)
	}

	next := wire.Bounds{X: args.X, Y: args.Y, Width: current.Width, Height: current.Height}
	if err := s.caller.SetBounds(ctx, id, next); err != nil {
		return nil, BoundsOutput{}, err
	}

	s.logger.Info().Uint32("window", args.Window).Int("x", args.X).Int("y", args.Y).Msg("move_window")
	return nil, boundsOutput(args.Window, next), nil
}

func (s *Server) handleResizeWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, BoundsOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, BoundsOutput{}, fmt.Errorf("window size must be positive (got %dx%d)", args.Width, args.Height)
	}
	id := wire.WindowID(args.Window)

	current, err := s.caller.GetBounds(ctx, id)
	if err != nil {
		return nil, BoundsOutput{}, fmt.Errorf("window %d: %w", args.Window, err)
	}

	next := wire.Bounds{X: current.X, Y: current.Y, Width: args.Width, Height: args.Height}
	if err := s.caller.SetBounds(ctx, id, next); err != nil {
		return nil, BoundsOutput{}, err
	}

	s.logger.Info().Uint32("window", args.Window).Int("width", args.Width).Int("height", args.Height).Msg("resize_window")
	return nil, boundsOutput(args.Window, next), nil
}

func (s *Server) handleFocusWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	if err := s.caller.Focus(ctx, wire.WindowID(args.Window)); err != nil {
		return nil, WindowRefOutput{}, err
	}
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func (s *Server) handleMinimizeWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	if err := s.caller.Minimize(ctx, wire.WindowID(args.Window)); err != nil {
		return nil, WindowRefOutput{}, err
	}
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func (s *Server) handleFullscreenWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args FullscreenWindowInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	on := true
	if args.Fullscreen != nil {
		on = *args.Fullscreen
	}
	if err := s.caller.SetFullScreen(ctx, wire.WindowID(args.Window), on); err != nil {
		return nil, WindowRefOutput{}, err
	}
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func (s *Server) handleSetAlwaysOnTop(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetAlwaysOnTopInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	onTop := true
	if args.OnTop != nil {
		onTop = *args.OnTop
	}
	if err := s.caller.SetAlwaysOnTop(ctx, wire.WindowID(args.Window), onTop); err != nil {
		return nil, WindowRefOutput{}, err
	}
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func (s *Server) handleSetWindowTitle(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetWindowTitleInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	if args.Title == "" {
		return nil, WindowRefOutput{}, fmt.Errorf("title is required")
	}
	if err := s.caller.SetTitle(ctx, wire.WindowID(args.Window), args.Title); err != nil {
		return nil, WindowRefOutput{}, err
	}
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func (s *Server) handleCloseWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, WindowRefOutput, error) {
	if err := s.caller.CloseWindow(ctx, wire.WindowID(args.Window)); err != nil {
		return nil, WindowRefOutput{}, err
	}
	s.logger.Info().Uint32("window", args.Window).Msg("close_window")
	return nil, WindowRefOutput{Window: args.Window, Done: true}, nil
}

func boundsOutput(window uint32, b wire.Bounds) BoundsOutput {
	return BoundsOutput{Window: window, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}
