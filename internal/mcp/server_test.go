package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/wire"
)

// stubCaller is an in-memory WindowCaller with two canned windows.
type stubCaller struct {
	bounds map[wire.WindowID]wire.Bounds
	calls  []string
}

func newStubCaller() *stubCaller {
	return &stubCaller{
		bounds: map[wire.WindowID]wire.Bounds{
			1: {X: 0, Y: 0, Width: 800, Height: 600},
			2: {X: 800, Y: 0, Width: 400, Height: 300},
		},
	}
}

func (c *stubCaller) record(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *stubCaller) ListWindows(ctx context.Context) ([]wire.WindowInfo, error) {
	return []wire.WindowInfo{
		{ID: 1, Title: "editor", Bounds: c.bounds[1]},
		{ID: 2, Title: "terminal", Bounds: c.bounds[2]},
	}, nil
}

func (c *stubCaller) Displays(ctx context.Context) ([]wire.DisplayInfo, error) {
	return []wire.DisplayInfo{{ID: 0, Name: "eDP-1", Width: 1920, Height: 1080}}, nil
}

func (c *stubCaller) GetBounds(ctx context.Context, window wire.WindowID) (wire.Bounds, error) {
	b, ok := c.bounds[window]
	if !ok {
		return wire.Bounds{}, fmt.Errorf("no such window %d", window)
	}
	return b, nil
}

func (c *stubCaller) SetBounds(ctx context.Context, window wire.WindowID, b wire.Bounds) error {
	c.bounds[window] = b
	c.record("setBounds:%d", window)
	return nil
}

func (c *stubCaller) Focus(ctx context.Context, window wire.WindowID) error {
	c.record("focus:%d", window)
	return nil
}

func (c *stubCaller) Minimize(ctx context.Context, window wire.WindowID) error {
	c.record("minimize:%d", window)
	return nil
}

func (c *stubCaller) CloseWindow(ctx context.Context, window wire.WindowID) error {
	c.record("close:%d", window)
	return nil
}

func (c *stubCaller) SetFullScreen(ctx context.Context, window wire.WindowID, on bool) error {
	c.record("fullscreen:%d:%v", window, on)
	return nil
}

func (c *stubCaller) SetAlwaysOnTop(ctx context.Context, window wire.WindowID, onTop bool) error {
	c.record("ontop:%d:%v", window, onTop)
	return nil
}

func (c *stubCaller) SetTitle(ctx context.Context, window wire.WindowID, title string) error {
	c.record("title:%d:%s", window, title)
	return nil
}

func newTestServer() (*Server, *stubCaller) {
	caller := newStubCaller()
	return NewServer(caller, zerolog.Nop()), caller
}

func lastCall(t *testing.T, caller *stubCaller) string {
	t.Helper()
	if len(caller.calls) == 0 {
		t.Fatal("no calls recorded")
	}
	return caller.calls[len(caller.calls)-1]
}

func TestListWindowsTool(t *testing.T) {
	srv, _ := newTestServer()

	_, out, err := srv.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("handleListWindows: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(out.Windows))
	}
	if out.Windows[0].Title != "editor" || out.Windows[0].Width != 800 {
		t.Errorf("first window = %+v", out.Windows[0])
	}
}

func TestGetDisplaysTool(t *testing.T) {
	srv, _ := newTestServer()

	_, out, err := srv.handleGetDisplays(context.Background(), nil, GetDisplaysInput{})
	if err != nil {
		t.Fatalf("handleGetDisplays: %v", err)
	}
	if len(out.Displays) != 1 || out.Displays[0].Name != "eDP-1" {
		t.Errorf("displays = %+v", out.Displays)
	}
}

func TestMoveWindowKeepsSize(t *testing.T) {
	srv, caller := newTestServer()

	_, out, err := srv.handleMoveWindow(context.Background(), nil, MoveWindowInput{Window: 1, X: 100, Y: 50})
	if err != nil {
		t.Fatalf("handleMoveWindow: %v", err)
	}
	if out.X != 100 || out.Y != 50 || out.Width != 800 || out.Height != 600 {
		t.Errorf("bounds = %+v", out)
	}
	if caller.bounds[1] != (wire.Bounds{X: 100, Y: 50, Width: 800, Height: 600}) {
		t.Errorf("stored bounds = %+v", caller.bounds[1])
	}
}

func TestResizeWindowKeepsOrigin(t *testing.T) {
	srv, caller := newTestServer()

	_, out, err := srv.handleResizeWindow(context.Background(), nil, ResizeWindowInput{Window: 2, Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("handleResizeWindow: %v", err)
	}
	if out.X != 800 || out.Width != 640 || out.Height != 480 {
		t.Errorf("bounds = %+v", out)
	}
	if caller.bounds[2].X != 800 {
		t.Errorf("origin moved: %+v", caller.bounds[2])
	}
}

func TestResizeWindowRejectsNonPositiveSize(t *testing.T) {
	srv, caller := newTestServer()

	_, _, err := srv.handleResizeWindow(context.Background(), nil, ResizeWindowInput{Window: 1, Width: 0, Height: 480})
	if err == nil {
		t.Fatal("expected error for zero width")
	}
	if len(caller.calls) != 0 {
		t.Errorf("caller was invoked despite invalid input: %v", caller.calls)
	}
}

func TestMoveWindowUnknownWindow(t *testing.T) {
	srv, _ := newTestServer()

	_, _, err := srv.handleMoveWindow(context.Background(), nil, MoveWindowInput{Window: 99, X: 0, Y: 0})
	if err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestFullscreenDefaultsToEnter(t *testing.T) {
	srv, caller := newTestServer()

	_, _, err := srv.handleFullscreenWindow(context.Background(), nil, FullscreenWindowInput{Window: 1})
	if err != nil {
		t.Fatalf("handleFullscreenWindow: %v", err)
	}
	if got := lastCall(t, caller); got != "fullscreen:1:true" {
		t.Errorf("call = %q", got)
	}

	off := false
	_, _, err = srv.handleFullscreenWindow(context.Background(), nil, FullscreenWindowInput{Window: 1, Fullscreen: &off})
	if err != nil {
		t.Fatalf("handleFullscreenWindow: %v", err)
	}
	if got := lastCall(t, caller); got != "fullscreen:1:false" {
		t.Errorf("call = %q", got)
	}
}

func TestSetAlwaysOnTopDefaultsToPin(t *testing.T) {
	srv, caller := newTestServer()

	_, _, err := srv.handleSetAlwaysOnTop(context.Background(), nil, SetAlwaysOnTopInput{Window: 2})
	if err != nil {
		t.Fatalf("handleSetAlwaysOnTop: %v", err)
	}
	if got := lastCall(t, caller); got != "ontop:2:true" {
		t.Errorf("call = %q", got)
	}
}

func TestSetWindowTitleRequiresTitle(t *testing.T) {
	srv, caller := newTestServer()

	_, _, err := srv.handleSetWindowTitle(context.Background(), nil, SetWindowTitleInput{Window: 1})
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if len(caller.calls) != 0 {
		t.Errorf("caller was invoked despite empty title: %v", caller.calls)
	}

	_, out, err := srv.handleSetWindowTitle(context.Background(), nil, SetWindowTitleInput{Window: 1, Title: "scratch"})
	if err != nil {
		t.Fatalf("handleSetWindowTitle: %v", err)
	}
	if !out.Done {
		t.Error("Done = false")
	}
	if got := lastCall(t, caller); got != "title:1:scratch" {
		t.Errorf("call = %q", got)
	}
}

func TestSimpleWindowTools(t *testing.T) {
	tests := []struct {
		name string
		call func(s *Server, window uint32) error
		want string
	}{
		{"focus", func(s *Server, w uint32) error {
			_, _, err := s.handleFocusWindow(context.Background(), nil, WindowRefInput{Window: w})
			return err
		}, "focus:1"},
		{"minimize", func(s *Server, w uint32) error {
			_, _, err := s.handleMinimizeWindow(context.Background(), nil, WindowRefInput{Window: w})
			return err
		}, "minimize:1"},
		{"close", func(s *Server, w uint32) error {
			_, _, err := s.handleCloseWindow(context.Background(), nil, WindowRefInput{Window: w})
			return err
		}, "close:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, caller := newTestServer()
			if err := tt.call(srv, 1); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if got := lastCall(t, caller); got != tt.want {
				t.Errorf("call = %q, want %q", got, tt.want)
			}
		})
	}
}
