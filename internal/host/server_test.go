package host

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/bridge"
	"github.com/1broseidon/winbridge/internal/config"
	"github.com/1broseidon/winbridge/internal/platform"
	"github.com/1broseidon/winbridge/internal/wire"
)

// fakeBackend records operations and serves canned state.
type fakeBackend struct {
	ops     chan string
	windows []platform.Window
	bounds  platform.Rect
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		ops: make(chan string, 64),
		windows: []platform.Window{
			{ID: 1, Title: "editor", Bounds: platform.Rect{Width: 800, Height: 600}},
			{ID: 2, Title: "terminal", Bounds: platform.Rect{X: 800, Width: 400, Height: 300}},
		},
		bounds: platform.Rect{X: 10, Y: 20, Width: 300, Height: 200},
	}
}

func (f *fakeBackend) record(op string) { f.ops <- op }

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return []platform.Display{{ID: 0, Name: "eDP-1", Bounds: platform.Rect{Width: 1920, Height: 1080}}}, nil
}
func (f *fakeBackend) ListWindows() ([]platform.Window, error) { return f.windows, nil }
func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) { return 1, nil }
func (f *fakeBackend) CreateWindow(opts platform.CreateOptions) (platform.WindowID, error) {
	f.record("create:" + opts.Title)
	return 7, nil
}
func (f *fakeBackend) Show(id platform.WindowID) error    { f.record("show"); return nil }
func (f *fakeBackend) Hide(id platform.WindowID) error    { f.record("hide"); return nil }
func (f *fakeBackend) Focus(id platform.WindowID) error   { f.record("focus"); return nil }
func (f *fakeBackend) Blur(id platform.WindowID) error    { f.record("blur"); return nil }
func (f *fakeBackend) Close(id platform.WindowID) error   { f.record("close"); return nil }
func (f *fakeBackend) Destroy(id platform.WindowID) error { f.record("destroy"); return nil }
func (f *fakeBackend) Maximize(id platform.WindowID) error {
	f.record("maximize")
	return nil
}
func (f *fakeBackend) Unmaximize(id platform.WindowID) error { f.record("unmaximize"); return nil }
func (f *fakeBackend) IsMaximized(id platform.WindowID) (bool, error) {
	return true, nil
}
func (f *fakeBackend) Minimize(id platform.WindowID) error { f.record("minimize"); return nil }
func (f *fakeBackend) Restore(id platform.WindowID) error  { f.record("restore"); return nil }
func (f *fakeBackend) SetFullscreen(id platform.WindowID, on bool) error {
	f.record("fullscreen")
	return nil
}
func (f *fakeBackend) Bounds(id platform.WindowID) (platform.Rect, error) { return f.bounds, nil }
func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.bounds = bounds
	f.record("moveresize")
	return nil
}
func (f *fakeBackend) SetTitle(id platform.WindowID, title string) error {
	f.record("title:" + title)
	return nil
}
func (f *fakeBackend) SetTitleBarStyle(id platform.WindowID, style platform.TitleBarStyle) error {
	f.record("style:" + string(style))
	return nil
}
func (f *fakeBackend) SetAlwaysOnTop(id platform.WindowID, onTop bool) error {
	f.record("ontop")
	return nil
}
func (f *fakeBackend) SetResizable(id platform.WindowID, resizable bool) error {
	f.record("resizable")
	return nil
}
func (f *fakeBackend) SetMinimumSize(id platform.WindowID, w, h int) error {
	f.record("minsize")
	return nil
}
func (f *fakeBackend) SetMaximumSize(id platform.WindowID, w, h int) error {
	f.record("maxsize")
	return nil
}
func (f *fakeBackend) SetOpacity(id platform.WindowID, opacity float64) error {
	f.record("opacity")
	return nil
}
func (f *fakeBackend) StartMove(id platform.WindowID) error { f.record("startmove"); return nil }
func (f *fakeBackend) StartResize(id platform.WindowID, edge platform.ResizeEdge) error {
	f.record("startresize:" + string(edge))
	return nil
}
func (f *fakeBackend) Watch(stop <-chan struct{}, emit func(platform.Event)) error {
	<-stop
	return nil
}
func (f *fakeBackend) Disconnect() {}

var _ platform.Backend = (*fakeBackend)(nil)

func startServer(t *testing.T) (*Server, *fakeBackend, *bridge.Client) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "winbridge.sock")
	backend := newFakeBackend()
	srv := NewServer(socketPath, backend, config.Default(), zerolog.Nop())
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	client, err := bridge.Connect(socketPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return srv, backend, client
}

func expectOp(t *testing.T, backend *fakeBackend, want string) {
	t.Helper()
	select {
	case got := <-backend.ops:
		if got != want {
			t.Errorf("backend op = %q, want %q", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("backend never saw op %q", want)
	}
}

func TestListWindowsEndToEnd(t *testing.T) {
	_, _, client := startServer(t)

	windows, err := client.ListWindows(context.Background())
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) != 2 || windows[0].Title != "editor" || windows[1].ID != 2 {
		t.Errorf("windows = %+v", windows)
	}
}

func TestCallForwardsToBackend(t *testing.T) {
	_, backend, client := startServer(t)
	ctx := context.Background()

	if err := client.Focus(ctx, 1); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	expectOp(t, backend, "focus")

	if err := client.SetBounds(ctx, 1, wire.Bounds{X: 5, Y: 6, Width: 700, Height: 500}); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	expectOp(t, backend, "moveresize")

	bounds, err := client.GetBounds(ctx, 1)
	if err != nil {
		t.Fatalf("GetBounds: %v", err)
	}
	if bounds != (wire.Bounds{X: 5, Y: 6, Width: 700, Height: 500}) {
		t.Errorf("bounds = %+v", bounds)
	}

	if err := client.StartResizing(ctx, 1, wire.EdgeBottomRight); err != nil {
		t.Fatalf("StartResizing: %v", err)
	}
	expectOp(t, backend, "startresize:bottomRight")
}

func TestCreateWindowUsesConfigDefaults(t *testing.T) {
	_, backend, client := startServer(t)

	id, err := client.CreateWindow(context.Background(), bridge.CreateWindowOptions{Title: "popup"})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if id != 7 {
		t.Errorf("window id = %d, want 7", id)
	}
	expectOp(t, backend, "create:popup")
}

func TestCreateSubWindowRequiresParent(t *testing.T) {
	_, _, client := startServer(t)

	_, err := client.CreateSubWindow(context.Background(), 0, bridge.CreateWindowOptions{})
	if err == nil {
		t.Fatal("expected error for missing parent")
	}
	if _, ok := err.(*bridge.RemoteError); !ok {
		t.Errorf("error type = %T, want *bridge.RemoteError", err)
	}
}

func TestUnknownMethodReturnsRemoteError(t *testing.T) {
	srv, _, _ := startServer(t)

	res := srv.handleCall(&wire.Call{ID: 3, Method: "teleport"})
	if res.Status != wire.StatusError {
		t.Fatalf("status = %q, want ERROR", res.Status)
	}
	if res.Error == "" {
		t.Error("error message is empty")
	}
}

func TestSetBoundsRejectsMissingArgs(t *testing.T) {
	srv, _, _ := startServer(t)

	res := srv.handleCall(&wire.Call{
		ID:     4,
		Method: wire.MethodSetBounds,
		Window: 1,
		Args:   wire.Args{"x": float64(1), "y": float64(2)},
	})
	if res.Status != wire.StatusError {
		t.Errorf("status = %q, want ERROR for missing width/height", res.Status)
	}
}

func TestBroadcastReachesBridgeDispatcher(t *testing.T) {
	srv, _, client := startServer(t)

	got := make(chan wire.Event, 1)
	client.Events().AddListener(&bridge.ListenerFuncs{
		OnMaximize: func(ev wire.Event) { got <- ev },
	})

	// The bridge registers its connection asynchronously; wait for the
	// server to see it before broadcasting.
	deadline := time.After(time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.conns)
		srv.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("bridge connection never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	srv.Broadcast(wire.Event{Name: wire.EventMaximize, Window: 2})

	select {
	case ev := <-got:
		if ev.Window != 2 {
			t.Errorf("event window = %d, want 2", ev.Window)
		}
	case <-time.After(time.Second):
		t.Fatal("event never reached the dispatcher")
	}
}

func TestCenterComputesFromDisplay(t *testing.T) {
	srv, backend, client := startServer(t)
	_ = srv

	if err := client.Center(context.Background(), 1); err != nil {
		t.Fatalf("Center: %v", err)
	}
	expectOp(t, backend, "moveresize")

	// 1920x1080 display, 300x200 window: centered at (810, 440).
	if backend.bounds.X != 810 || backend.bounds.Y != 440 {
		t.Errorf("centered origin = (%d, %d), want (810, 440)", backend.bounds.X, backend.bounds.Y)
	}
}
