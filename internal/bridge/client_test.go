package bridge

import (
	"context"
	"testing"

	"github.com/1broseidon/winbridge/internal/wire"
)

// startClient runs a client against a fake host that records every call
// and answers OK with the given data payload.
func startClient(t *testing.T, data any) (*Client, *[]wire.Call) {
	t.Helper()
	var calls []wire.Call
	conn, _ := startFakeHost(t, func(call *wire.Call) *wire.Result {
		calls = append(calls, *call)
		res, err := wire.NewOKResult(call.ID, data)
		if err != nil {
			t.Errorf("NewOKResult: %v", err)
			return wire.NewErrorResult(call.ID, err.Error())
		}
		return res
	})
	return NewClient(conn), &calls
}

func TestSetBoundsArgMapping(t *testing.T) {
	client, calls := startClient(t, nil)

	err := client.SetBounds(context.Background(), 11, wire.Bounds{X: 100, Y: 50, Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("SetBounds: %v", err)
	}

	call := (*calls)[0]
	if call.Method != wire.MethodSetBounds || call.Window != 11 {
		t.Fatalf("call = %+v", call)
	}
	for key, want := range map[string]int{"x": 100, "y": 50, "width": 640, "height": 480} {
		if got, ok := call.Args.Int(key); !ok || got != want {
			t.Errorf("args[%q] = %d (%v), want %d", key, got, ok, want)
		}
	}
}

func TestCreateWindowOmitsAbsentOptionals(t *testing.T) {
	client, calls := startClient(t, wire.CreatedData{WindowID: 21})

	id, err := client.CreateWindow(context.Background(), CreateWindowOptions{Title: "demo"})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if id != 21 {
		t.Errorf("window id = %d, want 21", id)
	}

	call := (*calls)[0]
	if title, ok := call.Args.String("title"); !ok || title != "demo" {
		t.Errorf("args title = %q, %v", title, ok)
	}
	for _, key := range []string{"x", "y", "width", "height", "hidden", "onTop", "style"} {
		if _, present := call.Args[key]; present {
			t.Errorf("absent optional %q was serialized: %v", key, call.Args[key])
		}
	}
}

func TestCreateSubWindowCarriesParentAndBounds(t *testing.T) {
	client, calls := startClient(t, wire.CreatedData{WindowID: 33})

	id, err := client.CreateSubWindow(context.Background(), 7, CreateWindowOptions{
		Title:  "inspector",
		Bounds: &wire.Bounds{X: 0, Y: 0, Width: 300, Height: 200},
		Hidden: true,
	})
	if err != nil {
		t.Fatalf("CreateSubWindow: %v", err)
	}
	if id != 33 {
		t.Errorf("window id = %d, want 33", id)
	}

	call := (*calls)[0]
	if call.Method != wire.MethodCreateSubWindow || call.Window != 7 {
		t.Fatalf("call = %+v", call)
	}
	if w, ok := call.Args.Int("width"); !ok || w != 300 {
		t.Errorf("args width = %d, %v", w, ok)
	}
	if hidden, ok := call.Args.Bool("hidden"); !ok || !hidden {
		t.Errorf("args hidden = %v, %v", hidden, ok)
	}
}

func TestSetTitleBarStyleRejectsUnknownStyle(t *testing.T) {
	client, calls := startClient(t, nil)

	if err := client.SetTitleBarStyle(context.Background(), 1, "frameless"); err == nil {
		t.Error("expected error for unknown style")
	}
	if len(*calls) != 0 {
		t.Error("invalid style still produced a remote call")
	}

	if err := client.SetTitleBarStyle(context.Background(), 1, wire.TitleBarHidden); err != nil {
		t.Fatalf("SetTitleBarStyle: %v", err)
	}
	if style, ok := (*calls)[0].Args.String("style"); !ok || style != "hidden" {
		t.Errorf("args style = %q, %v", style, ok)
	}
}

func TestStartResizingValidatesEdge(t *testing.T) {
	client, calls := startClient(t, nil)

	if err := client.StartResizing(context.Background(), 2, "diagonal"); err == nil {
		t.Error("expected error for unknown edge")
	}
	if len(*calls) != 0 {
		t.Error("invalid edge still produced a remote call")
	}

	if err := client.StartResizing(context.Background(), 2, wire.EdgeBottomRight); err != nil {
		t.Fatalf("StartResizing: %v", err)
	}
	call := (*calls)[0]
	if call.Method != wire.MethodStartResizing {
		t.Errorf("method = %q", call.Method)
	}
	if edge, ok := call.Args.String("edge"); !ok || edge != "bottomRight" {
		t.Errorf("args edge = %q, %v", edge, ok)
	}
}

func TestSetOpacityRange(t *testing.T) {
	client, calls := startClient(t, nil)

	if err := client.SetOpacity(context.Background(), 3, 1.5); err == nil {
		t.Error("expected error for opacity above 1")
	}
	if err := client.SetOpacity(context.Background(), 3, -0.1); err == nil {
		t.Error("expected error for negative opacity")
	}
	if len(*calls) != 0 {
		t.Error("out-of-range opacity still produced a remote call")
	}

	if err := client.SetOpacity(context.Background(), 3, 0.85); err != nil {
		t.Fatalf("SetOpacity: %v", err)
	}
	if v, ok := (*calls)[0].Args.Float("opacity"); !ok || v != 0.85 {
		t.Errorf("args opacity = %v, %v", v, ok)
	}
}

func TestSimpleMethodsUseCatalogNames(t *testing.T) {
	tests := []struct {
		name   string
		invoke func(*Client) error
		want   wire.Method
	}{
		{"show", func(c *Client) error { return c.Show(context.Background(), 1) }, wire.MethodShow},
		{"hide", func(c *Client) error { return c.Hide(context.Background(), 1) }, wire.MethodHide},
		{"focus", func(c *Client) error { return c.Focus(context.Background(), 1) }, wire.MethodFocus},
		{"blur", func(c *Client) error { return c.Blur(context.Background(), 1) }, wire.MethodBlur},
		{"close", func(c *Client) error { return c.CloseWindow(context.Background(), 1) }, wire.MethodClose},
		{"destroy", func(c *Client) error { return c.Destroy(context.Background(), 1) }, wire.MethodDestroy},
		{"maximize", func(c *Client) error { return c.Maximize(context.Background(), 1) }, wire.MethodMaximize},
		{"unmaximize", func(c *Client) error { return c.Unmaximize(context.Background(), 1) }, wire.MethodUnmaximize},
		{"minimize", func(c *Client) error { return c.Minimize(context.Background(), 1) }, wire.MethodMinimize},
		{"restore", func(c *Client) error { return c.Restore(context.Background(), 1) }, wire.MethodRestore},
		{"center", func(c *Client) error { return c.Center(context.Background(), 1) }, wire.MethodCenter},
		{"startDragging", func(c *Client) error { return c.StartDragging(context.Background(), 1) }, wire.MethodStartDragging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := startClient(t, nil)
			if err := tt.invoke(client); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			call := (*calls)[0]
			if call.Method != tt.want {
				t.Errorf("method = %q, want %q", call.Method, tt.want)
			}
			if len(call.Args) != 0 {
				t.Errorf("unexpected args for %s: %v", tt.name, call.Args)
			}
		})
	}
}

func TestSetFullScreenArg(t *testing.T) {
	client, calls := startClient(t, nil)

	if err := client.SetFullScreen(context.Background(), 4, true); err != nil {
		t.Fatalf("SetFullScreen: %v", err)
	}
	if on, ok := (*calls)[0].Args.Bool("fullscreen"); !ok || !on {
		t.Errorf("args fullscreen = %v, %v", on, ok)
	}

	if err := client.SetFullScreen(context.Background(), 4, false); err != nil {
		t.Fatalf("SetFullScreen: %v", err)
	}
	// false is a real value here, not an absent optional.
	if on, ok := (*calls)[1].Args.Bool("fullscreen"); !ok || on {
		t.Errorf("args fullscreen = %v, %v, want explicit false", on, ok)
	}
}

func TestListWindowsParsesResult(t *testing.T) {
	client, _ := startClient(t, wire.WindowsData{Windows: []wire.WindowInfo{
		{ID: 1, Title: "editor", Bounds: wire.Bounds{Width: 800, Height: 600}},
		{ID: 2, Title: "terminal"},
	}})

	windows, err := client.ListWindows(context.Background())
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) != 2 || windows[0].Title != "editor" || windows[1].ID != 2 {
		t.Errorf("windows = %+v", windows)
	}
}
