package host

import (
	"fmt"

	"github.com/1broseidon/winbridge/internal/platform"
	"github.com/1broseidon/winbridge/internal/wire"
)

// handleCall dispatches one call to the backend and wraps the outcome in
// a result frame. Unknown methods are rejected here; the bridge forwards
// the message untouched.
func (s *Server) handleCall(call *wire.Call) *wire.Result {
	s.logger.Debug().
		Str("method", string(call.Method)).
		Uint32("window", uint32(call.Window)).
		Msg("call")

	data, err := s.dispatch(call)
	if err != nil {
		s.logger.Warn().
			Str("method", string(call.Method)).
			Err(err).
			Msg("call failed")
		return wire.NewErrorResult(call.ID, err.Error())
	}

	res, err := wire.NewOKResult(call.ID, data)
	if err != nil {
		return wire.NewErrorResult(call.ID, err.Error())
	}
	return res
}

func (s *Server) dispatch(call *wire.Call) (any, error) {
	id := platform.WindowID(call.Window)

	switch call.Method {
	case wire.MethodCreateWindow:
		return s.handleCreate(call.Args, 0)
	case wire.MethodCreateSubWindow:
		if call.Window == 0 {
			return nil, fmt.Errorf("createSubWindow requires a parent windowId")
		}
		return s.handleCreate(call.Args, id)
	case wire.MethodShow:
		return nil, s.backend.Show(id)
	case wire.MethodHide:
		return nil, s.backend.Hide(id)
	case wire.MethodFocus:
		return nil, s.backend.Focus(id)
	case wire.MethodBlur:
		return nil, s.backend.Blur(id)
	case wire.MethodClose:
		return nil, s.backend.Close(id)
	case wire.MethodDestroy:
		return nil, s.backend.Destroy(id)
	case wire.MethodMaximize:
		return nil, s.backend.Maximize(id)
	case wire.MethodUnmaximize:
		return nil, s.backend.Unmaximize(id)
	case wire.MethodIsMaximized:
		maximized, err := s.backend.IsMaximized(id)
		if err != nil {
			return nil, err
		}
		return wire.MaximizedData{Maximized: maximized}, nil
	case wire.MethodMinimize:
		return nil, s.backend.Minimize(id)
	case wire.MethodRestore:
		return nil, s.backend.Restore(id)
	case wire.MethodSetFullScreen:
		on, ok := call.Args.Bool("fullscreen")
		if !ok {
			return nil, fmt.Errorf("setFullScreen requires a fullscreen argument")
		}
		return nil, s.backend.SetFullscreen(id, on)
	case wire.MethodSetBounds:
		bounds, err := boundsArgs(call.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.backend.MoveResize(id, bounds)
	case wire.MethodGetBounds:
		bounds, err := s.backend.Bounds(id)
		if err != nil {
			return nil, err
		}
		return wire.Bounds{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}, nil
	case wire.MethodCenter:
		return nil, s.handleCenter(id)
	case wire.MethodSetTitle:
		title, ok := call.Args.String("title")
		if !ok {
			return nil, fmt.Errorf("setTitle requires a title argument")
		}
		return nil, s.backend.SetTitle(id, title)
	case wire.MethodSetTitleBarStyle:
		style, ok := call.Args.String("style")
		if !ok {
			return nil, fmt.Errorf("setTitleBarStyle requires a style argument")
		}
		return nil, s.backend.SetTitleBarStyle(id, platform.TitleBarStyle(style))
	case wire.MethodSetAlwaysOnTop:
		onTop, ok := call.Args.Bool("onTop")
		if !ok {
			return nil, fmt.Errorf("setAlwaysOnTop requires an onTop argument")
		}
		return nil, s.backend.SetAlwaysOnTop(id, onTop)
	case wire.MethodSetResizable:
		resizable, ok := call.Args.Bool("resizable")
		if !ok {
			return nil, fmt.Errorf("setResizable requires a resizable argument")
		}
		return nil, s.backend.SetResizable(id, resizable)
	case wire.MethodSetMinimumSize:
		width, height, err := sizeArgs(call.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.backend.SetMinimumSize(id, width, height)
	case wire.MethodSetMaximumSize:
		width, height, err := sizeArgs(call.Args)
		if err != nil {
			return nil, err
		}
		return nil, s.backend.SetMaximumSize(id, width, height)
	case wire.MethodSetOpacity:
		opacity, ok := call.Args.Float("opacity")
		if !ok {
			return nil, fmt.Errorf("setOpacity requires an opacity argument")
		}
		if opacity < 0 || opacity > 1 {
			return nil, fmt.Errorf("opacity %v out of range [0, 1]", opacity)
		}
		return nil, s.backend.SetOpacity(id, opacity)
	case wire.MethodStartDragging:
		return nil, s.backend.StartMove(id)
	case wire.MethodStartResizing:
		edge, ok := call.Args.String("edge")
		if !ok {
			return nil, fmt.Errorf("startResizing requires an edge argument")
		}
		if !wire.ValidResizeEdge(wire.ResizeEdge(edge)) {
			return nil, fmt.Errorf("unknown resize edge %q", edge)
		}
		return nil, s.backend.StartResize(id, platform.ResizeEdge(edge))
	case wire.MethodListWindows:
		return s.handleListWindows()
	case wire.MethodGetDisplays:
		return s.handleGetDisplays()
	default:
		return nil, fmt.Errorf("unknown method %q", call.Method)
	}
}

func (s *Server) handleCreate(args wire.Args, parent platform.WindowID) (any, error) {
	opts := platform.CreateOptions{Parent: parent}

	if title, ok := args.String("title"); ok {
		opts.Title = title
	}
	if hidden, ok := args.Bool("hidden"); ok {
		opts.Hidden = hidden
	}
	if onTop, ok := args.Bool("onTop"); ok {
		opts.AlwaysOnTop = onTop
	}
	if style, ok := args.String("style"); ok {
		opts.TitleBarStyle = platform.TitleBarStyle(style)
	}

	if _, ok := args.Int("width"); ok {
		bounds, err := boundsArgs(args)
		if err != nil {
			return nil, err
		}
		opts.Bounds = &bounds
	} else {
		opts.Bounds = &platform.Rect{
			Width:  s.cfg.WindowDefaults.Width,
			Height: s.cfg.WindowDefaults.Height,
		}
		if opts.TitleBarStyle == "" {
			opts.TitleBarStyle = platform.TitleBarStyle(s.cfg.WindowDefaults.TitleBarStyle)
		}
	}

	id, err := s.backend.CreateWindow(opts)
	if err != nil {
		return nil, err
	}
	return wire.CreatedData{WindowID: wire.WindowID(id)}, nil
}

// handleCenter moves the window to the middle of the display containing
// its current origin.
func (s *Server) handleCenter(id platform.WindowID) error {
	bounds, err := s.backend.Bounds(id)
	if err != nil {
		return err
	}
	displays, err := s.backend.Displays()
	if err != nil {
		return err
	}
	if len(displays) == 0 {
		return fmt.Errorf("no displays found")
	}

	target := displays[0]
	for _, d := range displays {
		if bounds.X >= d.Bounds.X && bounds.X < d.Bounds.X+d.Bounds.Width &&
			bounds.Y >= d.Bounds.Y && bounds.Y < d.Bounds.Y+d.Bounds.Height {
			target = d
			break
		}
	}

	centered := platform.Rect{
		X:      target.Bounds.X + (target.Bounds.Width-bounds.Width)/2,
		Y:      target.Bounds.Y + (target.Bounds.Height-bounds.Height)/2,
		Width:  bounds.Width,
		Height: bounds.Height,
	}
	return s.backend.MoveResize(id, centered)
}

func (s *Server) handleListWindows() (any, error) {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return nil, err
	}

	infos := make([]wire.WindowInfo, 0, len(windows))
	for _, w := range windows {
		infos = append(infos, wire.WindowInfo{
			ID:    wire.WindowID(w.ID),
			Title: w.Title,
			AppID: w.AppID,
			PID:   w.PID,
			Bounds: wire.Bounds{
				X: w.Bounds.X, Y: w.Bounds.Y,
				Width: w.Bounds.Width, Height: w.Bounds.Height,
			},
		})
	}
	return wire.WindowsData{Windows: infos}, nil
}

func (s *Server) handleGetDisplays() (any, error) {
	displays, err := s.backend.Displays()
	if err != nil {
		return nil, err
	}

	infos := make([]wire.DisplayInfo, 0, len(displays))
	for _, d := range displays {
		infos = append(infos, wire.DisplayInfo{
			ID:     d.ID,
			Name:   d.Name,
			X:      d.Bounds.X,
			Y:      d.Bounds.Y,
			Width:  d.Bounds.Width,
			Height: d.Bounds.Height,
		})
	}
	return wire.DisplaysData{Displays: infos}, nil
}

func boundsArgs(args wire.Args) (platform.Rect, error) {
	x, okX := args.Int("x")
	y, okY := args.Int("y")
	width, okW := args.Int("width")
	height, okH := args.Int("height")
	if !okX || !okY || !okW || !okH {
		return platform.Rect{}, fmt.Errorf("bounds require x, y, width and height arguments")
	}
	if width <= 0 || height <= 0 {
		return platform.Rect{}, fmt.Errorf("bounds dimensions must be positive (got %dx%d)", width, height)
	}
	return platform.Rect{X: x, Y: y, Width: width, Height: height}, nil
}

func sizeArgs(args wire.Args) (int, int, error) {
	width, okW := args.Int("width")
	height, okH := args.Int("height")
	if !okW || !okH {
		return 0, 0, fmt.Errorf("size requires width and height arguments")
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size dimensions must be positive (got %dx%d)", width, height)
	}
	return width, height, nil
}
