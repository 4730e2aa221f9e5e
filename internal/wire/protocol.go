package wire

import (
	"encoding/json"
	"fmt"
)

// Method names the remote operations the bridge can request from the
// native host. The catalog is fixed; the host rejects anything else.
type Method string

const (
	MethodCreateWindow     Method = "createWindow"
	MethodCreateSubWindow  Method = "createSubWindow"
	MethodShow             Method = "show"
	MethodHide             Method = "hide"
	MethodFocus            Method = "focus"
	MethodBlur             Method = "blur"
	MethodClose            Method = "close"
	MethodDestroy          Method = "destroy"
	MethodMaximize         Method = "maximize"
	MethodUnmaximize       Method = "unmaximize"
	MethodIsMaximized      Method = "isMaximized"
	MethodMinimize         Method = "minimize"
	MethodRestore          Method = "restore"
	MethodSetFullScreen    Method = "setFullScreen"
	MethodSetBounds        Method = "setBounds"
	MethodGetBounds        Method = "getBounds"
	MethodCenter           Method = "center"
	MethodSetTitle         Method = "setTitle"
	MethodSetTitleBarStyle Method = "setTitleBarStyle"
	MethodSetAlwaysOnTop   Method = "setAlwaysOnTop"
	MethodSetResizable     Method = "setResizable"
	MethodSetMinimumSize   Method = "setMinimumSize"
	MethodSetMaximumSize   Method = "setMaximumSize"
	MethodSetOpacity       Method = "setOpacity"
	MethodStartDragging    Method = "startDragging"
	MethodStartResizing    Method = "startResizing"
	MethodListWindows      Method = "listWindows"
	MethodGetDisplays      Method = "getDisplays"
)

// EventName tags an unsolicited window-lifecycle notification from the host.
type EventName string

const (
	EventClose           EventName = "close"
	EventFocus           EventName = "focus"
	EventBlur            EventName = "blur"
	EventMaximize        EventName = "maximize"
	EventUnmaximize      EventName = "unmaximize"
	EventMinimize        EventName = "minimize"
	EventRestore         EventName = "restore"
	EventResize          EventName = "resize"
	EventResized         EventName = "resized"
	EventMove            EventName = "move"
	EventMoved           EventName = "moved"
	EventEnterFullScreen EventName = "enter-full-screen"
	EventLeaveFullScreen EventName = "leave-full-screen"
)

var knownEvents = map[EventName]struct{}{
	EventClose:           {},
	EventFocus:           {},
	EventBlur:            {},
	EventMaximize:        {},
	EventUnmaximize:      {},
	EventMinimize:        {},
	EventRestore:         {},
	EventResize:          {},
	EventResized:         {},
	EventMove:            {},
	EventMoved:           {},
	EventEnterFullScreen: {},
	EventLeaveFullScreen: {},
}

// KnownEvent reports whether name is part of the fixed event enumeration.
func KnownEvent(name EventName) bool {
	_, ok := knownEvents[name]
	return ok
}

// WindowID is a host-assigned identifier for a top-level window.
type WindowID uint32

// TitleBarStyle selects the decoration mode for a window's title bar.
type TitleBarStyle string

const (
	TitleBarNormal TitleBarStyle = "normal"
	TitleBarHidden TitleBarStyle = "hidden"
)

// ValidTitleBarStyle reports whether s is an accepted style value.
func ValidTitleBarStyle(s TitleBarStyle) bool {
	return s == TitleBarNormal || s == TitleBarHidden
}

// ResizeEdge names the window edge or corner a resize gesture starts from.
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

var resizeEdges = map[ResizeEdge]struct{}{
	EdgeTop: {}, EdgeBottom: {}, EdgeLeft: {}, EdgeRight: {},
	EdgeTopLeft: {}, EdgeTopRight: {}, EdgeBottomLeft: {}, EdgeBottomRight: {},
}

// ValidResizeEdge reports whether e is an accepted edge value.
func ValidResizeEdge(e ResizeEdge) bool {
	_, ok := resizeEdges[e]
	return ok
}

// Args is a flat argument mapping of primitive values. Absent optional
// fields are left out of the map entirely, never sent as null.
type Args map[string]any

// Int reads an integer argument. JSON numbers decode as float64.
func (a Args) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// String reads a string argument.
func (a Args) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Bool reads a boolean argument.
func (a Args) Bool(key string) (bool, bool) {
	b, ok := a[key].(bool)
	return b, ok
}

// Float reads a floating-point argument.
func (a Args) Float(key string) (float64, bool) {
	f, ok := a[key].(float64)
	return f, ok
}

// FrameType discriminates the three frame shapes on the wire.
type FrameType string

const (
	FrameCall   FrameType = "call"
	FrameResult FrameType = "result"
	FrameEvent  FrameType = "event"
)

// Call is a named remote invocation sent from the bridge to the host.
type Call struct {
	ID     uint64   `json:"id"`
	Method Method   `json:"method"`
	Window WindowID `json:"windowId,omitempty"`
	Args   Args     `json:"args,omitempty"`
}

// Result answers exactly one Call, matched by ID.
type Result struct {
	ID     uint64          `json:"id"`
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Event is an unsolicited lifecycle notification from the host. It carries
// no ID; delivery order is the host's emission order.
type Event struct {
	Name   EventName `json:"event"`
	Window WindowID  `json:"windowId,omitempty"`
	Params Args      `json:"params,omitempty"`
}

// Envelope is the decoded form of any frame. Exactly one of the payload
// groups is meaningful depending on Type.
type Envelope struct {
	Type FrameType `json:"type"`

	// call
	ID     uint64   `json:"id,omitempty"`
	Method Method   `json:"method,omitempty"`
	Window WindowID `json:"windowId,omitempty"`
	Args   Args     `json:"args,omitempty"`

	// result
	Status string          `json:"status,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`

	// event
	Name   EventName `json:"event,omitempty"`
	Params Args      `json:"params,omitempty"`
}

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// EncodeCall marshals a call frame as a single newline-terminated line.
func EncodeCall(c *Call) ([]byte, error) {
	return encodeLine(&Envelope{
		Type:   FrameCall,
		ID:     c.ID,
		Method: c.Method,
		Window: c.Window,
		Args:   c.Args,
	})
}

// EncodeResult marshals a result frame.
func EncodeResult(r *Result) ([]byte, error) {
	return encodeLine(&Envelope{
		Type:   FrameResult,
		ID:     r.ID,
		Status: r.Status,
		Data:   r.Data,
		Error:  r.Error,
	})
}

// EncodeEvent marshals an event frame.
func EncodeEvent(ev *Event) ([]byte, error) {
	return encodeLine(&Envelope{
		Type:   FrameEvent,
		Name:   ev.Name,
		Window: ev.Window,
		Params: ev.Params,
	})
}

func encodeLine(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s frame: %w", env.Type, err)
	}
	return append(data, '\n'), nil
}

// Decode parses one frame line into its envelope.
func Decode(line []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("failed to parse frame: %w", err)
	}
	switch env.Type {
	case FrameCall, FrameResult, FrameEvent:
		return &env, nil
	default:
		return nil, fmt.Errorf("unknown frame type %q", env.Type)
	}
}

// AsCall reprojects a call envelope.
func (env *Envelope) AsCall() *Call {
	return &Call{ID: env.ID, Method: env.Method, Window: env.Window, Args: env.Args}
}

// AsResult reprojects a result envelope.
func (env *Envelope) AsResult() *Result {
	return &Result{ID: env.ID, Status: env.Status, Data: env.Data, Error: env.Error}
}

// AsEvent reprojects an event envelope.
func (env *Envelope) AsEvent() *Event {
	return &Event{Name: env.Name, Window: env.Window, Params: env.Params}
}

// NewOKResult builds a successful result, marshaling data when present.
func NewOKResult(id uint64, data any) (*Result, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result data: %w", err)
		}
		raw = b
	}
	return &Result{ID: id, Status: StatusOK, Data: raw}, nil
}

// NewErrorResult builds an error result carrying the remote message verbatim.
func NewErrorResult(id uint64, errMsg string) *Result {
	return &Result{ID: id, Status: StatusError, Error: errMsg}
}

// Bounds is a window rectangle in screen coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowInfo describes one top-level window in listWindows results.
type WindowInfo struct {
	ID     WindowID `json:"windowId"`
	Title  string   `json:"title"`
	AppID  string   `json:"appId,omitempty"`
	PID    int      `json:"pid,omitempty"`
	Bounds Bounds   `json:"bounds"`
}

// WindowsData is the data payload of a listWindows result.
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// DisplayInfo describes one physical display in getDisplays results.
type DisplayInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DisplaysData is the data payload of a getDisplays result.
type DisplaysData struct {
	Displays []DisplayInfo `json:"displays"`
}

// CreatedData is the data payload of createWindow and createSubWindow.
type CreatedData struct {
	WindowID WindowID `json:"windowId"`
}

// MaximizedData is the data payload of isMaximized.
type MaximizedData struct {
	Maximized bool `json:"maximized"`
}
