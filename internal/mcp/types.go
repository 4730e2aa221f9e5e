package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowSummary describes one managed window.
type WindowSummary struct {
	ID     uint32 `json:"id"`
	Title  string `json:"title"`
	AppID  string `json:"app_id,omitempty"`
	PID    int    `json:"pid,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

// GetDisplaysInput is the input for the get_displays tool.
type GetDisplaysInput struct{}

// DisplaySummary describes one connected display.
type DisplaySummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GetDisplaysOutput is the output for the get_displays tool.
type GetDisplaysOutput struct {
	Displays []DisplaySummary `json:"displays"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
	X      int    `json:"x" jsonschema:"required,New X origin in screen coordinates"`
	Y      int    `json:"y" jsonschema:"required,New Y origin in screen coordinates"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
	Width  int    `json:"width" jsonschema:"required,New width in pixels (must be positive)"`
	Height int    `json:"height" jsonschema:"required,New height in pixels (must be positive)"`
}

// BoundsOutput reports the window's bounds after a geometry change.
type BoundsOutput struct {
	Window uint32 `json:"window"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowRefInput addresses a single window with no further arguments.
type WindowRefInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
}

// WindowRefOutput acknowledges an operation on a single window.
type WindowRefOutput struct {
	Window uint32 `json:"window"`
	Done   bool   `json:"done"`
}

// FullscreenWindowInput is the input for the fullscreen_window tool.
type FullscreenWindowInput struct {
	Window     uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
	Fullscreen *bool  `json:"fullscreen,omitempty" jsonschema:"Target state. Defaults to true (enter fullscreen)."`
}

// SetAlwaysOnTopInput is the input for the set_always_on_top tool.
type SetAlwaysOnTopInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
	OnTop  *bool  `json:"on_top,omitempty" jsonschema:"Target state. Defaults to true (pin above other windows)."`
}

// SetWindowTitleInput is the input for the set_window_title tool.
type SetWindowTitleInput struct {
	Window uint32 `json:"window" jsonschema:"required,Window ID from list_windows"`
	Title  string `json:"title" jsonschema:"required,New window title"`
}
