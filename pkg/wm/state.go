package wm

import (
	"errors"
	"fmt"

	"webdesk/pkg/apps"
)

// Geometry limits.
const (
	// MinWidth is the smallest width a resize can produce.
	MinWidth = 400
	// MinHeight is the smallest height a resize can produce.
	MinHeight = 300
	// DefaultTaskbarHeight is the strip at the bottom of the screen that
	// maximized windows leave uncovered.
	DefaultTaskbarHeight = 64
)

// Point is a position in desktop pixels.
type Point = apps.Point

// WindowState represents the current state of a window.
type WindowState int

const (
	// WindowStateNormal indicates the window is visible at its own frame.
	WindowStateNormal WindowState = iota
	// WindowStateMinimized indicates the window is open but hidden from view.
	WindowStateMinimized
	// WindowStateMaximized indicates the window covers the workspace.
	WindowStateMaximized
)

// String returns a string representation of the window state.
func (s WindowState) String() string {
	switch s {
	case WindowStateNormal:
		return "normal"
	case WindowStateMinimized:
		return "minimized"
	case WindowStateMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s WindowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *WindowState) UnmarshalText(text []byte) error {
	for c := WindowStateNormal; c <= WindowStateMaximized; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown window state %q", text)
}

// InteractionMode is the pointer interaction a window is in.
type InteractionMode int

const (
	// InteractionNone means no pointer interaction is in progress.
	InteractionNone InteractionMode = iota
	// InteractionDragging means the title bar is held and moves the window.
	InteractionDragging
	// InteractionResizing means the corner handle is held and sizes the window.
	InteractionResizing
)

// String returns a string representation of the interaction mode.
func (m InteractionMode) String() string {
	switch m {
	case InteractionNone:
		return "none"
	case InteractionDragging:
		return "dragging"
	case InteractionResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m InteractionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *InteractionMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*m = InteractionNone
	case "dragging":
		*m = InteractionDragging
	case "resizing":
		*m = InteractionResizing
	default:
		return fmt.Errorf("unknown interaction mode %q", text)
	}
	return nil
}

// Region is the part of a window a pointer-down landed on.
type Region int

const (
	// RegionBody is the content area; it starts no interaction.
	RegionBody Region = iota
	// RegionTitle is the title bar; it starts a drag.
	RegionTitle
	// RegionResize is the bottom-right handle; it starts a resize.
	RegionResize
)

// String returns a string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionTitle:
		return "title"
	case RegionResize:
		return "resize"
	default:
		return "unknown"
	}
}

// ParseRegion parses the names produced by Region.String.
func ParseRegion(s string) (Region, error) {
	switch s {
	case "body", "":
		return RegionBody, nil
	case "title":
		return RegionTitle, nil
	case "resize":
		return RegionResize, nil
	default:
		return RegionBody, ErrInvalidRegion
	}
}

// Frame represents the position and dimensions of a window.
type Frame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position returns the top-left corner of the frame.
func (f Frame) Position() Point {
	return Point{X: f.X, Y: f.Y}
}

// Contains checks if a point is within the frame.
func (f Frame) Contains(x, y int) bool {
	return x >= f.X && x <= f.X+f.Width &&
		y >= f.Y && y <= f.Y+f.Height
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	OpenAppIDs      []string `json:"open_app_ids"`
	MinimizedAppIDs []string `json:"minimized_app_ids"`
	FocusedAppID    string   `json:"focused_app_id,omitempty"`
}

// IsOpen reports whether appID has an open window.
func (s Snapshot) IsOpen(appID string) bool {
	return contains(s.OpenAppIDs, appID)
}

// IsMinimized reports whether appID is open and minimized.
func (s Snapshot) IsMinimized(appID string) bool {
	return contains(s.MinimizedAppIDs, appID)
}

// Visible returns the open, non-minimized app ids in open order.
func (s Snapshot) Visible() []string {
	out := make([]string, 0, len(s.OpenAppIDs))
	for _, id := range s.OpenAppIDs {
		if !s.IsMinimized(id) {
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ErrUnknownApp is returned when an app id is not in the registry.
var ErrUnknownApp = errors.New("unknown application")

// ErrWindowNotFound is returned when an app has no open window.
var ErrWindowNotFound = errors.New("window not found")

// ErrWindowMinimized is returned when an operation needs a visible window.
var ErrWindowMinimized = errors.New("window is minimized")

// ErrInvalidRegion is returned when a region name cannot be parsed.
var ErrInvalidRegion = errors.New("invalid window region")
