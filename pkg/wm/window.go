package wm

import "webdesk/pkg/apps"

// Window represents one application window and its pointer interaction.
// A Window only ever changes its own geometry; lifecycle changes go
// through the Manager.
type Window struct {
	ID        string          `json:"id"`
	AppID     string          `json:"app_id"`
	Title     string          `json:"title"`
	Frame     Frame           `json:"frame"`
	Maximized bool            `json:"maximized"`
	Z         int             `json:"z"`
	Mode      InteractionMode `json:"mode"`

	// Offset is the pointer position relative to the frame corner,
	// captured when a drag starts.
	Offset Point `json:"-"`
}

// NewWindow creates a window for appID at pos with the given size.
func NewWindow(id, appID, title string, pos Point, size apps.Size) *Window {
	return &Window{
		ID:    id,
		AppID: appID,
		Title: title,
		Frame: Frame{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height},
		Mode:  InteractionNone,
	}
}

// PointerDown starts a drag on the title region or a resize on the
// resize handle. It reports whether an interaction started. Nothing starts
// while the window is maximized or already interacting.
func (w *Window) PointerDown(region Region, p Point) bool {
	if w.Maximized || w.Mode != InteractionNone {
		return false
	}

	switch region {
	case RegionTitle:
		w.Offset = Point{X: p.X - w.Frame.X, Y: p.Y - w.Frame.Y}
		w.Mode = InteractionDragging
		return true
	case RegionResize:
		w.Mode = InteractionResizing
		return true
	default:
		return false
	}
}

// PointerMove applies the current interaction to p and reports whether the
// frame changed.
func (w *Window) PointerMove(p Point) bool {
	if w.Maximized {
		return false
	}

	before := w.Frame
	switch w.Mode {
	case InteractionDragging:
		w.Frame.X = p.X - w.Offset.X
		w.Frame.Y = p.Y - w.Offset.Y
	case InteractionResizing:
		w.Frame.Width = max(MinWidth, p.X-w.Frame.X)
		w.Frame.Height = max(MinHeight, p.Y-w.Frame.Y)
	default:
		return false
	}
	return w.Frame != before
}

// PointerUp ends any interaction and reports whether one was active.
func (w *Window) PointerUp() bool {
	active := w.Mode != InteractionNone
	w.Mode = InteractionNone
	w.Offset = Point{}
	return active
}

// ToggleMaximize flips the maximized flag and returns the new value. The
// held frame is left untouched, so restoring brings back the geometry the
// window had before it was maximized.
func (w *Window) ToggleMaximize() bool {
	w.PointerUp()
	w.Maximized = !w.Maximized
	return w.Maximized
}

// Layout returns the frame the window occupies on screen: the workspace
// when maximized, its own frame otherwise.
func (w *Window) Layout(workspace Frame) Frame {
	if w.Maximized {
		return workspace
	}
	return w.Frame
}
