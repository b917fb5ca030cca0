package wm

import "fmt"

// EventType identifies a window lifecycle change.
type EventType int

const (
	// EventOpened is emitted when a window is created for an application.
	EventOpened EventType = iota
	// EventRestored is emitted when a minimized window becomes visible again.
	EventRestored
	// EventFocused is emitted when the focused window changes to a window.
	EventFocused
	// EventMinimized is emitted when a window is minimized.
	EventMinimized
	// EventClosed is emitted when a window is destroyed.
	EventClosed
	// EventMaximized is emitted when a window is maximized.
	EventMaximized
	// EventUnmaximized is emitted when a maximized window is restored.
	EventUnmaximized
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventOpened:
		return "opened"
	case EventRestored:
		return "restored"
	case EventFocused:
		return "focused"
	case EventMinimized:
		return "minimized"
	case EventClosed:
		return "closed"
	case EventMaximized:
		return "maximized"
	case EventUnmaximized:
		return "unmaximized"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(text []byte) error {
	for c := EventOpened; c <= EventUnmaximized; c++ {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Event describes a window lifecycle change. Events are advisory: they let
// callers surface notifications but carry no state of their own.
type Event struct {
	Type     EventType `json:"type"`
	AppID    string    `json:"app_id"`
	WindowID string    `json:"window_id"`
	Title    string    `json:"title"`
}

// Listener receives window lifecycle events.
type Listener interface {
	WindowEvent(ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ev Event)

// WindowEvent calls f(ev).
func (f ListenerFunc) WindowEvent(ev Event) {
	f(ev)
}
