package wm

import (
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"webdesk/pkg/apps"
)

// Registry is the part of the application registry the manager consumes.
type Registry interface {
	Lookup(id string) (apps.Descriptor, bool)
	InitialPosition(index int) apps.Point
}

// Config holds configuration for the window manager.
type Config struct {
	ScreenWidth   int
	ScreenHeight  int
	TaskbarHeight int
	Registry      Registry
	Logger        logrus.FieldLogger
	// NewID generates window ids. Defaults to random UUIDs.
	NewID func() string
}

// Manager owns the session state: open windows keyed by app id, the
// minimized subset, the focused window and the stacking order.
type Manager struct {
	mu            sync.RWMutex
	registry      Registry
	log           logrus.FieldLogger
	newID         func() string
	windows       map[string]*Window
	order         []string
	minimized     map[string]bool
	focused       string
	history       []string
	nextZ         int
	screenWidth   int
	screenHeight  int
	taskbarHeight int
	// pending holds events in the order their changes were made.
	pending []Event

	listenerMu   sync.Mutex
	listeners    map[int]Listener
	nextListener int
	delivering   bool
}

// NewManager creates a new window manager with the given configuration.
func NewManager(cfg Config) *Manager {
	if cfg.Registry == nil {
		cfg.Registry = apps.Default()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.NewString() }
	}
	if cfg.TaskbarHeight <= 0 {
		cfg.TaskbarHeight = DefaultTaskbarHeight
	}

	return &Manager{
		registry:      cfg.Registry,
		log:           cfg.Logger.WithField("component", "wm"),
		newID:         cfg.NewID,
		windows:       make(map[string]*Window),
		minimized:     make(map[string]bool),
		screenWidth:   cfg.ScreenWidth,
		screenHeight:  cfg.ScreenHeight,
		taskbarHeight: cfg.TaskbarHeight,
		listeners:     make(map[int]Listener),
	}
}

// Open creates a window for appID, or brings its existing window to the
// front, un-minimizing it if needed.
func (m *Manager) Open(appID string) error {
	m.mu.Lock()
	events, err := m.open(appID)
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return err
}

func (m *Manager) open(appID string) ([]Event, error) {
	if win, exists := m.windows[appID]; exists {
		var events []Event
		if m.minimized[appID] {
			delete(m.minimized, appID)
			events = append(events, m.event(EventRestored, win))
		}
		return append(events, m.focus(win)...), nil
	}

	desc, ok := m.registry.Lookup(appID)
	if !ok {
		m.log.WithField("app_id", appID).Debug("open: unknown application")
		return nil, ErrUnknownApp
	}

	size := desc.DefaultSize
	size.Width = max(size.Width, MinWidth)
	size.Height = max(size.Height, MinHeight)

	win := NewWindow(m.newID(), appID, desc.Title, m.registry.InitialPosition(len(m.order)), size)
	m.windows[appID] = win
	m.order = append(m.order, appID)

	m.log.WithFields(logrus.Fields{"app_id": appID, "window_id": win.ID}).Debug("window opened")

	events := []Event{m.event(EventOpened, win)}
	return append(events, m.focus(win)...), nil
}

// Close destroys the window of appID. When it was focused, focus moves to
// the most recently focused remaining visible window.
func (m *Manager) Close(appID string) error {
	m.mu.Lock()
	win, exists := m.windows[appID]
	if !exists {
		m.mu.Unlock()
		m.log.WithField("app_id", appID).Debug("close: no open window")
		return ErrWindowNotFound
	}

	delete(m.windows, appID)
	delete(m.minimized, appID)
	m.order = remove(m.order, appID)
	m.history = remove(m.history, appID)

	events := []Event{m.event(EventClosed, win)}
	if m.focused == appID {
		events = append(events, m.refocus()...)
	}
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return nil
}

// Minimize hides the window of appID. When it was focused, focus moves to
// the most recently focused remaining visible window.
func (m *Manager) Minimize(appID string) error {
	m.mu.Lock()
	win, exists := m.windows[appID]
	if !exists {
		m.mu.Unlock()
		m.log.WithField("app_id", appID).Debug("minimize: no open window")
		return ErrWindowNotFound
	}
	if m.minimized[appID] {
		m.mu.Unlock()
		return nil
	}

	win.PointerUp()
	m.minimized[appID] = true

	events := []Event{m.event(EventMinimized, win)}
	if m.focused == appID {
		events = append(events, m.refocus()...)
	}
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return nil
}

// Focus raises the visible window of appID above all others and focuses it.
func (m *Manager) Focus(appID string) error {
	m.mu.Lock()
	win, err := m.visible(appID, "focus")
	if err != nil {
		m.mu.Unlock()
		return err
	}
	events := m.focus(win)
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return nil
}

// ToggleMaximize maximizes or restores the visible window of appID.
func (m *Manager) ToggleMaximize(appID string) error {
	m.mu.Lock()
	win, err := m.visible(appID, "maximize")
	if err != nil {
		m.mu.Unlock()
		return err
	}

	typ := EventUnmaximized
	if win.ToggleMaximize() {
		typ = EventMaximized
	}
	events := append(m.focus(win), m.event(typ, win))
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return nil
}

// PointerDown forwards a pointer press on region of appID's window. The
// pressed window is focused first.
func (m *Manager) PointerDown(appID string, region Region, p Point) error {
	m.mu.Lock()
	win, err := m.visible(appID, "pointer down")
	if err != nil {
		m.mu.Unlock()
		return err
	}
	events := m.focus(win)
	win.PointerDown(region, p)
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.emit()
	return nil
}

// PointerMove forwards a pointer move to appID's window.
func (m *Manager) PointerMove(appID string, p Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, err := m.visible(appID, "pointer move")
	if err != nil {
		return err
	}
	win.PointerMove(p)
	return nil
}

// PointerUp ends the pointer interaction of appID's window.
func (m *Manager) PointerUp(appID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, exists := m.windows[appID]
	if !exists {
		return ErrWindowNotFound
	}
	win.PointerUp()
	return nil
}

// Snapshot returns a copy of the session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		OpenAppIDs:      make([]string, len(m.order)),
		MinimizedAppIDs: make([]string, 0, len(m.minimized)),
		FocusedAppID:    m.focused,
	}
	copy(snap.OpenAppIDs, m.order)
	for _, id := range m.order {
		if m.minimized[id] {
			snap.MinimizedAppIDs = append(snap.MinimizedAppIDs, id)
		}
	}
	return snap
}

// Window returns a copy of the window of appID.
func (m *Manager) Window(appID string) (Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win, exists := m.windows[appID]
	if !exists {
		return Window{}, ErrWindowNotFound
	}
	return *win, nil
}

// WindowState returns the state of the window of appID.
func (m *Manager) WindowState(appID string) (WindowState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win, exists := m.windows[appID]
	switch {
	case !exists:
		return 0, ErrWindowNotFound
	case m.minimized[appID]:
		return WindowStateMinimized, nil
	case win.Maximized:
		return WindowStateMaximized, nil
	default:
		return WindowStateNormal, nil
	}
}

// Windows returns copies of the visible windows, bottom-most first.
func (m *Manager) Windows() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Window, 0, len(m.windows))
	for _, id := range m.order {
		if !m.minimized[id] {
			out = append(out, *m.windows[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// Layout returns the on-screen frame of appID's window.
func (m *Manager) Layout(appID string) (Frame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win, exists := m.windows[appID]
	if !exists {
		return Frame{}, ErrWindowNotFound
	}
	return win.Layout(m.workspace()), nil
}

// Subscribe registers l for lifecycle events and returns a function that
// removes it. Every listener sees events in the order the changes were
// made, across all callers. A call that raced another may return before
// its own events have been delivered by the other caller.
func (m *Manager) Subscribe(l Listener) func() {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	key := m.nextListener
	m.nextListener++
	m.listeners[key] = l

	return func() {
		m.listenerMu.Lock()
		defer m.listenerMu.Unlock()
		delete(m.listeners, key)
	}
}

// SetScreenSize sets the screen dimensions.
func (m *Manager) SetScreenSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screenWidth = width
	m.screenHeight = height
}

// ScreenSize returns the screen dimensions.
func (m *Manager) ScreenSize() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.screenWidth, m.screenHeight
}

// Workspace returns the area a maximized window covers: the screen minus
// the taskbar strip.
func (m *Manager) Workspace() Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workspace()
}

func (m *Manager) workspace() Frame {
	return Frame{
		Width:  m.screenWidth,
		Height: max(0, m.screenHeight-m.taskbarHeight),
	}
}

// visible returns the window of appID if it is open and not minimized.
func (m *Manager) visible(appID, op string) (*Window, error) {
	win, exists := m.windows[appID]
	if !exists {
		m.log.WithField("app_id", appID).Debugf("%s: no open window", op)
		return nil, ErrWindowNotFound
	}
	if m.minimized[appID] {
		m.log.WithField("app_id", appID).Debugf("%s: window is minimized", op)
		return nil, ErrWindowMinimized
	}
	return win, nil
}

// focus raises win to the top of the stack and makes it the focused
// window. Callers hold m.mu.
func (m *Manager) focus(win *Window) []Event {
	if m.nextZ == 0 || win.Z != m.nextZ {
		m.nextZ++
		win.Z = m.nextZ
	}

	m.history = append(remove(m.history, win.AppID), win.AppID)
	if m.focused == win.AppID {
		return nil
	}
	m.focused = win.AppID
	return []Event{m.event(EventFocused, win)}
}

// refocus picks the next focused window after the focused one was closed
// or minimized: the most recently focused visible window, falling back to
// the topmost visible one. Callers hold m.mu.
func (m *Manager) refocus() []Event {
	m.focused = ""

	for i := len(m.history) - 1; i >= 0; i-- {
		id := m.history[i]
		if win, ok := m.windows[id]; ok && !m.minimized[id] {
			return m.focus(win)
		}
	}

	var top *Window
	for _, id := range m.order {
		win := m.windows[id]
		if m.minimized[id] {
			continue
		}
		if top == nil || win.Z > top.Z {
			top = win
		}
	}
	if top != nil {
		return m.focus(top)
	}
	return nil
}

func (m *Manager) event(typ EventType, win *Window) Event {
	return Event{Type: typ, AppID: win.AppID, WindowID: win.ID, Title: win.Title}
}

// emit delivers pending events to the listeners. It must be called
// without m.mu held so that listeners can use the manager. One goroutine
// delivers at a time: a call that finds delivery in progress returns and
// leaves its events to the running delivery, which keeps the order of
// events identical for every listener across concurrent callers.
func (m *Manager) emit() {
	m.listenerMu.Lock()
	if m.delivering {
		m.listenerMu.Unlock()
		return
	}
	m.delivering = true

	for {
		m.mu.Lock()
		events := m.pending
		m.pending = nil
		m.mu.Unlock()

		if len(events) == 0 {
			m.delivering = false
			m.listenerMu.Unlock()
			return
		}

		keys := make([]int, 0, len(m.listeners))
		for k := range m.listeners {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		listeners := make([]Listener, 0, len(keys))
		for _, k := range keys {
			listeners = append(listeners, m.listeners[k])
		}
		m.listenerMu.Unlock()

		for _, ev := range events {
			for _, l := range listeners {
				l.WindowEvent(ev)
			}
		}

		m.listenerMu.Lock()
	}
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
