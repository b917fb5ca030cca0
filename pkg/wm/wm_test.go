package wm

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"webdesk/pkg/apps"
)

func newTestManager() *Manager {
	n := 0
	return NewManager(Config{
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Registry:     apps.Default(),
		NewID: func() string {
			n++
			return fmt.Sprintf("win-%d", n)
		},
	})
}

func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()

	snap := m.Snapshot()
	seen := make(map[string]bool)
	for _, id := range snap.OpenAppIDs {
		if seen[id] {
			t.Fatalf("app %s appears twice in open list %v", id, snap.OpenAppIDs)
		}
		seen[id] = true
	}
	for _, id := range snap.MinimizedAppIDs {
		if !seen[id] {
			t.Fatalf("minimized app %s is not open: %+v", id, snap)
		}
	}
	if snap.FocusedAppID != "" {
		if !snap.IsOpen(snap.FocusedAppID) || snap.IsMinimized(snap.FocusedAppID) {
			t.Fatalf("focused app %s is not visible: %+v", snap.FocusedAppID, snap)
		}
	}
}

func TestNewWindow(t *testing.T) {
	win := NewWindow("test-id", apps.Terminal, "Terminal", Point{X: 100, Y: 200}, apps.Size{Width: 800, Height: 600})

	if win.ID != "test-id" {
		t.Errorf("expected ID 'test-id', got '%s'", win.ID)
	}
	if win.AppID != apps.Terminal {
		t.Errorf("expected app 'Terminal', got '%s'", win.AppID)
	}
	if win.Frame != (Frame{X: 100, Y: 200, Width: 800, Height: 600}) {
		t.Errorf("unexpected frame: %+v", win.Frame)
	}
	if win.Maximized {
		t.Error("expected window not to be maximized")
	}
	if win.Mode != InteractionNone {
		t.Errorf("expected mode none, got %v", win.Mode)
	}
}

func TestFrameContains(t *testing.T) {
	frame := Frame{X: 100, Y: 100, Width: 200, Height: 150}

	tests := []struct {
		x, y     int
		expected bool
	}{
		{150, 175, true},  // Center
		{100, 100, true},  // Top-left corner
		{300, 250, true},  // Bottom-right corner
		{99, 100, false},  // Left edge
		{301, 100, false}, // Right edge
		{100, 99, false},  // Top edge
		{100, 251, false}, // Bottom edge
	}

	for _, tt := range tests {
		result := frame.Contains(tt.x, tt.y)
		if result != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestOpenCreatesFocusedWindow(t *testing.T) {
	mgr := newTestManager()

	if err := mgr.Open(apps.Terminal); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	win, err := mgr.Window(apps.Terminal)
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if win.Title != "Terminal" {
		t.Errorf("expected title 'Terminal', got '%s'", win.Title)
	}
	if win.Frame != (Frame{X: 100, Y: 80, Width: 700, Height: 500}) {
		t.Errorf("unexpected frame: %+v", win.Frame)
	}
	if got := mgr.Snapshot().FocusedAppID; got != apps.Terminal {
		t.Errorf("expected focused Terminal, got %q", got)
	}
}

func TestOpenStaggersWindows(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)

	win, _ := mgr.Window(apps.Mail)
	if win.Frame.X != 130 || win.Frame.Y != 100 {
		t.Errorf("expected position (130, 100), got (%d, %d)", win.Frame.X, win.Frame.Y)
	}
}

func TestOpenUnknownApp(t *testing.T) {
	mgr := newTestManager()

	err := mgr.Open("Paint")
	if err != ErrUnknownApp {
		t.Errorf("expected ErrUnknownApp, got %v", err)
	}
	if snap := mgr.Snapshot(); len(snap.OpenAppIDs) != 0 || snap.FocusedAppID != "" {
		t.Errorf("expected empty session, got %+v", snap)
	}
}

func TestTerminalScenario(t *testing.T) {
	mgr := newTestManager()

	mgr.Open(apps.Terminal)
	snap := mgr.Snapshot()
	if len(snap.OpenAppIDs) != 1 || snap.FocusedAppID != apps.Terminal {
		t.Fatalf("after first open: %+v", snap)
	}

	mgr.Open(apps.Terminal)
	snap = mgr.Snapshot()
	if len(snap.OpenAppIDs) != 1 || snap.FocusedAppID != apps.Terminal {
		t.Fatalf("after second open: %+v", snap)
	}

	mgr.Minimize(apps.Terminal)
	snap = mgr.Snapshot()
	if len(snap.MinimizedAppIDs) != 1 || snap.MinimizedAppIDs[0] != apps.Terminal {
		t.Fatalf("expected Terminal minimized, got %+v", snap)
	}
	if snap.FocusedAppID != "" {
		t.Fatalf("expected no focus, got %q", snap.FocusedAppID)
	}

	mgr.Open(apps.Terminal)
	snap = mgr.Snapshot()
	if len(snap.MinimizedAppIDs) != 0 {
		t.Fatalf("expected nothing minimized, got %v", snap.MinimizedAppIDs)
	}
	if snap.FocusedAppID != apps.Terminal {
		t.Fatalf("expected Terminal focused, got %q", snap.FocusedAppID)
	}
}

func TestReopenRaisesWithoutDuplicating(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)

	before, _ := mgr.Window(apps.Files)
	mgr.Open(apps.Files)
	after, _ := mgr.Window(apps.Files)

	if len(mgr.Snapshot().OpenAppIDs) != 2 {
		t.Errorf("expected 2 open windows, got %v", mgr.Snapshot().OpenAppIDs)
	}
	if after.ID != before.ID {
		t.Errorf("expected the same window, got %s then %s", before.ID, after.ID)
	}
	mail, _ := mgr.Window(apps.Mail)
	if after.Z <= mail.Z {
		t.Errorf("expected Files above Mail, got z %d vs %d", after.Z, mail.Z)
	}
}

func TestCloseWindow(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Terminal)

	if err := mgr.Close(apps.Terminal); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err := mgr.Window(apps.Terminal)
	if err != ErrWindowNotFound {
		t.Errorf("expected ErrWindowNotFound, got %v", err)
	}
	if got := mgr.Snapshot().FocusedAppID; got != "" {
		t.Errorf("expected no focus after closing the last window, got %q", got)
	}
}

func TestCloseWindowNotFound(t *testing.T) {
	mgr := newTestManager()

	err := mgr.Close("nonexistent")
	if err != ErrWindowNotFound {
		t.Errorf("expected ErrWindowNotFound, got %v", err)
	}
}

func TestCloseFocusesMostRecentlyFocused(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)
	mgr.Open(apps.Terminal)
	mgr.Focus(apps.Files)
	mgr.Focus(apps.Terminal)

	// History is Mail, Files, Terminal; Files was focused more recently
	// than Mail even though Mail was opened later.
	mgr.Close(apps.Terminal)

	if got := mgr.Snapshot().FocusedAppID; got != apps.Files {
		t.Errorf("expected Files focused, got %q", got)
	}
	checkInvariants(t, mgr)
}

func TestCloseUnfocusedKeepsFocus(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)

	mgr.Close(apps.Files)

	if got := mgr.Snapshot().FocusedAppID; got != apps.Mail {
		t.Errorf("expected Mail focused, got %q", got)
	}
}

func TestCloseSkipsMinimized(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)
	mgr.Open(apps.Terminal)
	mgr.Minimize(apps.Mail)
	mgr.Focus(apps.Terminal)

	mgr.Close(apps.Terminal)

	if got := mgr.Snapshot().FocusedAppID; got != apps.Files {
		t.Errorf("expected Files focused, got %q", got)
	}
}

func TestMinimizeTransfersFocus(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)

	if err := mgr.Minimize(apps.Mail); err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}

	state, _ := mgr.WindowState(apps.Mail)
	if state != WindowStateMinimized {
		t.Errorf("expected state minimized, got %v", state)
	}
	if got := mgr.Snapshot().FocusedAppID; got != apps.Files {
		t.Errorf("expected Files focused, got %q", got)
	}
	if n := len(mgr.Windows()); n != 1 {
		t.Errorf("expected 1 visible window, got %d", n)
	}
}

func TestFocusMinimizedFails(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Minimize(apps.Files)

	if err := mgr.Focus(apps.Files); err != ErrWindowMinimized {
		t.Errorf("expected ErrWindowMinimized, got %v", err)
	}
	if err := mgr.Focus(apps.Mail); err != ErrWindowNotFound {
		t.Errorf("expected ErrWindowNotFound, got %v", err)
	}
	checkInvariants(t, mgr)
}

func TestFocusRaisesZOrder(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)
	mgr.Open(apps.Terminal)

	mgr.Focus(apps.Files)

	windows := mgr.Windows()
	if top := windows[len(windows)-1].AppID; top != apps.Files {
		t.Errorf("expected Files on top, got %s", top)
	}
}

func TestDragScenario(t *testing.T) {
	win := NewWindow("w", apps.Terminal, "Terminal", Point{X: 100, Y: 100}, apps.Size{Width: 700, Height: 500})

	if !win.PointerDown(RegionTitle, Point{X: 110, Y: 115}) {
		t.Fatal("expected drag to start")
	}
	if win.Offset != (Point{X: 10, Y: 15}) {
		t.Errorf("expected offset (10, 15), got %+v", win.Offset)
	}
	win.PointerMove(Point{X: 300, Y: 250})
	if win.Frame.Position() != (Point{X: 290, Y: 235}) {
		t.Errorf("expected position (290, 235), got %+v", win.Frame.Position())
	}
	win.PointerUp()
	win.PointerMove(Point{X: 500, Y: 500})
	if win.Frame.Position() != (Point{X: 290, Y: 235}) {
		t.Errorf("expected no movement after release, got %+v", win.Frame.Position())
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	win := NewWindow("w", apps.Terminal, "Terminal", Point{X: 100, Y: 100}, apps.Size{Width: 700, Height: 500})
	win.PointerDown(RegionResize, Point{X: 800, Y: 600})

	tests := []struct {
		pointer Point
		w, h    int
	}{
		{Point{X: 900, Y: 700}, 800, 600},
		{Point{X: 150, Y: 150}, MinWidth, MinHeight},
		{Point{X: -500, Y: -500}, MinWidth, MinHeight},
		{Point{X: 1000, Y: 120}, 900, MinHeight},
		{Point{X: 501, Y: 401}, 401, 301},
	}

	for _, tt := range tests {
		win.PointerMove(tt.pointer)
		if win.Frame.Width != tt.w || win.Frame.Height != tt.h {
			t.Errorf("resize to %+v: expected %dx%d, got %dx%d",
				tt.pointer, tt.w, tt.h, win.Frame.Width, win.Frame.Height)
		}
		if win.Frame.X != 100 || win.Frame.Y != 100 {
			t.Errorf("resize moved the window to (%d, %d)", win.Frame.X, win.Frame.Y)
		}
	}
}

func TestDragAndResizeAreExclusive(t *testing.T) {
	win := NewWindow("w", apps.Terminal, "Terminal", Point{X: 100, Y: 100}, apps.Size{Width: 700, Height: 500})

	win.PointerDown(RegionTitle, Point{X: 110, Y: 110})
	if win.PointerDown(RegionResize, Point{X: 800, Y: 600}) {
		t.Fatal("expected resize not to start during a drag")
	}
	if win.Mode != InteractionDragging {
		t.Errorf("expected dragging, got %v", win.Mode)
	}

	win.PointerMove(Point{X: 210, Y: 210})
	if win.Frame != (Frame{X: 200, Y: 200, Width: 700, Height: 500}) {
		t.Errorf("unexpected frame: %+v", win.Frame)
	}
}

func TestBodyPressStartsNothing(t *testing.T) {
	win := NewWindow("w", apps.Terminal, "Terminal", Point{X: 100, Y: 100}, apps.Size{Width: 700, Height: 500})
	if win.PointerDown(RegionBody, Point{X: 300, Y: 300}) {
		t.Error("expected no interaction for body press")
	}
}

func TestMaximizeBlocksDragAndRestores(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Terminal)
	before, _ := mgr.Window(apps.Terminal)

	if err := mgr.ToggleMaximize(apps.Terminal); err != nil {
		t.Fatalf("ToggleMaximize failed: %v", err)
	}
	state, _ := mgr.WindowState(apps.Terminal)
	if state != WindowStateMaximized {
		t.Errorf("expected state maximized, got %v", state)
	}

	layout, _ := mgr.Layout(apps.Terminal)
	if layout != (Frame{X: 0, Y: 0, Width: 1920, Height: 1080 - DefaultTaskbarHeight}) {
		t.Errorf("unexpected maximized layout: %+v", layout)
	}

	mgr.PointerDown(apps.Terminal, RegionTitle, Point{X: 110, Y: 90})
	mgr.PointerMove(apps.Terminal, Point{X: 600, Y: 600})
	mgr.PointerUp(apps.Terminal)

	held, _ := mgr.Window(apps.Terminal)
	if held.Frame != before.Frame {
		t.Errorf("expected frame unchanged while maximized, got %+v", held.Frame)
	}

	mgr.ToggleMaximize(apps.Terminal)
	restored, _ := mgr.Layout(apps.Terminal)
	if restored != before.Frame {
		t.Errorf("expected restored frame %+v, got %+v", before.Frame, restored)
	}

	mgr.PointerDown(apps.Terminal, RegionTitle, Point{X: 110, Y: 90})
	mgr.PointerMove(apps.Terminal, Point{X: 210, Y: 190})
	mgr.PointerUp(apps.Terminal)
	moved, _ := mgr.Window(apps.Terminal)
	if moved.Frame.X != 200 || moved.Frame.Y != 180 {
		t.Errorf("expected drag to work after restore, got (%d, %d)", moved.Frame.X, moved.Frame.Y)
	}
}

func TestMaximizeCancelsDrag(t *testing.T) {
	win := NewWindow("w", apps.Terminal, "Terminal", Point{X: 100, Y: 100}, apps.Size{Width: 700, Height: 500})
	win.PointerDown(RegionTitle, Point{X: 110, Y: 110})
	win.ToggleMaximize()
	if win.Mode != InteractionNone {
		t.Errorf("expected interaction cancelled, got %v", win.Mode)
	}
	win.ToggleMaximize()
	if win.PointerMove(Point{X: 400, Y: 400}) {
		t.Error("expected stale drag not to resume after restore")
	}
}

func TestMinimizeCancelsInteraction(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Terminal)
	mgr.PointerDown(apps.Terminal, RegionTitle, Point{X: 110, Y: 90})
	mgr.Minimize(apps.Terminal)

	win, _ := mgr.Window(apps.Terminal)
	if win.Mode != InteractionNone {
		t.Errorf("expected interaction cancelled, got %v", win.Mode)
	}
	if err := mgr.PointerMove(apps.Terminal, Point{X: 500, Y: 500}); err != ErrWindowMinimized {
		t.Errorf("expected ErrWindowMinimized, got %v", err)
	}
}

func TestPointerDownFocuses(t *testing.T) {
	mgr := newTestManager()
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)

	mgr.PointerDown(apps.Files, RegionBody, Point{X: 200, Y: 200})

	if got := mgr.Snapshot().FocusedAppID; got != apps.Files {
		t.Errorf("expected Files focused, got %q", got)
	}
}

func TestEvents(t *testing.T) {
	mgr := newTestManager()

	var got []string
	unsubscribe := mgr.Subscribe(ListenerFunc(func(ev Event) {
		got = append(got, ev.Type.String()+":"+ev.AppID)
	}))

	mgr.Open(apps.Files)
	mgr.Open(apps.Files)
	mgr.Open(apps.Mail)
	mgr.Minimize(apps.Mail)
	mgr.Open(apps.Mail)
	mgr.Close(apps.Mail)
	mgr.ToggleMaximize(apps.Files)
	unsubscribe()
	mgr.Close(apps.Files)

	expected := []string{
		"opened:Files", "focused:Files",
		"opened:Mail", "focused:Mail",
		"minimized:Mail", "focused:Files",
		"restored:Mail", "focused:Mail",
		"closed:Mail", "focused:Files",
		"maximized:Files",
	}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("unexpected events:\n got %v\nwant %v", got, expected)
	}
}

func TestListenerCanReadManager(t *testing.T) {
	mgr := newTestManager()
	var focused string
	mgr.Subscribe(ListenerFunc(func(ev Event) {
		focused = mgr.Snapshot().FocusedAppID
	}))

	mgr.Open(apps.Terminal)
	if focused != apps.Terminal {
		t.Errorf("expected listener to see Terminal focused, got %q", focused)
	}
}

func TestListenerCanChangeManager(t *testing.T) {
	mgr := newTestManager()

	var got []string
	mgr.Subscribe(ListenerFunc(func(ev Event) {
		if ev.Type == EventOpened && ev.AppID == apps.Games {
			mgr.Close(apps.Games)
		}
	}))
	mgr.Subscribe(ListenerFunc(func(ev Event) {
		got = append(got, ev.Type.String()+":"+ev.AppID)
	}))

	mgr.Open(apps.Games)

	expected := []string{"opened:Games", "focused:Games", "closed:Games"}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Errorf("unexpected events:\n got %v\nwant %v", got, expected)
	}
	if mgr.Snapshot().IsOpen(apps.Games) {
		t.Error("expected Games to be closed by the listener")
	}
}

func TestConcurrentEventsKeepOrder(t *testing.T) {
	mgr := newTestManager()

	var (
		mu     sync.Mutex
		first  []Event
		second []Event
	)
	mgr.Subscribe(ListenerFunc(func(ev Event) {
		mu.Lock()
		first = append(first, ev)
		mu.Unlock()
	}))
	mgr.Subscribe(ListenerFunc(func(ev Event) {
		mu.Lock()
		second = append(second, ev)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for _, id := range apps.Default().IDs() {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				mgr.Open(id)
				mgr.Close(id)
			}
		}(id)
	}
	wg.Wait()

	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Fatal("expected every listener to see the same event order")
	}
	open := make(map[string]bool)
	for _, ev := range first {
		switch ev.Type {
		case EventOpened:
			if open[ev.AppID] {
				t.Fatalf("%s opened twice without a close", ev.AppID)
			}
			open[ev.AppID] = true
		case EventClosed:
			if !open[ev.AppID] {
				t.Fatalf("%s closed before it was opened", ev.AppID)
			}
			open[ev.AppID] = false
		}
	}
	if len(first) == 0 {
		t.Fatal("expected events")
	}
	if len(mgr.Snapshot().OpenAppIDs) != 0 {
		t.Errorf("expected every window closed, got %v", mgr.Snapshot().OpenAppIDs)
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	ids := append(apps.Default().IDs(), "Unknown")
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		mgr := newTestManager()
		for step := 0; step < 200; step++ {
			id := ids[rng.Intn(len(ids))]
			switch rng.Intn(5) {
			case 0:
				mgr.Open(id)
			case 1:
				mgr.Close(id)
			case 2:
				mgr.Minimize(id)
			case 3:
				mgr.Focus(id)
			case 4:
				before := len(mgr.Snapshot().OpenAppIDs)
				wasVisible := mgr.Snapshot().IsOpen(id) && !mgr.Snapshot().IsMinimized(id)
				mgr.Open(id)
				if wasVisible && len(mgr.Snapshot().OpenAppIDs) != before {
					t.Fatalf("re-opening visible %s changed the window count", id)
				}
			}
			checkInvariants(t, mgr)
		}
	}
}

func TestSetScreenSize(t *testing.T) {
	mgr := newTestManager()
	mgr.SetScreenSize(1280, 720)

	w, h := mgr.ScreenSize()
	if w != 1280 || h != 720 {
		t.Errorf("expected 1280x720, got %dx%d", w, h)
	}
	if ws := mgr.Workspace(); ws.Height != 720-DefaultTaskbarHeight {
		t.Errorf("unexpected workspace %+v", ws)
	}
}

func TestWindowStateString(t *testing.T) {
	tests := []struct {
		state    WindowState
		expected string
	}{
		{WindowStateNormal, "normal"},
		{WindowStateMinimized, "minimized"},
		{WindowStateMaximized, "maximized"},
		{WindowState(100), "unknown"},
	}

	for _, tt := range tests {
		result := tt.state.String()
		if result != tt.expected {
			t.Errorf("WindowState(%d).String() = %s, expected %s", tt.state, result, tt.expected)
		}
	}
}

func TestParseRegion(t *testing.T) {
	for _, r := range []Region{RegionBody, RegionTitle, RegionResize} {
		got, err := ParseRegion(r.String())
		if err != nil || got != r {
			t.Errorf("ParseRegion(%q) = %v, %v", r.String(), got, err)
		}
	}
	if _, err := ParseRegion("corner"); err != ErrInvalidRegion {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	mgr := newTestManager()
	ids := apps.Default().IDs()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			id := ids[idx%len(ids)]
			mgr.Open(id)
			mgr.Focus(id)
			mgr.Snapshot()
		}(i)
	}
	wg.Wait()

	if n := len(mgr.Snapshot().OpenAppIDs); n != 9 {
		t.Errorf("expected 9 windows, got %d", n)
	}
	checkInvariants(t, mgr)
}
