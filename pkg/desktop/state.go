package desktop

import (
	"time"

	"webdesk/pkg/search"
	"webdesk/pkg/widgets"
	"webdesk/pkg/wm"
)

// State is the view model of a desktop: everything a front end renders.
type State struct {
	Session wm.Snapshot   `json:"session"`
	Taskbar []TaskbarItem `json:"taskbar"`
	Windows []WindowView  `json:"windows"`
	Search  SearchView    `json:"search"`
	Widgets Widgets       `json:"widgets"`
	Toasts  []Toast       `json:"toasts"`
	Game    *GameState    `json:"game,omitempty"`
}

// TaskbarItem is one taskbar button.
type TaskbarItem struct {
	AppID     string `json:"app_id"`
	Title     string `json:"title"`
	Open      bool   `json:"open"`
	Minimized bool   `json:"minimized"`
	Active    bool   `json:"active"`
}

// WindowView is a visible window. Bounds is the frame it is drawn in,
// which differs from Frame while the window is maximized.
type WindowView struct {
	wm.Window
	State   wm.WindowState `json:"state"`
	Bounds  wm.Frame       `json:"bounds"`
	Focused bool           `json:"focused"`
	Content string         `json:"content"`
}

// SearchView is the state of the search surface.
type SearchView struct {
	Open     bool            `json:"open"`
	Query    string          `json:"query"`
	Category search.Category `json:"category"`
	Results  []search.Result `json:"results"`
	Selected int             `json:"selected"`
}

// Widgets holds the latest clock tick and usage sample.
type Widgets struct {
	Time    time.Time       `json:"time"`
	Metrics widgets.Metrics `json:"metrics"`
}

// Widgets returns the latest widget readings.
func (d *Desktop) Widgets() Widgets {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Widgets{Time: d.clockTime, Metrics: d.metrics}
}

// Taskbar returns one item per registered application, in registry order.
func (d *Desktop) Taskbar() []TaskbarItem {
	snap := d.manager.Snapshot()
	items := make([]TaskbarItem, 0, d.registry.Len())
	for _, id := range d.registry.IDs() {
		items = append(items, TaskbarItem{
			AppID:     id,
			Title:     d.registry.Title(id),
			Open:      snap.IsOpen(id),
			Minimized: snap.IsMinimized(id),
			Active:    snap.FocusedAppID == id,
		})
	}
	return items
}

// State assembles the full view model.
func (d *Desktop) State() State {
	snap := d.manager.Snapshot()
	workspace := d.manager.Workspace()

	wins := d.manager.Windows()
	views := make([]WindowView, 0, len(wins))
	for _, w := range wins {
		state, err := d.manager.WindowState(w.AppID)
		if err != nil {
			// Closed since Windows was read.
			continue
		}
		bounds := w.Layout(workspace)
		content := ""
		if desc, ok := d.registry.Lookup(w.AppID); ok && desc.Renderer != nil {
			content = desc.Renderer.Render(bounds.Width, bounds.Height)
		}
		views = append(views, WindowView{
			Window:  w,
			State:   state,
			Bounds:  bounds,
			Focused: snap.FocusedAppID == w.AppID,
			Content: content,
		})
	}

	st := State{
		Session: snap,
		Taskbar: d.Taskbar(),
		Windows: views,
		Widgets: d.Widgets(),
		Toasts:  d.Toasts(),
	}
	if g, ok := d.Game(); ok {
		st.Game = &g
	}

	d.mu.Lock()
	st.Search = SearchView{
		Open:     d.searchOpen,
		Query:    d.query,
		Category: d.category,
		Results:  d.cursor.Results(),
		Selected: d.cursor.Index(),
	}
	d.mu.Unlock()
	return st
}
