package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"webdesk/pkg/desktop"
	"webdesk/pkg/search"
	"webdesk/pkg/wm"
)

// Step is how far, in desktop pixels, one arrow key moves or resizes a
// window.
const Step = 20

// ErrUnexpectedModel is returned when the program ends with a foreign
// model.
var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

var categories = []search.Category{
	search.CategoryAll,
	search.CategoryApps,
	search.CategoryFiles,
	search.CategorySettings,
	search.CategoryWeb,
}

type tickMsg time.Time

// Model is the bubbletea model of the terminal desktop.
type Model struct {
	d        *desktop.Desktop
	keys     keyMap
	help     help.Model
	styles   styles
	width    int
	height   int
	query    string
	category int
	status   string
}

// New returns a model driving d.
func New(d *desktop.Desktop) Model {
	return Model{
		d:      d,
		keys:   newKeyMap(),
		help:   help.New(),
		styles: newStyles(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		if m.d.SearchOpen() {
			return m.updateSearch(msg)
		}
		return m.updateDesktop(msg)
	}
	return m, nil
}

func (m Model) updateDesktop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	mgr := m.d.Manager()
	focused := mgr.Snapshot().FocusedAppID

	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.d.HandleKey(desktop.KeyEvent{Key: "k", Ctrl: true})
		m.query, m.category = "", 0
	case key.Matches(msg, m.keys.Launch):
		ids := m.d.Registry().IDs()
		if i := int(msg.Runes[0] - '1'); i < len(ids) {
			err = m.d.Launch(ids[i])
		}
	case key.Matches(msg, m.keys.Cycle):
		// Focusing the bottom-most window rotates the stack.
		if wins := mgr.Windows(); len(wins) > 1 {
			err = mgr.Focus(wins[0].AppID)
		}
	case focused == "":
		return m, nil
	case key.Matches(msg, m.keys.Minimize):
		err = mgr.Minimize(focused)
	case key.Matches(msg, m.keys.Close):
		err = mgr.Close(focused)
	case key.Matches(msg, m.keys.Maximize):
		err = mgr.ToggleMaximize(focused)
	case key.Matches(msg, m.keys.Move):
		err = m.drag(focused, wm.RegionTitle, msg.String())
	case key.Matches(msg, m.keys.Resize):
		err = m.drag(focused, wm.RegionResize, msg.String())
	}
	if err != nil {
		m.status = err.Error()
	}
	return m, nil
}

// drag replays an arrow key as a pointer gesture on the title bar or the
// resize handle, so the window manager applies its usual rules.
func (m Model) drag(appID string, region wm.Region, k string) error {
	mgr := m.d.Manager()
	win, err := mgr.Window(appID)
	if err != nil {
		return err
	}

	var dx, dy int
	switch k {
	case "up", "shift+up":
		dy = -Step
	case "down", "shift+down":
		dy = Step
	case "left", "shift+left":
		dx = -Step
	case "right", "shift+right":
		dx = Step
	}

	from := wm.Point{X: win.Frame.X + 1, Y: win.Frame.Y + 1}
	if region == wm.RegionResize {
		from = wm.Point{X: win.Frame.X + win.Frame.Width, Y: win.Frame.Y + win.Frame.Height}
	}
	if err := mgr.PointerDown(appID, region, from); err != nil {
		return err
	}
	if err := mgr.PointerMove(appID, wm.Point{X: from.X + dx, Y: from.Y + dy}); err != nil {
		return err
	}
	return mgr.PointerUp(appID)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.SearchClose):
		m.d.HandleKey(desktop.KeyEvent{Key: "Escape"})
		return m, nil
	case key.Matches(msg, m.keys.SearchUp):
		m.d.HandleKey(desktop.KeyEvent{Key: "ArrowUp"})
		return m, nil
	case key.Matches(msg, m.keys.SearchDown):
		m.d.HandleKey(desktop.KeyEvent{Key: "ArrowDown"})
		return m, nil
	case key.Matches(msg, m.keys.SearchPick):
		m.d.HandleKey(desktop.KeyEvent{Key: "Enter"})
		return m, nil
	case key.Matches(msg, m.keys.SearchMode):
		m.category = (m.category + 1) % len(categories)
	case msg.Type == tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
		m.query += string(msg.Runes)
	default:
		return m, nil
	}
	m.d.SetQuery(m.query, categories[m.category])
	return m, nil
}

// Run starts the terminal desktop on in and out until the user quits or
// ctx ends.
func Run(ctx context.Context, d *desktop.Desktop, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(d),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if _, ok := final.(Model); !ok && final != nil {
		return ErrUnexpectedModel
	}
	return nil
}
