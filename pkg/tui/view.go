package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"webdesk/pkg/desktop"
	"webdesk/pkg/widgets"
	"webdesk/pkg/wm"
)

// View implements tea.Model.
func (m Model) View() string {
	st := m.d.State()

	sections := []string{m.renderWidgets(st.Widgets)}
	if st.Search.Open {
		sections = append(sections, m.renderSearch(st.Search))
	} else {
		sections = append(sections, m.renderWindows(st.Windows))
	}
	if n := len(st.Toasts); n > 0 {
		t := st.Toasts[n-1]
		sections = append(sections, m.styles.toast.Render(t.Title+" · "+t.Description))
	}
	if m.status != "" {
		sections = append(sections, m.styles.empty.Render(m.status))
	}
	sections = append(sections, m.renderTaskbar(st.Taskbar), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWidgets(w desktop.Widgets) string {
	mt := w.Metrics
	return m.styles.widgets.Render(fmt.Sprintf(
		"%s  %s   CPU %d%%  MEM %d%%  BAT %d%%  TEMP %d°C  %s",
		w.Time.Format("15:04"),
		w.Time.Format("Mon Jan 2"),
		mt.CPU, mt.Memory, mt.Battery, mt.Temperature, networkLabel(mt.Network),
	))
}

func networkLabel(state string) string {
	if state == widgets.NetworkConnected {
		return "● " + state
	}
	return "○ " + state
}

// renderWindows draws the visible windows top-most first.
func (m Model) renderWindows(wins []desktop.WindowView) string {
	if len(wins) == 0 {
		return m.styles.empty.Render("No open windows. Press 1-9 to launch an application.")
	}

	boxes := make([]string, 0, len(wins))
	for i := len(wins) - 1; i >= 0; i-- {
		w := wins[i]
		style := m.styles.window
		if w.Focused {
			style = m.styles.focused
		}

		geometry := fmt.Sprintf("%dx%d at %d,%d", w.Frame.Width, w.Frame.Height, w.Frame.X, w.Frame.Y)
		if w.State == wm.WindowStateMaximized {
			geometry = fmt.Sprintf("maximized %dx%d", w.Bounds.Width, w.Bounds.Height)
		}
		body := []string{
			m.styles.title.Render(w.Title) + "  " + m.styles.geometry.Render(geometry),
		}
		if w.Focused {
			body = append(body, m.styles.content.Render(w.Content))
		}
		boxes = append(boxes, style.Render(strings.Join(body, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func (m Model) renderSearch(s desktop.SearchView) string {
	lines := []string{
		fmt.Sprintf("Search: %s▏  [%s]", s.Query, s.Category),
	}
	if len(s.Results) == 0 {
		lines = append(lines, m.styles.empty.Render("Type to search apps, files and settings"))
	}
	for i, r := range s.Results {
		label := fmt.Sprintf("%-8s %s", r.Kind, r.Name)
		if r.Path != "" {
			label += "  " + r.Path
		}
		if i == s.Selected {
			lines = append(lines, m.styles.selected.Render("› "+label))
			continue
		}
		lines = append(lines, m.styles.result.Render("  "+label))
	}
	return m.styles.search.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTaskbar(items []desktop.TaskbarItem) string {
	cells := make([]string, 0, len(items))
	for i, it := range items {
		label := fmt.Sprintf("%d %s", i+1, it.AppID)
		switch {
		case it.Active:
			cells = append(cells, m.styles.taskActive.Render(label))
		case it.Minimized:
			cells = append(cells, m.styles.taskMinimized.Render(label))
		case it.Open:
			cells = append(cells, m.styles.taskOpen.Render(label))
		default:
			cells = append(cells, m.styles.taskItem.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
