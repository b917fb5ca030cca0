package search

import (
	"net/url"
	"strings"

	"webdesk/pkg/apps"
)

// Kind is the type of a search result.
type Kind string

// Result kinds.
const (
	KindApp     Kind = "app"
	KindFile    Kind = "file"
	KindSetting Kind = "setting"
	KindCommand Kind = "command"
	KindWeb     Kind = "web"
)

// Category narrows a search.
type Category string

// Categories.
const (
	CategoryAll      Category = "all"
	CategoryApps     Category = "apps"
	CategoryFiles    Category = "files"
	CategorySettings Category = "settings"
	CategoryWeb      Category = "web"
)

// ParseCategory returns the category named s; empty means all.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case "":
		return CategoryAll, true
	case CategoryAll, CategoryApps, CategoryFiles, CategorySettings, CategoryWeb:
		return c, true
	default:
		return CategoryAll, false
	}
}

// Result is one search hit.
type Result struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Path string `json:"path,omitempty"`
	App  string `json:"app,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Target returns the application a selection of r opens, if any.
func (r Result) Target() (string, bool) {
	switch r.Kind {
	case KindApp:
		return r.Name, true
	case KindFile:
		return apps.Files, true
	case KindSetting:
		return apps.Settings, true
	case KindWeb:
		return apps.Browser, true
	case KindCommand:
		if r.App != "" {
			return r.App, true
		}
	}
	return "", false
}

// Index is the searchable content of the desktop.
type Index struct {
	apps     []Result
	files    []Result
	settings []Result
	commands []Result
}

// NewIndex builds an index over the registry's applications and the
// built-in files, settings and commands.
func NewIndex(reg *apps.Registry) *Index {
	idx := &Index{
		files: []Result{
			{ID: "file-1", Name: "Project Presentation.pptx", Kind: KindFile, Path: "~/Documents"},
			{ID: "file-2", Name: "Budget Report.xlsx", Kind: KindFile, Path: "~/Downloads"},
			{ID: "file-3", Name: "Vacation Photo.jpg", Kind: KindFile, Path: "~/Pictures"},
			{ID: "file-4", Name: "Resume.pdf", Kind: KindFile, Path: "~/Documents"},
			{ID: "file-5", Name: "Meeting Notes.txt", Kind: KindFile, Path: "~/Documents/Work"},
			{ID: "file-6", Name: "Playlist.mp3", Kind: KindFile, Path: "~/Music"},
		},
		settings: []Result{
			{ID: "setting-1", Name: "Display Settings", Kind: KindSetting, App: apps.Settings},
			{ID: "setting-2", Name: "User Accounts", Kind: KindSetting, App: apps.Settings},
			{ID: "setting-3", Name: "Date & Time", Kind: KindSetting, App: apps.Settings},
			{ID: "setting-4", Name: "Network Settings", Kind: KindSetting, App: apps.Settings},
			{ID: "setting-5", Name: "Privacy & Security", Kind: KindSetting, App: apps.Settings},
			{ID: "setting-6", Name: "Notifications", Kind: KindSetting, App: apps.Settings},
		},
		commands: []Result{
			{ID: "command-1", Name: "Create New File", Kind: KindCommand},
			{ID: "command-2", Name: "Take Screenshot", Kind: KindCommand},
			{ID: "command-3", Name: "Lock Screen", Kind: KindCommand},
			{ID: "command-4", Name: "Open Terminal", Kind: KindCommand, App: apps.Terminal},
		},
	}
	for _, id := range reg.IDs() {
		idx.apps = append(idx.apps, Result{ID: "app-" + id, Name: id, Kind: KindApp})
	}
	return idx
}

// Search returns the results matching query in category. An empty query
// matches nothing, except in the apps category which then lists every app.
func (idx *Index) Search(query string, category Category) []Result {
	if query == "" && category != CategoryApps {
		return nil
	}

	var out []Result
	if category == CategoryApps || category == CategoryAll {
		out = appendMatches(out, idx.apps, query)
	}
	if category == CategoryFiles || category == CategoryAll {
		out = appendMatches(out, idx.files, query)
	}
	if category == CategorySettings || category == CategoryAll {
		out = appendMatches(out, idx.settings, query)
	}
	if category == CategoryAll {
		out = appendMatches(out, idx.commands, query)
	}
	if query != "" && (category == CategoryWeb || category == CategoryAll) {
		out = append(out, Result{
			ID:   "web",
			Name: `Search for "` + query + `" on the web`,
			Kind: KindWeb,
			URL:  "https://www.google.com/search?q=" + url.QueryEscape(query),
		})
	}
	return out
}

func appendMatches(out, candidates []Result, query string) []Result {
	q := strings.ToLower(query)
	for _, r := range candidates {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// Cursor tracks the highlighted entry of a result list.
type Cursor struct {
	results  []Result
	selected int
}

// Reset replaces the results and moves the highlight to the first entry.
func (c *Cursor) Reset(results []Result) {
	c.results = results
	c.selected = 0
}

// Results returns the current results.
func (c *Cursor) Results() []Result {
	return c.results
}

// Index returns the highlighted position.
func (c *Cursor) Index() int {
	return c.selected
}

// Down moves the highlight down, stopping at the last entry.
func (c *Cursor) Down() {
	c.selected = max(0, min(c.selected+1, len(c.results)-1))
}

// Up moves the highlight up, stopping at the first entry.
func (c *Cursor) Up() {
	c.selected = max(c.selected-1, 0)
}

// Selected returns the highlighted result.
func (c *Cursor) Selected() (Result, bool) {
	if c.selected < 0 || c.selected >= len(c.results) {
		return Result{}, false
	}
	return c.results[c.selected], true
}
