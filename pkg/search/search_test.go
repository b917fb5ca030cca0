package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webdesk/pkg/apps"
)

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestEmptyQuery(t *testing.T) {
	idx := NewIndex(apps.Default())

	assert.Empty(t, idx.Search("", CategoryAll))
	assert.Empty(t, idx.Search("", CategoryFiles))
	assert.Len(t, idx.Search("", CategoryApps), 9)
}

func TestSearchAll(t *testing.T) {
	idx := NewIndex(apps.Default())

	got := idx.Search("term", CategoryAll)
	assert.Equal(t, []string{"Terminal", "Open Terminal", `Search for "term" on the web`}, names(got))
}

func TestSearchCategories(t *testing.T) {
	idx := NewIndex(apps.Default())

	assert.Equal(t, []string{"Display Settings", "Network Settings"}, names(idx.Search("settings", CategorySettings)))
	assert.Equal(t, []string{"Resume.pdf"}, names(idx.Search("RESUME", CategoryFiles)))

	web := idx.Search("go lang", CategoryWeb)
	require.Len(t, web, 1)
	assert.Equal(t, "https://www.google.com/search?q=go+lang", web[0].URL)

	assert.Empty(t, idx.Search("Open Terminal", CategoryApps), "commands only show in all")
}

func TestResultTarget(t *testing.T) {
	idx := NewIndex(apps.Default())

	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Mail", apps.Mail, true},
		{"Vacation", apps.Files, true},
		{"Privacy", apps.Settings, true},
		{"Open Terminal", apps.Terminal, true},
		{"Lock Screen", "", false},
	}

	for _, tt := range tests {
		results := idx.Search(tt.query, CategoryAll)
		require.NotEmpty(t, results, tt.query)
		got, ok := results[0].Target()
		assert.Equal(t, tt.ok, ok, tt.query)
		assert.Equal(t, tt.want, got, tt.query)
	}

	web := idx.Search("weather", CategoryWeb)[0]
	got, ok := web.Target()
	assert.True(t, ok)
	assert.Equal(t, apps.Browser, got)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("")
	assert.True(t, ok)
	assert.Equal(t, CategoryAll, c)

	c, ok = ParseCategory("files")
	assert.True(t, ok)
	assert.Equal(t, CategoryFiles, c)

	_, ok = ParseCategory("music")
	assert.False(t, ok)
}

func TestCursor(t *testing.T) {
	var c Cursor
	_, ok := c.Selected()
	assert.False(t, ok)
	c.Down()
	c.Up()
	assert.Equal(t, 0, c.Index())

	c.Reset(NewIndex(apps.Default()).Search("", CategoryApps))
	c.Up()
	assert.Equal(t, 0, c.Index())
	for i := 0; i < 20; i++ {
		c.Down()
	}
	assert.Equal(t, 8, c.Index())

	r, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, apps.Settings, r.Name)
}
