package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hamcount/pkg/results"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m RecordListModel, keys ...string) (RecordListModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		var ok bool
		m, ok = next.(RecordListModel)
		require.True(t, ok)
	}
	return m, cmd
}

func records(n int) []results.Record {
	rs := make([]results.Record, n)
	for i := range rs {
		rs[i] = results.Record{
			Graph: "grid-" + strings.Repeat("x", i%3+1),
			Mode:  "paths",
			Count: "20",
			Width: 3,
		}
	}
	return rs
}

func TestRecordListStartsOnNewest(t *testing.T) {
	m := NewRecordListModel(records(20))
	assert.Equal(t, 19, m.Cursor)
	assert.Equal(t, 5, m.Offset)

	empty := NewRecordListModel(nil)
	assert.Zero(t, empty.Cursor)
	_, cmd := press(t, empty, "enter")
	assert.Nil(t, cmd)
}

func TestRecordListNavigation(t *testing.T) {
	m := NewRecordListModel(records(20))

	m, _ = press(t, m, "down")
	assert.Equal(t, 19, m.Cursor, "cursor stays on the last record")

	m, _ = press(t, m, strings.Split(strings.Repeat("k", 15), "")...)
	assert.Equal(t, 4, m.Cursor)
	assert.Equal(t, 4, m.Offset, "scrolling up moves the window")

	m, _ = press(t, m, "up", "up", "up", "up", "up", "up")
	assert.Equal(t, 0, m.Cursor)

	m, _ = press(t, m, "j", "down")
	assert.Equal(t, 2, m.Cursor)
}

func TestRecordListSelect(t *testing.T) {
	rs := records(3)
	rs[1].Count = "62"
	m := NewRecordListModel(rs)

	m, cmd := press(t, m, "up", "enter")
	require.NotNil(t, m.Selected)
	assert.Equal(t, "62", m.Selected.Count)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRecordListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := press(t, NewRecordListModel(records(2)), k)
		assert.Nil(t, m.Selected, k)
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.Quit(), cmd(), k)
	}
}

func TestRecordListWindowResize(t *testing.T) {
	m := NewRecordListModel(records(20))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(RecordListModel)
	assert.Equal(t, 5, m.Height)
	assert.Equal(t, 15, m.Offset)
}

func TestRecordListView(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rs := []results.Record{
		{Graph: "grid-3x3", Mode: "paths", Count: "20", Width: 3, Strategy: "pathwidth", Timestamp: now.Add(-2 * time.Hour)},
		{Graph: "knight-8x8", Mode: "cycles", Count: strings.Repeat("9", 40), Width: 16, Strategy: "dfs", Cached: true, Timestamp: now.Add(-10 * 24 * time.Hour)},
	}
	m := NewRecordListModel(rs)
	m.now = func() time.Time { return now }

	view := ansi.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "grid-3x3")
	assert.Contains(t, view, "2h ago")
	assert.Contains(t, view, "Feb 19, 2026")
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, strings.Repeat("9", 40))
	assert.Contains(t, view, iconCached)
	assert.Contains(t, view, "[2/2]")
}

func TestElide(t *testing.T) {
	assert.Equal(t, "12345", elide("12345", 5))
	got := elide("1234567890", 5)
	assert.Equal(t, "12…90", got)
}

func TestPrintRecord(t *testing.T) {
	var buf strings.Builder
	prev := out
	out = &buf
	defer func() { out = prev }()

	printRecord(results.Record{
		Graph: "complete-4", Mode: "paths", Count: "2", Width: 3, Strategy: "default",
		Source: "0", Sink: "1", Vertices: 4, Edges: 6, RunID: "run-1",
	})
	got := ansi.ReplaceAllString(buf.String(), "")
	assert.Regexp(t, `(?m)^paths\s+2$`, got)
	assert.Regexp(t, `(?m)^sink\s+1$`, got)
	assert.Contains(t, got, "run-1")
	assert.NotContains(t, got, "traversal")
}

func TestResultsBrowseEmptyLedger(t *testing.T) {
	sandbox(t)
	got, err := execute(t, "results", "browse")
	require.NoError(t, err)
	assert.Contains(t, got, "No recorded counts")
}
