package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hamcount/pkg/results"
)

// List styles
var (
	listTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// countColumn caps the width of the count column; longer counts are elided
// in the middle.
const countColumn = 24

// =============================================================================
// RecordListModel - Interactive ledger browsing
// =============================================================================

// RecordListModel is the bubbletea model for browsing ledger records.
type RecordListModel struct {
	Records  []results.Record
	Cursor   int
	Selected *results.Record
	Height   int
	Offset   int
	now      func() time.Time
}

// NewRecordListModel creates a record list positioned on the newest record.
func NewRecordListModel(records []results.Record) RecordListModel {
	m := RecordListModel{
		Records: records,
		Height:  15,
		now:     time.Now,
	}
	if len(records) > 0 {
		m.Cursor = len(records) - 1
		m.Offset = max(0, m.Cursor-m.Height+1)
	}
	return m
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Records) == 0 {
				return m, nil
			}
			r := m.Records[m.Cursor]
			m.Selected = &r
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(listTitleStyle.Render("Recorded Counts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))
	now := time.Now
	if m.now != nil {
		now = m.now
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cached := ""
		if r.Cached {
			cached = iconCached
		}
		rows = append(rows, []string{
			cursor, r.Graph, r.Mode, elide(r.Count, countColumn),
			strconv.Itoa(r.Width), r.Strategy, cached, formatRelativeTime(r.Timestamp, now()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Graph", "Mode", "Count", "Width", "Strategy", "", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			current := m.Offset+row == m.Cursor
			base := lipgloss.NewStyle()
			switch {
			case current && col == 3:
				return base.Foreground(colorCyan).Bold(true)
			case current:
				return base.Foreground(colorWhite).Bold(true)
			case col >= 5:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// printRecord prints every field of a ledger record.
func printRecord(r results.Record) {
	printCount(r.Mode, r.Count)
	printKeyValue("graph", r.Graph)
	printKeyValue("width", strconv.Itoa(r.Width))
	printKeyValue("strategy", r.Strategy)
	if r.Traversal != "" {
		printKeyValue("traversal", r.Traversal)
	}
	if r.Source != "" {
		printKeyValue("source", r.Source)
	}
	if r.Sink != "" {
		printKeyValue("sink", r.Sink)
	}
	printStats(r.Vertices, r.Edges, r.Width, r.Cached)
	printDetail("order %s · count %s",
		time.Duration(r.OrderMillis)*time.Millisecond, time.Duration(r.CountMillis)*time.Millisecond)
	printDetail("%s · %s · run %s", r.Timestamp.Format("2006-01-02 15:04:05"), r.Version, r.RunID)
}

func elide(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	keep := (limit - 1) / 2
	return s[:keep] + "…" + s[len(s)-(limit-1-keep):]
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
