package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/placefind/placefind/internal/storage"
	"github.com/placefind/placefind/internal/tui/styles"
)

const historyLimit = 20

// HistoryModel lists past searches. Enter reopens the saved results; r
// re-runs the query against the service.
type HistoryModel struct {
	store   *storage.Store
	entries []storage.SearchEntry
	cursor  int
	err     error
}

type historyLoadedMsg struct {
	entries []storage.SearchEntry
	err     error
}

// OpenSaved asks for a history entry's saved records to be displayed.
type OpenSaved struct {
	Entry storage.SearchEntry
}

func NewHistoryModel(store *storage.Store) HistoryModel {
	return HistoryModel{store: store}
}

func (m HistoryModel) Init() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}
		entries, err := store.Recent(historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.entries = msg.entries
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.entries) {
				entry := m.entries[m.cursor]
				return m, func() tea.Msg { return OpenSaved{Entry: entry} }
			}
		case "r":
			if m.cursor < len(m.entries) {
				query := m.entries[m.cursor].Query
				return m, func() tea.Msg { return NavigateToSearch{Query: query, Run: true} }
			}
		}
	}
	return m, nil
}

func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search History") + "\n")

	switch {
	case m.err != nil:
		b.WriteString("\n" + styles.ErrorText.Render("Could not load history") + "\n")
	case m.store == nil:
		b.WriteString("\n" + styles.InactiveItem.Render("History is disabled.") + "\n")
	case len(m.entries) == 0:
		b.WriteString("\n" + styles.InactiveItem.Render("No searches yet.") + "\n")
	default:
		for i, e := range m.entries {
			cursor := "  "
			style := styles.InactiveItem
			if i == m.cursor {
				cursor = "> "
				style = styles.ActiveItem
			}

			summary := fmt.Sprintf("%d results", e.ResultCount)
			if e.Message != "" {
				summary = "reply"
			}
			meta := lipgloss.NewStyle().Foreground(styles.Muted).
				Render(fmt.Sprintf("  %s · %s", summary, e.CreatedAt.Format("Jan 2 15:04")))

			b.WriteString(cursor + style.Render(e.Query) + meta + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("enter open • r re-run • esc back"))

	return styles.Border.Render(b.String())
}
