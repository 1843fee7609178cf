package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/placefind/placefind/internal/model"
	"github.com/placefind/placefind/internal/search"
	"github.com/placefind/placefind/internal/tui/components"
	"github.com/placefind/placefind/internal/tui/styles"
)

// ResultsModel shows a resolved response: a record table with a detail card
// rendered by the strategy registered for the response's query type, the
// server's explanatory message, or a "no matches" note.
type ResultsModel struct {
	query   string
	resp    model.SearchResponse
	reg     *search.Registry
	table   table.Model
	pinmap  components.PinMap
	origin  *orb.Point
	showMap bool
	saved   bool
	width   int
	height  int
}

// NewResultsModel builds the view. saved marks results reopened from
// history rather than freshly fetched.
func NewResultsModel(query string, resp model.SearchResponse, reg *search.Registry, origin *orb.Point, saved bool) ResultsModel {
	m := ResultsModel{
		query:  query,
		resp:   resp,
		reg:    reg,
		origin: origin,
		pinmap: components.NewPinMap(60, 14),
		saved:  saved,
	}
	m.buildTable()
	m.buildPins()
	return m
}

func (m *ResultsModel) buildTable() {
	if len(m.resp.Records) == 0 {
		return
	}

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 28},
		{Title: "Rating", Width: 7},
		{Title: "Address", Width: 36},
	}

	rows := make([]table.Row, 0, len(m.resp.Records))
	for i, rec := range m.resp.Records {
		rating := "-"
		if rec.Rating != nil {
			rating = fmt.Sprintf("%.1f", *rec.Rating)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			rec.Name,
			rating,
			rec.Address,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(styles.Secondary).BorderForeground(styles.Muted)
	s.Selected = s.Selected.Foreground(styles.Primary).Bold(true)
	t.SetStyles(s)

	m.table = t
}

func (m *ResultsModel) buildPins() {
	var pins []orb.Point
	for _, rec := range m.resp.Records {
		if rec.HasCoords() {
			pins = append(pins, orb.Point{*rec.Lng, *rec.Lat})
		}
	}
	m.pinmap.SetPins(pins)
	m.pinmap.SetOrigin(m.origin)
}

func (m ResultsModel) hasPins() bool {
	for _, rec := range m.resp.Records {
		if rec.HasCoords() {
			return true
		}
	}
	return false
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pinmap.SetSize(min(msg.Width-10, 70), 14)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "s":
			return m, func() tea.Msg { return NavigateToSearch{Query: m.query} }
		case "m":
			if m.hasPins() {
				m.showMap = !m.showMap
			}
			return m, nil
		}
	}

	if len(m.resp.Records) > 0 {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ResultsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Results: %q", m.query)
	if m.saved {
		title += " (saved)"
	}
	b.WriteString(styles.Title.Render(title) + "\n")

	switch {
	case m.resp.HasMessage():
		// Conversational reply, no place data.
		b.WriteString("\n" + styles.MessageBox.Render(m.resp.Message) + "\n")

	case len(m.resp.Records) == 0:
		b.WriteString("\n" + styles.InactiveItem.Render("No matching places found.") + "\n")

	case m.showMap:
		b.WriteString("\n" + m.pinmap.Render(m.table.Cursor()) + "\n")

	default:
		b.WriteString(m.table.View() + "\n\n")
		b.WriteString(m.detailCard())
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render(m.hints()))

	return styles.Border.Render(b.String())
}

func (m ResultsModel) detailCard() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.resp.Records) {
		return ""
	}

	lines := m.reg.For(m.resp.QueryType)(m.resp.Records[idx])
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(lines[0]))
	for _, line := range lines[1:] {
		b.WriteString("\n" + styles.Value.Render(line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Muted).
		Padding(0, 1).
		Render(b.String())
}

func (m ResultsModel) hints() string {
	parts := []string{"s new search", "esc back"}
	if len(m.resp.Records) > 0 {
		parts = append([]string{"↑↓ select"}, parts...)
		if m.hasPins() {
			parts = append(parts, "m map")
		}
	}
	return strings.Join(parts, " • ")
}
