package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/placefind/placefind/internal/model"
	"github.com/placefind/placefind/internal/search"
	"github.com/placefind/placefind/internal/transport"
	"github.com/placefind/placefind/internal/tui/styles"
)

// SearchModel is the query prompt. It drives the controller: enter submits,
// the transport call runs as a command, and the completion is reported back
// under the request id it was issued with. The controller decides whether a
// completion still matters.
type SearchModel struct {
	input   textinput.Model
	spin    spinner.Model
	ctrl    *search.Controller
	client  *transport.Client
	timeout time.Duration
}

type searchDoneMsg struct {
	id   int
	body []byte
	err  error
}

func NewSearchModel(ctrl *search.Controller, client *transport.Client, timeout time.Duration, initialQuery string) SearchModel {
	input := textinput.New()
	input.Placeholder = "vegan restaurants in Berlin open till 11 pm"
	input.CharLimit = 200
	input.Width = 60
	input.Focus()
	if initialQuery != "" {
		input.SetValue(initialQuery)
		input.CursorEnd()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spin.Style.Foreground(styles.Primary)

	return SearchModel{
		input:   input,
		spin:    spin,
		ctrl:    ctrl,
		client:  client,
		timeout: timeout,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }
		case "enter":
			return m.Submit()
		}

	case searchDoneMsg:
		if msg.err != nil {
			m.ctrl.OnFailure(msg.id, msg.err)
			return m, nil
		}
		if !m.ctrl.OnSuccess(msg.id, msg.body) {
			return m, nil
		}
		st := m.ctrl.State()
		return m, func() tea.Msg {
			return ShowResults{Query: st.Query, Response: *st.Result}
		}

	case spinner.TickMsg:
		if m.ctrl.State().Status != search.StatusPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit runs the current input through the controller, exactly as pressing
// enter would. History re-run calls this directly so the query goes out
// without another keystroke.
func (m SearchModel) Submit() (SearchModel, tea.Cmd) {
	req, ok := m.ctrl.Submit(m.input.Value())
	if !ok {
		// Blank input: nothing changes, per the controller contract.
		return m, nil
	}
	return m, tea.Batch(m.spin.Tick, m.searchCmd(req))
}

func (m SearchModel) searchCmd(req search.Request) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		body, err := client.Search(ctx, req.Query)
		return searchDoneMsg{id: req.ID, body: body, err: err}
	}
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search Places") + "\n\n")
	b.WriteString("Ask in plain language:\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch st := m.ctrl.State(); st.Status {
	case search.StatusPending:
		b.WriteString("\n" + m.spin.View() + styles.InactiveItem.Render("Searching..."))
	case search.StatusFailed:
		b.WriteString("\n" + styles.ErrorText.Render(st.Err))
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("enter search • esc back"))

	return styles.Border.Render(b.String())
}

// Navigation messages

type NavigateToHome struct{}

// NavigateToSearch opens the search prompt, optionally prefilled. Run asks
// for the query to be submitted immediately.
type NavigateToSearch struct {
	Query string
	Run   bool
}

// ShowResults carries a freshly resolved response to the results view.
type ShowResults struct {
	Query    string
	Response model.SearchResponse
}
