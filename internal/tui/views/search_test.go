package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placefind/placefind/internal/search"
	"github.com/placefind/placefind/internal/storage"
	"github.com/placefind/placefind/internal/transport"
)

// runBatch executes a command and flattens any batch into its messages.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, sub := range batch {
		msgs = append(msgs, runBatch(sub)...)
	}
	return msgs
}

func TestSubmitDrivesController(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query_type": "nearby_search", "results": [{"name": "Cafe Karlo"}]}`))
	}))
	defer srv.Close()

	ctrl := search.NewController(nil)
	client := transport.NewClient(srv.URL, time.Second, nil)

	m := NewSearchModel(ctrl, client, time.Second, "cafes near me")
	m, cmd := m.Submit()
	require.NotNil(t, cmd)
	assert.Equal(t, search.StatusPending, ctrl.State().Status)

	var done tea.Msg
	for _, msg := range runBatch(cmd) {
		if _, ok := msg.(searchDoneMsg); ok {
			done = msg
		}
	}
	require.NotNil(t, done, "submit must produce a completion")

	_, cmd = m.Update(done)
	require.NotNil(t, cmd)
	show, ok := cmd().(ShowResults)
	require.True(t, ok)
	assert.Equal(t, "cafes near me", show.Query)
	assert.Len(t, show.Response.Records, 1)
	assert.Equal(t, search.StatusSucceeded, ctrl.State().Status)
}

func TestSubmitBlankInputIsNoOp(t *testing.T) {
	ctrl := search.NewController(nil)
	client := transport.NewClient("http://localhost:0", time.Second, nil)

	m := NewSearchModel(ctrl, client, time.Second, "   ")
	_, cmd := m.Submit()
	assert.Nil(t, cmd)
	assert.Equal(t, search.StatusIdle, ctrl.State().Status)
}

func TestHistoryRerunRequestsImmediateSubmit(t *testing.T) {
	m := NewHistoryModel(nil)
	model, _ := m.Update(historyLoadedMsg{entries: []storage.SearchEntry{
		{Query: "late night ramen"},
	}})
	m = model.(HistoryModel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)

	nav, ok := cmd().(NavigateToSearch)
	require.True(t, ok)
	assert.Equal(t, "late night ramen", nav.Query)
	assert.True(t, nav.Run, "re-run must submit without another keystroke")
}
