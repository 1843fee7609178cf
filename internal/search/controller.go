package search

import (
	"io"
	"strings"
	"sync"

	"github.com/phuslu/log"

	"github.com/placefind/placefind/internal/model"
)

// FailureMessage is the only error text shown to the user. Transport causes
// go to the diagnostic log, never to the screen.
const FailureMessage = "Something went wrong while searching. Please try again."

// Status is the lifecycle phase of the current query.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// State is the single source of truth for one query's lifecycle. Result is
// set only in StatusSucceeded, Err only in StatusFailed.
type State struct {
	Status    Status
	Query     string
	RequestID int
	Result    *model.SearchResponse
	Err       string
}

// Request identifies one accepted submission. The caller runs exactly one
// transport call for it and reports the outcome back with the same ID.
type Request struct {
	ID    int
	Query string
}

// Controller owns the lifecycle of a single in-flight query. Completions may
// arrive in any order; only the one matching the latest RequestID can move
// the state out of pending. One controller per search widget.
type Controller struct {
	mu    sync.Mutex
	state State
	log   *log.Logger
}

func NewController(logger *log.Logger) *Controller {
	if logger == nil {
		logger = &log.Logger{Writer: log.IOWriter{Writer: io.Discard}}
	}
	return &Controller{log: logger}
}

// Submit starts a new query. Empty or whitespace-only text is rejected and
// the state is left untouched. A submit while pending does not cancel the
// in-flight call; its completion just becomes stale.
func (c *Controller) Submit(text string) (Request, bool) {
	query := strings.TrimSpace(text)
	if query == "" {
		return Request{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = State{
		Status:    StatusPending,
		Query:     query,
		RequestID: c.state.RequestID + 1,
	}
	c.log.Debug().Int("request_id", c.state.RequestID).Str("query", query).Msg("search submitted")

	return Request{ID: c.state.RequestID, Query: query}, true
}

// OnSuccess resolves the raw payload and transitions to succeeded. Stale
// completions are discarded; the return value reports whether the state
// changed.
func (c *Controller) OnSuccess(id int, raw []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.state.RequestID {
		c.log.Debug().Int("request_id", id).Int("current", c.state.RequestID).Msg("stale completion discarded")
		return false
	}

	resp := Resolve(raw)
	c.state.Status = StatusSucceeded
	c.state.Result = &resp
	c.state.Err = ""
	return true
}

// OnFailure transitions to failed with the fixed user-facing message. The
// underlying cause is only logged. Same staleness guard as OnSuccess.
func (c *Controller) OnFailure(id int, cause error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.state.RequestID {
		c.log.Debug().Int("request_id", id).Int("current", c.state.RequestID).Msg("stale failure discarded")
		return false
	}

	c.log.Warn().Int("request_id", id).Str("query", c.state.Query).Err(cause).Msg("search failed")
	c.state.Status = StatusFailed
	c.state.Result = nil
	c.state.Err = FailureMessage
	return true
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
