package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

const (
	pingPath   = "/ping"
	searchPath = "/search"

	defaultTimeout = 15 * time.Second
)

// StatusError indicates the search service answered with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client talks to the place search service. It is the only network boundary;
// payload interpretation happens elsewhere, so Search hands back raw bytes.
type Client struct {
	http    *http.Client
	baseURL string
	log     *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = &log.Logger{Writer: log.IOWriter{Writer: io.Discard}}
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger,
	}
}

// Ping probes the service at startup. Fire-and-forget: failures are logged
// for diagnostics and never surfaced to the user.
func (c *Client) Ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("building ping request")
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", c.baseURL).Msg("search service unreachable")
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("ping returned non-ok status")
		return
	}
	c.log.Debug().Str("url", c.baseURL).Msg("search service reachable")
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search posts the query and returns the raw response body. No retries: a
// failed search is resubmitted by the user, not by the client.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	correlationID := uuid.NewString()

	payload, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", correlationID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("correlation_id", correlationID).Err(err).Msg("search request failed")
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.log.Warn().Str("correlation_id", correlationID).Int("status", resp.StatusCode).Msg("search returned error status")
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	c.log.Debug().
		Str("correlation_id", correlationID).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("search completed")

	return body, nil
}
