package dataclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Config wires a Client. Only BaseURL is required; a nil Bus disables
// change notifications and a nil History disables the local audit trail.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Bus        *Bus
	History    *HistoryLog
}

// Client talks to the dashboard backend. One Client is shared by all API
// handles and resources so reads coalesce and caches stay consistent.
type Client struct {
	baseURL string
	http    *http.Client
	bus     *Bus
	history *HistoryLog

	mu        sync.Mutex
	busy      bool
	lastError string
	cache     map[string]json.RawMessage
	inflight  map[string]*inflightCall
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		bus:      cfg.Bus,
		history:  cfg.History,
		cache:    make(map[string]json.RawMessage),
		inflight: make(map[string]*inflightCall),
	}
}

func (c *Client) Bus() *Bus { return c.bus }

func (c *Client) History() *HistoryLog { return c.history }

// Busy reports whether a write operation is in flight.
func (c *Client) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// LastError returns the message of the most recent failed write. It is
// cleared when the next write starts, not on success.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Client) begin() {
	c.mu.Lock()
	c.busy = true
	c.lastError = ""
	c.mu.Unlock()
}

func (c *Client) finish(err error) {
	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.lastError = err.Error()
	}
	c.mu.Unlock()
}

// StatusError is a non-2xx response translated into a user-facing message.
type StatusError struct {
	Verb    string
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func errorFromResponse(verb string, status int, body []byte) *StatusError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = fmt.Sprintf("Failed to %s item (status %d)", verb, status)
	}
	return &StatusError{Verb: verb, Status: status, Message: msg}
}

// messageFromBody pulls the backend's error text out of an {error|message}
// JSON body. Empty or non-JSON bodies yield "".
func messageFromBody(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// send issues one request and returns the raw response body. Non-2xx
// responses become StatusError; transport failures are wrapped with the
// verb so the caller's message stays readable.
func (c *Client) send(ctx context.Context, method, path, verb string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", verb, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", verb, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(verb, resp.StatusCode, raw)
	}
	return raw, nil
}

// API is a CRUD handle for one endpoint. A successful write notifies the
// configured event topic so subscribed resources refetch.
type API struct {
	c        *Client
	endpoint string
	event    string
}

func (c *Client) API(endpoint, event string) *API {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return &API{c: c, endpoint: strings.TrimRight(endpoint, "/"), event: event}
}

func (a *API) notify() {
	if a.event != "" && a.c.bus != nil {
		a.c.bus.Notify(a.event)
	}
}

func (a *API) Create(ctx context.Context, payload any) (json.RawMessage, error) {
	a.c.begin()
	raw, err := a.c.send(ctx, http.MethodPost, a.endpoint, "create", payload)
	a.c.finish(err)
	if err != nil {
		return nil, err
	}
	a.notify()
	return raw, nil
}

// UpdateResult carries the response body plus the backend's no_changes
// flag. A no-change update is a success that intentionally skips the
// change notification.
type UpdateResult struct {
	Body      json.RawMessage
	NoChanges bool
}

func (a *API) Update(ctx context.Context, id string, payload any) (UpdateResult, error) {
	a.c.begin()
	raw, err := a.c.send(ctx, http.MethodPut, a.endpoint+"/"+url.PathEscape(id), "update", payload)
	a.c.finish(err)
	if err != nil {
		return UpdateResult{}, err
	}
	res := UpdateResult{Body: raw, NoChanges: hasNoChangesFlag(raw)}
	if !res.NoChanges {
		a.notify()
	}
	return res, nil
}

func hasNoChangesFlag(body []byte) bool {
	var payload struct {
		NoChanges bool `json:"no_changes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return payload.NoChanges
}

func (a *API) Remove(ctx context.Context, id string) error {
	a.c.begin()
	_, err := a.c.send(ctx, http.MethodDelete, a.endpoint+"/"+url.PathEscape(id), "delete", nil)
	a.c.finish(err)
	if err != nil {
		return err
	}
	a.notify()
	return nil
}

// BulkError aggregates the per-id failures of a bulk delete.
type BulkError struct {
	Failures map[string]string
}

func (e *BulkError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for id := range e.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("Failed to delete item %s: %s", id, e.Failures[id]))
	}
	return strings.Join(parts, "; ")
}

// BulkDelete issues one DELETE per id concurrently and waits for every
// outcome. A failing id never aborts its siblings; the combined error
// names each id that failed. The change notification fires once after the
// whole batch settles, even on partial failure, since some rows changed.
func (a *API) BulkDelete(ctx context.Context, ids []string) error {
	a.c.begin()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := make(map[string]string)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := a.c.send(ctx, http.MethodDelete, a.endpoint+"/"+url.PathEscape(id), "delete", nil); err != nil {
				mu.Lock()
				failures[id] = err.Error()
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	var err error
	if len(failures) > 0 {
		err = &BulkError{Failures: failures}
	}
	a.c.finish(err)
	a.notify()
	return err
}
