package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eventdesk/internal/event"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	UserAgent      = "eventdesk/1.0"
	DefaultTimeout = 10 * time.Second
)

// Client is a client for the eventdesk events API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new events API client. An empty baseURL selects
// DefaultBaseURL; a zero timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: UserAgent,
	}
}

// eventEnvelope wraps a single event in backend responses.
type eventEnvelope struct {
	Event *event.Event `json:"event"`
}

// listEnvelope wraps the events collection in backend responses.
type listEnvelope struct {
	Events []*event.Event `json:"events"`
}

// errorEnvelope is the backend's error body.
type errorEnvelope struct {
	Message string `json:"message"`
}

// FetchEvent fetches a single event by id. The context is the read's
// cancellation signal: cancelling it abandons the request.
func (c *Client) FetchEvent(ctx context.Context, id string) (*event.Event, error) {
	var env eventEnvelope
	if err := c.do(ctx, http.MethodGet, "/events/"+id, nil, &env); err != nil {
		return nil, err
	}
	if env.Event == nil {
		return nil, fmt.Errorf("backend response missing event body")
	}
	return env.Event, nil
}

// ListEvents fetches the full events collection.
func (c *Client) ListEvents(ctx context.Context) ([]*event.Event, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/events", nil, &env); err != nil {
		return nil, err
	}
	if env.Events == nil {
		env.Events = []*event.Event{}
	}
	return env.Events, nil
}

// CreateEvent creates a new event from a submission field set and
// returns the stored record. Writes are not cancellable once issued.
func (c *Client) CreateEvent(fields event.Fields) (*event.Event, error) {
	var env eventEnvelope
	if err := c.do(context.Background(), http.MethodPost, "/events", fields, &env); err != nil {
		return nil, err
	}
	if env.Event == nil {
		return nil, fmt.Errorf("backend response missing event body")
	}
	return env.Event, nil
}

// UpdateEvent replaces an event's fields and returns the stored record.
func (c *Client) UpdateEvent(id string, fields event.Fields) (*event.Event, error) {
	var env eventEnvelope
	if err := c.do(context.Background(), http.MethodPut, "/events/"+id, fields, &env); err != nil {
		return nil, err
	}
	if env.Event == nil {
		return nil, fmt.Errorf("backend response missing event body")
	}
	return env.Event, nil
}

// DeleteEvent deletes an event by id.
func (c *Client) DeleteEvent(id string) error {
	return c.do(context.Background(), http.MethodDelete, "/events/"+id, nil, nil)
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become *Error with the backend message, if present.
// The client never retries on its own; retry is up to the user.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into *Error. A body that is not
// the expected envelope leaves Message empty rather than failing.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}
