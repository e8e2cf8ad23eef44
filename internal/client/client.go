package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/viewport"
)

const DefaultTimeout = 120 * time.Second

// APIError is any non-2xx answer. Message is the {error} body when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client talks to the event REST API. Token, when set, is sent as a bearer
// token on admin calls.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type SubmitResponse struct {
	Informative bool                `json:"informative"`
	Message     string              `json:"message"`
	Category    string              `json:"category"`
	Result      *model.SubmitResult `json:"result"`
	Event       *model.EventRecord  `json:"event"`
}

type GraphResponse struct {
	View     viewport.View        `json:"view"`
	Nodes    []viewport.NodeShape `json:"nodes"`
	Edges    []viewport.EdgeShape `json:"edges"`
	Commands []viewport.Command   `json:"commands"`
}

type GraphQuery struct {
	Mode   model.GraphMode
	ID     string
	Width  float64
	Height float64
}

func (q GraphQuery) values() url.Values {
	v := url.Values{}
	if q.Mode != "" {
		v.Set("mode", string(q.Mode))
	}
	if q.ID != "" {
		v.Set("id", q.ID)
	}
	if q.Width > 0 && q.Height > 0 {
		v.Set("width", fmt.Sprint(q.Width))
		v.Set("height", fmt.Sprint(q.Height))
	}
	return v
}

// Filter is a server-side facet selection. Rank asks the server to rerank
// the matches against Query.
type Filter struct {
	EventTypes []string
	Locations  []string
	Categories []string
	Query      string
	Rank       bool
}

func (f Filter) values() url.Values {
	v := url.Values{}
	for _, t := range f.EventTypes {
		v.Add("event_types", t)
	}
	for _, l := range f.Locations {
		v.Add("locations", l)
	}
	for _, c := range f.Categories {
		v.Add("categories", c)
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Rank {
		v.Set("rank", "1")
	}
	return v
}

type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type MutationResponse struct {
	Message string             `json:"message"`
	Event   *model.EventRecord `json:"event,omitempty"`
	Deleted int                `json:"deleted,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) AllEvents(ctx context.Context) ([]*model.EventRecord, error) {
	var events []*model.EventRecord
	if err := c.do(ctx, http.MethodGet, "/api/allEvents", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) Event(ctx context.Context, id string) (*model.EventRecord, error) {
	var ev model.EventRecord
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) facet(ctx context.Context, path string) ([]string, error) {
	var values []string
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Client) EventTypes(ctx context.Context) ([]string, error) {
	return c.facet(ctx, "/api/getEventTypes")
}

func (c *Client) Locations(ctx context.Context) ([]string, error) {
	return c.facet(ctx, "/api/getEventLocations")
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.facet(ctx, "/api/getEventCategories")
}

func (c *Client) FilteredEvents(ctx context.Context, f Filter) ([]*model.EventRecord, error) {
	var events []*model.EventRecord
	if err := c.do(ctx, http.MethodGet, "/api/getFilteredEvents", f.values(), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) SubmitTweet(ctx context.Context, tweet string) (*SubmitResponse, error) {
	var out SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/api/submitTweet", nil, map[string]string{"tweet": tweet}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var st model.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Graph(ctx context.Context, q GraphQuery) (*GraphResponse, error) {
	var g GraphResponse
	if err := c.do(ctx, http.MethodGet, "/api/graph", q.values(), nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) GraphSVG(ctx context.Context, q GraphQuery) ([]byte, error) {
	var svg []byte
	if err := c.do(ctx, http.MethodGet, "/graph.svg", q.values(), nil, &svg); err != nil {
		return nil, err
	}
	return svg, nil
}

// Login opens an admin session and keeps its token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, body, &s); err != nil {
		return nil, err
	}
	c.Token = s.Token
	return &s, nil
}

func (c *Client) AdminEvents(ctx context.Context) ([]*model.EventRecord, error) {
	var out struct {
		Events []*model.EventRecord `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/events", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, patch *model.EventRecord) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodPut, "/api/admin/events/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodDelete, "/api/admin/events/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MergeEvents(ctx context.Context, ids []string, mergeData *model.EventRecord) (*MutationResponse, error) {
	var out MutationResponse
	body := map[string]interface{}{"event_ids": ids}
	if mergeData != nil {
		body["merge_data"] = mergeData
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/events/merge", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BulkDelete(ctx context.Context, ids []string) (*MutationResponse, error) {
	var out MutationResponse
	body := map[string]interface{}{"event_ids": ids}
	if err := c.do(ctx, http.MethodPost, "/api/admin/events/bulk-delete", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
