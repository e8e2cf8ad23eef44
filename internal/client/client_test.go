package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/eventlens/internal/core/model"
)

type recorded struct {
	Method string
	Path   string
	Query  map[string][]string
	Auth   string
	Body   string
}

func newTestClient(t *testing.T, status int, reply string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", 0), &calls
}

func TestAllEvents(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `[{"id":"a","event_type":"Flood","people_killed":"3"}]`)

	events, err := c.AllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Flood", events[0].EventType)
	assert.Equal(t, "3", events[0].PeopleKilled.Text())
	assert.Equal(t, "/api/allEvents", (*calls)[0].Path)
}

func TestAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusBadRequest, `{"error":"No event types found"}`)

	_, err := c.EventTypes(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "No event types found", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestAPIError_NoBody(t *testing.T) {
	c, _ := newTestClient(t, http.StatusInternalServerError, `oops`)

	_, err := c.Stats(context.Background())
	assert.EqualError(t, err, "request failed with status 500")
}

func TestFilteredEvents_Query(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.FilteredEvents(context.Background(), Filter{
		EventTypes: []string{"Flood", "Cyclone"},
		Locations:  []string{"Dhaka"},
		Query:      "water",
		Rank:       true,
	})
	require.NoError(t, err)
	q := (*calls)[0].Query
	assert.Equal(t, []string{"Flood", "Cyclone"}, q["event_types"])
	assert.Equal(t, []string{"Dhaka"}, q["locations"])
	assert.Empty(t, q["categories"])
	assert.Equal(t, []string{"water"}, q["q"])
	assert.Equal(t, []string{"1"}, q["rank"])
}

func TestSubmitTweet(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"informative":true,"message":"Event added successfully","result":{"action":"added","id":"x"}}`)

	out, err := c.SubmitTweet(context.Background(), "flood in Dhaka")
	require.NoError(t, err)
	assert.Equal(t, "Event added successfully", out.Message)
	assert.Equal(t, model.ActionAdded, out.Result.Action)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte((*calls)[0].Body), &body))
	assert.Equal(t, "flood in Dhaka", body["tweet"])
	assert.Equal(t, http.MethodPost, (*calls)[0].Method)
}

func TestLogin_KeepsToken(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"token":"tok","expires_at":1}`)

	s, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)

	_, err = c.DeleteEvent(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", (*calls)[1].Auth)
	assert.Equal(t, "/api/admin/events/a b", (*calls)[1].Path)
	assert.Equal(t, http.MethodDelete, (*calls)[1].Method)
}

func TestMergeAndBulkDelete(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"message":"2 events deleted successfully","deleted":2}`)

	out, err := c.BulkDelete(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Deleted)

	_, err = c.MergeEvents(context.Background(), []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/events/merge", (*calls)[1].Path)
	assert.JSONEq(t, `{"event_ids":["a","b"]}`, (*calls)[1].Body)
}

func TestGraph(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK, `{"view":{"mode":"selected","empty":true,"message":"Select an event to view its graph"},"nodes":[],"edges":[],"commands":null}`)

	g, err := c.Graph(context.Background(), GraphQuery{Mode: model.ModeSelected, ID: "a", Width: 800, Height: 600})
	require.NoError(t, err)
	assert.True(t, g.View.Empty)
	q := (*calls)[0].Query
	assert.Equal(t, []string{"selected"}, q["mode"])
	assert.Equal(t, []string{"800"}, q["width"])
}

func TestGraphSVG_Raw(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `<svg></svg>`)

	svg, err := c.GraphSVG(context.Background(), GraphQuery{})
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(svg))
}
