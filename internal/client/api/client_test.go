package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

func newTestClient(t *testing.T, srv *httptest.Server) *HTTPClient {
	t.Helper()
	c := NewHTTPClient(srv.URL, srv.URL+"/graphql", 5*time.Second, nopLogger{})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// gqlRequest is the wire shape posted by the GraphQL client.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newGQLServer serves /graphql from handler, which receives the decoded
// request and returns the value for the response's "data" field.
func newGQLServer(t *testing.T, handler func(req gqlRequest) any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql", r.URL.Path)
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, map[string]any{"data": handler(req)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newGQLErrorServer serves a GraphQL-level error with the given message.
func newGQLErrorServer(t *testing.T, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"data":   nil,
			"errors": []map[string]any{{"message": message}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func decodeGQL(r *http.Request, req *gqlRequest) error {
	return json.NewDecoder(r.Body).Decode(req)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
