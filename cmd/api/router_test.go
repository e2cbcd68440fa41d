package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-graphql/internal/config"
	"bookstore-graphql/internal/infrastructure/database"
	"bookstore-graphql/internal/infrastructure/document"
	"bookstore-graphql/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, playground bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{
			Name:       "Bookstore GraphQL",
			Port:       "0",
			Version:    "test",
			Playground: playground,
		},
		Database: &database.DBConfig{Driver: database.DriverMemory},
		Document: &document.Config{Driver: document.DriverMemory},
	}
	c, err := container.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string            `json:"status"`
		Version  string            `json:"version"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "ok", body.Services[container.StoreRelational])
	assert.Equal(t, "ok", body.Services[container.StoreDocument])
}

func TestGraphQLEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/graphql",
		bytes.NewBufferString(`{"query":"mutation { addAuthor(name: \"Octavia Butler\") { id name } }"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"addAuthor":{"id":"1","name":"Octavia Butler"}}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPlaygroundToggle(t *testing.T) {
	w := serve(newTestRouter(t, true), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bookstore GraphQL")

	w = serve(newTestRouter(t, false), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":"{ booksCount }"}`))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, http.StatusOK, serve(r, req).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bookstore_graphql_resolver_calls_total{code="OK",field="Query.booksCount"} 1`)
}
