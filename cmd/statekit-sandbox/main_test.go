package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resourcemock "github.com/Statekit/statekit_sdk_go/pkg/resource/mock"
)

func newTestRouter(t *testing.T) (*mux.Router, *resourcemock.Mock) {
	t.Helper()
	backend := resourcemock.New(resourcemock.WithIDFunc(func() string { return "gen-1" }))
	require.NoError(t, backend.Seed(map[string][]map[string]any{
		"users": {{"id": "u-1", "name": "Ada"}},
	}))

	srv := &sandbox{backend: backend, hub: newHub()}
	r := mux.NewRouter()
	r.HandleFunc("/{collection}", srv.handleList).Methods(http.MethodGet)
	r.HandleFunc("/{collection}", srv.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/{collection}/{id}", srv.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/{collection}/{id}", srv.handleUpdate).Methods(http.MethodPut)
	return r, backend
}

func TestSandboxList(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"u-1","name":"Ada"}]`, rec.Body.String())
}

func TestSandboxGetNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/u-9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestSandboxCreate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Grace"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"gen-1","name":"Grace"}`, rec.Body.String())
}

func TestSandboxUpdate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/u-1", strings.NewReader(`{"name":"Ada Lovelace"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u-1","name":"Ada Lovelace"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/u-9", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseFailConfig(t *testing.T) {
	cfg, err := parseFailConfig("")
	require.NoError(t, err)
	assert.Zero(t, cfg.rate)
	assert.Equal(t, http.StatusInternalServerError, cfg.code)

	cfg, err = parseFailConfig("rate=0.5,code=503")
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.rate)
	assert.Equal(t, http.StatusServiceUnavailable, cfg.code)

	for _, raw := range []string{"rate=2", "code=200", "rate", "bogus=1"} {
		_, err := parseFailConfig(raw)
		assert.Error(t, err, raw)
	}
}

func TestWithMiddlewareFailureInjection(t *testing.T) {
	handler := withMiddleware(0, failConfig{rate: 1, code: http.StatusBadGateway}, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run when failure injection fires")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
