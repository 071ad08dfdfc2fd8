package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/animclone"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asset = `
name: Root
default: A
states:
  - name: A
    transitions:
      - to: B
        conditions:
          - {mode: if, parameter: Go}
  - name: B
    transitions:
      - to: Ghost
`

type failingEngine struct{ err error }

func (f failingEngine) Clone(ctx context.Context, root *domain.StateMachine) (*animclone.Result, error) {
	return nil, f.err
}

func post(t *testing.T, h http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestClone_YAML(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})

	w := post(t, h, "/v1/clone", "application/yaml", asset)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp CloneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.Summary{Machines: 1, States: 2, Transitions: 2}, resp.Summary)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, domain.WarningResolution, resp.Warnings[0].Kind)
	assert.Equal(t, "B", resp.Warnings[0].Source)
	assert.Equal(t, "Ghost", resp.Warnings[0].Target)

	assert.Contains(t, resp.Asset, "name: Root")
	assert.Contains(t, resp.Asset, "exit: true")
	assert.NotContains(t, resp.Asset, "Ghost")
}

func TestClone_JSON(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})

	w := post(t, h, "/v1/clone", "application/json", `{"name": "Root", "states": [{"name": "A"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CloneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.States)
	assert.NotNil(t, resp.Warnings)
	assert.Empty(t, resp.Warnings)
}

func TestClone_BadRequests(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})

	tests := []struct {
		name string
		body string
	}{
		{"Empty", ""},
		{"Malformed", "name: [unterminated"},
		{"Duplicate ids", "name: Root\nstates:\n  - name: A\n  - name: A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/v1/clone", "application/yaml", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestClone_TooLarge(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})
	w := post(t, h, "/v1/clone", "application/yaml", "name: "+strings.Repeat("x", MaxBodyBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestClone_EngineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Behaviour attach", fmt.Errorf("%w: boom", domain.ErrBehaviourAttach), http.StatusUnprocessableEntity},
		{"Other", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&Server{Engine: failingEngine{err: tt.err}})
			w := post(t, h, "/v1/clone", "application/yaml", asset)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestGraph(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})

	w := post(t, h, "/v1/graph", "application/yaml", asset)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "stateDiagram-v2\n"))
	assert.Contains(t, w.Body.String(), "(detached)")
}

func TestHealthAndInfo(t *testing.T) {
	h := NewHandler(&Server{Engine: animclone.New()})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), animclone.Version)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/clone", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		h := NewHandler(&Server{Engine: animclone.New()})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Enabled", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		cloner := animclone.New(animclone.WithMetrics(observability.NewMetrics(reg)))
		h := NewHandler(&Server{Engine: cloner, Gatherer: reg})

		require.Equal(t, http.StatusOK, post(t, h, "/v1/clone", "application/yaml", asset).Code)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `animclone_clones_total{status="success"} 1`)
		assert.Contains(t, w.Body.String(), `animclone_warnings_total{kind="resolution"} 1`)
	})
}
