package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

const validBody = `{
  "labels": [
    {"text": "gopher", "weight": 10},
    {"text": "chi", "weight": 5, "color": "#ff0000"},
    {"text": "router", "weight": 2}
  ],
  "options": {"width": 300, "height": 200}
}`

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	var st store.Store
	if withStore {
		s, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		st = s
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, st, logger)
	srv := httptest.NewServer(NewServer(runner, pipeline.Options{}, logger))
	t.Cleanup(func() {
		srv.Close()
		_ = runner.Close()
	})
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	resp := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVersion(t *testing.T) {
	srv := newTestServer(t, false)
	resp := get(t, srv.URL+"/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decode[map[string]string](t, resp)
	assert.Contains(t, info, "version")
}

func TestCreateLayout(t *testing.T) {
	srv := newTestServer(t, true)
	resp := post(t, srv.URL+"/v1/layouts", validBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[layoutResponse](t, resp)
	assert.Equal(t, 300, got.Width)
	assert.Equal(t, 200, got.Height)
	assert.Equal(t, 3, got.Stats.Input)
	assert.NotEmpty(t, got.Words)
	assert.Equal(t, got.Stats.Placed, len(got.Words))
	_, err := uuid.Parse(got.ID)
	assert.NoError(t, err, "stored layouts get a UUID")

	for _, w := range got.Words {
		assert.GreaterOrEqual(t, w.X, 0.0)
		assert.LessOrEqual(t, w.X, 300.0)
		if w.Text == "chi" {
			require.NotNil(t, w.Color)
			assert.Equal(t, "#ff0000", *w.Color)
		}
	}
}

func TestCreateLayoutSchemaInvalidLabels(t *testing.T) {
	srv := newTestServer(t, true)
	tests := []string{
		`{"labels": [{"text": "", "weight": 1}]}`,
		`{"labels": [{"weight": 1}]}`,
		`{"labels": {"text": "not an array"}}`,
		`{"labels": "nope"}`,
		`{}`,
	}
	for _, body := range tests {
		resp := post(t, srv.URL+"/v1/layouts", body)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"words":[]`, body)

		var got layoutResponse
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Empty(t, got.ID, "nothing is stored for an invalid list")
	}
}

func TestCreateLayoutBadEnvelope(t *testing.T) {
	srv := newTestServer(t, false)
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"not json", `labels=1`, errors.ErrCodeInvalidInput},
		{"array body", `[{"text":"a","weight":1}]`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"labels": [], "extra": true}`, errors.ErrCodeInvalidInput},
		{"bad options", `{"labels": [], "options": {"width": "wide"}}`, errors.ErrCodeInvalidConfig},
		{"invalid options", `{"labels": [], "options": {"min_size": 90, "max_size": 10}}`, errors.ErrCodeInvalidConfig},
		{"unknown spiral", `{"labels": [], "options": {"spiral": "zigzag"}}`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/layouts", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[errorBody](t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestListAndGetLayouts(t *testing.T) {
	srv := newTestServer(t, true)

	var ids []string
	for i := 0; i < 3; i++ {
		resp := post(t, srv.URL+"/v1/layouts", validBody)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		ids = append(ids, decode[layoutResponse](t, resp).ID)
	}

	resp := get(t, srv.URL+"/v1/layouts?limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]summary](t, resp)
	assert.Len(t, list, 2)

	resp = get(t, srv.URL+"/v1/layouts/"+ids[0])
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[store.Record](t, resp)
	assert.Equal(t, ids[0], rec.ID)
	assert.Len(t, rec.Labels, 3)
	assert.Equal(t, 300, rec.Config.Width)
}

func TestGetLayoutErrors(t *testing.T) {
	srv := newTestServer(t, true)

	resp := get(t, srv.URL+"/v1/layouts/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidID, decode[errorBody](t, resp).Error.Code)

	resp = get(t, srv.URL+"/v1/layouts/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[errorBody](t, resp).Error.Code)

	resp = get(t, srv.URL+"/v1/layouts?limit=-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryDisabled(t *testing.T) {
	srv := newTestServer(t, false)

	resp := get(t, srv.URL+"/v1/layouts")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = post(t, srv.URL+"/v1/layouts", validBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[layoutResponse](t, resp).ID)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, false)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			url := srv.URL + "/v1/render"
			if tt.format != "" {
				url += "?format=" + tt.format
			}
			resp := post(t, url, validBody)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.prefix), "body starts with %q", data[:min(len(data), 8)])
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	srv := newTestServer(t, false)
	resp := post(t, srv.URL+"/v1/render?format=gif", validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidFormat, decode[errorBody](t, resp).Error.Code)
}

func TestRenderJSONEmptyForInvalidLabels(t *testing.T) {
	srv := newTestServer(t, false)
	resp := post(t, srv.URL+"/v1/render?format=json", `{"labels": [{"text": 3}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Words []cloud.Placed `json:"words"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotNil(t, got.Words)
	assert.Empty(t, got.Words)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeInvalidFormat))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(errors.ErrCodeUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}
