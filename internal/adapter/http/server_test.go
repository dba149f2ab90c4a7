package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/geomag-data-etl/internal/adapter/http"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// mockSyncReadiness also reports the last sync-cycle completion.
type mockSyncReadiness struct {
	mockReadiness
	last time.Time
}

func (m *mockSyncReadiness) LastSync() (time.Time, bool) {
	return m.last, !m.last.IsZero()
}

func testSource() httpadapter.SourceInfo {
	return httpadapter.SourceInfo{
		Observatory: "BOU",
		Channels:    []string{"H", "D", "Z", "F"},
		DataType:    "variation",
		Interval:    "minute",
		URLTemplate: "https://geomag.usgs.gov/data/{obs}/{OBS}{ymd}{t}{i}.{i}",
		SinkTopic:   "geomag-observations",
	}
}

func newTestServer(ready httpadapter.ReadinessChecker) *httpadapter.Server {
	return httpadapter.NewServer(":0", ready, testSource(), slog.Default())
}

func get(t *testing.T, srv *httpadapter.Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthzReturns200(t *testing.T) {
	rec, body := get(t, newTestServer(&mockReadiness{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec, body := get(t, newTestServer(&mockReadiness{}), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "BOU", body["observatory"])
	assert.NotContains(t, body, "last_sync")
}

func TestReadyzIncludesLastSync(t *testing.T) {
	last := time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC)
	rec, body := get(t, newTestServer(&mockSyncReadiness{last: last}), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, last.Format(time.RFC3339), body["last_sync"])
}

func TestReadyzOmitsLastSyncBeforeFirstCycle(t *testing.T) {
	rec, body := get(t, newTestServer(&mockSyncReadiness{}), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body, "last_sync")
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	ready := &mockReadiness{err: fmt.Errorf("no sync cycle has completed yet")}
	rec, body := get(t, newTestServer(ready), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no sync cycle has completed yet", body["error"])
}

func TestSourcezDescribesConfiguredSource(t *testing.T) {
	rec, body := get(t, newTestServer(&mockReadiness{}), "/sourcez")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BOU", body["observatory"])
	assert.Equal(t, "variation", body["data_type"])
	assert.Equal(t, "minute", body["interval"])
	assert.Equal(t, "geomag-observations", body["sink_topic"])
	assert.Contains(t, body["url_template"], "{obs}")
	assert.ElementsMatch(t, []any{"H", "D", "Z", "F"}, body["channels"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockReadiness{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
