package cluster

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAggregator_Healthy(t *testing.T) {
	h := NewHealthAggregator()
	h.AddCheck("hub", func() error { return nil })

	rec := httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, map[string]string{"hub": "ok"}, report.Checks)
}

func TestHealthAggregator_Unhealthy(t *testing.T) {
	h := NewHealthAggregator()
	h.AddCheck("hub", func() error { return nil })
	h.AddCheck("nats", func() error { return errors.New("nats: connection closed") })

	rec := httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "unhealthy", report.Status)
	assert.Equal(t, "nats: connection closed", report.Checks["nats"])
	assert.Equal(t, "ok", report.Checks["hub"])
}

func TestHealthAggregator_NoChecks(t *testing.T) {
	report := NewHealthAggregator().Run()
	assert.Equal(t, "healthy", report.Status)
	assert.Empty(t, report.Checks)
}
