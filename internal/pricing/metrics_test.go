package pricing

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrafficRecorderSnapshot(t *testing.T) {
	rec := NewTrafficRecorder()
	base := time.Now()

	for i := 0; i < 60; i++ {
		rec.recordAt(base.Add(time.Duration(i)*time.Second/2), 100*time.Millisecond, true)
	}
	for i := 0; i < 40; i++ {
		rec.recordAt(base.Add(30*time.Second), 300*time.Millisecond, false)
	}

	snap := rec.snapshotAt(base.Add(30 * time.Second))
	require.InDelta(t, 100.0/60.0, snap.RPS, 0.01)
	require.InDelta(t, 40.0, snap.ErrorRate, 0.01)
	require.Equal(t, 100*time.Millisecond, snap.P50Latency)
	require.Equal(t, 300*time.Millisecond, snap.P95Latency)
	require.Equal(t, 300*time.Millisecond, snap.P99Latency)
}

func TestTrafficRecorderAgeEviction(t *testing.T) {
	rec := NewTrafficRecorder()
	base := time.Now()

	rec.recordAt(base, 10*time.Millisecond, true)
	rec.recordAt(base.Add(90*time.Second), 20*time.Millisecond, true)

	// Only the second sample is inside the 60s window.
	snap := rec.snapshotAt(base.Add(90 * time.Second))
	require.InDelta(t, 1.0/60.0, snap.RPS, 0.001)
	require.Equal(t, 20*time.Millisecond, snap.P50Latency)
}

func TestTrafficRecorderCountEviction(t *testing.T) {
	rec := NewTrafficRecorder()
	base := time.Now()

	for i := 0; i < maxTrafficSamples+100; i++ {
		rec.recordAt(base, time.Millisecond, true)
	}
	rec.mu.Lock()
	n := len(rec.samples)
	rec.mu.Unlock()
	require.Equal(t, maxTrafficSamples, n)
}

func TestTrafficRecorderTotalsMonotonic(t *testing.T) {
	rec := NewTrafficRecorder()
	rec.Record(time.Millisecond, true)
	rec.Record(time.Millisecond, false)
	rec.Record(time.Millisecond, false)

	requests, errors := rec.Totals()
	require.Equal(t, uint64(3), requests)
	require.Equal(t, uint64(2), errors)
}

func TestTrafficRecorderEmptySnapshot(t *testing.T) {
	rec := NewTrafficRecorder()
	snap := rec.Snapshot()
	require.Zero(t, snap.RPS)
	require.Zero(t, snap.ErrorRate)
	require.Zero(t, snap.P95Latency)
}

func TestMetricsMuxJSON(t *testing.T) {
	rec := NewTrafficRecorder()
	rec.Record(120*time.Millisecond, true)
	mux := NewMetricsMux(rec, NewSystemMetrics(), NewCollectors(), slog.Default())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"rps", "errorRate", "p50Latency", "p95Latency", "p99Latency", "cpuUsage", "memoryUsage", "loadAverage", "timestamp"} {
		require.Contains(t, body, key)
	}
}

func TestMetricsMuxHealth(t *testing.T) {
	mux := NewMetricsMux(NewTrafficRecorder(), NewSystemMetrics(), NewCollectors(), slog.Default())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.Equal(t, "OK", w.Body.String())
}
