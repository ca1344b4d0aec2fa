package pricing

// Traffic telemetry consumed by the external autoscaler: a rolling window of
// request samples plus process-level CPU/heap/load readings, exposed as JSON
// on the metrics sidecar. Prometheus collectors mirror the pool state for
// scrape-based monitoring.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/procfs"
)

const (
	trafficWindow     = 60 * time.Second
	maxTrafficSamples = 1000
)

type requestSample struct {
	at      time.Time
	latency time.Duration
	success bool
}

// TrafficRecorder keeps the rolling request window and the monotonic totals.
type TrafficRecorder struct {
	mu      sync.Mutex
	samples []requestSample

	totalRequests atomic.Uint64
	totalErrors   atomic.Uint64

	collectors *Collectors
}

// NewTrafficRecorder returns an empty recorder.
func NewTrafficRecorder() *TrafficRecorder {
	return &TrafficRecorder{}
}

// AttachCollectors mirrors the monotonic totals onto Prometheus counters.
func (t *TrafficRecorder) AttachCollectors(c *Collectors) {
	t.collectors = c
}

// Record adds one request sample and evicts anything outside the window
// bounds (age > 60s or count > 1000, oldest first).
func (t *TrafficRecorder) Record(latency time.Duration, success bool) {
	t.recordAt(time.Now(), latency, success)
}

func (t *TrafficRecorder) recordAt(now time.Time, latency time.Duration, success bool) {
	t.totalRequests.Add(1)
	if !success {
		t.totalErrors.Add(1)
	}
	if t.collectors != nil {
		t.collectors.RequestsTotal.Inc()
		if !success {
			t.collectors.ErrorsTotal.Inc()
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, requestSample{at: now, latency: latency, success: success})

	cutoff := now.Add(-trafficWindow)
	drop := 0
	for drop < len(t.samples) && t.samples[drop].at.Before(cutoff) {
		drop++
	}
	if over := len(t.samples) - drop - maxTrafficSamples; over > 0 {
		drop += over
	}
	if drop > 0 {
		t.samples = t.samples[drop:]
	}
}

// Totals returns the process-lifetime request and error counters.
func (t *TrafficRecorder) Totals() (requests, errors uint64) {
	return t.totalRequests.Load(), t.totalErrors.Load()
}

// TrafficSnapshot is the derived view over the current window.
type TrafficSnapshot struct {
	RPS        float64
	ErrorRate  float64
	P50Latency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration
}

// Snapshot derives rps, error rate, and latency percentiles from the samples
// currently inside the window.
func (t *TrafficRecorder) Snapshot() TrafficSnapshot {
	return t.snapshotAt(time.Now())
}

func (t *TrafficRecorder) snapshotAt(now time.Time) TrafficSnapshot {
	cutoff := now.Add(-trafficWindow)

	t.mu.Lock()
	recent := make([]requestSample, 0, len(t.samples))
	for _, s := range t.samples {
		if !s.at.Before(cutoff) {
			recent = append(recent, s)
		}
	}
	t.mu.Unlock()

	if len(recent) == 0 {
		return TrafficSnapshot{}
	}

	var failures int
	latencies := make([]time.Duration, len(recent))
	for i, s := range recent {
		latencies[i] = s.latency
		if !s.success {
			failures++
		}
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	pick := func(q float64) time.Duration {
		idx := int(float64(len(latencies)) * q)
		if idx >= len(latencies) {
			idx = len(latencies) - 1
		}
		return latencies[idx]
	}

	return TrafficSnapshot{
		RPS:        float64(len(recent)) / trafficWindow.Seconds(),
		ErrorRate:  float64(failures) / float64(len(recent)) * 100.0,
		P50Latency: pick(0.5),
		P95Latency: pick(0.95),
		P99Latency: pick(0.99),
	}
}

// SystemMetrics reads process CPU, heap, and load average. The CPU and load
// readings come from procfs and degrade to zero off-Linux rather than failing
// the metrics endpoint; the heap reading works on any platform.
type SystemMetrics struct {
	mu         sync.Mutex
	lastCPU    float64
	lastSample time.Time
}

// NewSystemMetrics returns a reader; the first CPUUsage call reports 0 while
// it establishes a baseline.
func NewSystemMetrics() *SystemMetrics {
	return &SystemMetrics{}
}

// CPUUsage returns the process CPU percentage since the previous call.
func (s *SystemMetrics) CPUUsage() float64 {
	proc, err := procfs.Self()
	if err != nil {
		return 0
	}
	stat, err := proc.Stat()
	if err != nil {
		return 0
	}

	now := time.Now()
	total := stat.CPUTime()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSample.IsZero() {
		s.lastCPU = total
		s.lastSample = now
		return 0
	}
	elapsed := now.Sub(s.lastSample).Seconds()
	used := total - s.lastCPU
	s.lastCPU = total
	s.lastSample = now
	if elapsed <= 0 {
		return 0
	}
	return used / elapsed * 100.0
}

// MemoryUsage returns the heap-in-use percentage of the heap reserved from
// the OS.
func (s *SystemMetrics) MemoryUsage() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapSys == 0 {
		return 0
	}
	return float64(ms.HeapAlloc) / float64(ms.HeapSys) * 100.0
}

// LoadAverage returns the 1-minute system load average.
func (s *SystemMetrics) LoadAverage() float64 {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return 0
	}
	load, err := fs.LoadAvg()
	if err != nil {
		return 0
	}
	return load.Load1
}

// Collectors holds the Prometheus view of the aggregator.
type Collectors struct {
	reg           *prometheus.Registry
	PoolSize      prometheus.Gauge
	PoolActive    prometheus.Gauge
	QueueDepth    prometheus.Gauge
	RequestsTotal prometheus.Counter
	ErrorsTotal   prometheus.Counter
}

// NewCollectors registers the aggregator gauges and counters on a fresh
// registry.
func NewCollectors() *Collectors {
	r := prometheus.NewRegistry()
	poolSize := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dealcart_pool_size"})
	poolActive := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dealcart_pool_active"})
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dealcart_pool_queue_depth"})
	requests := prometheus.NewCounter(prometheus.CounterOpts{Name: "dealcart_vendor_requests_total"})
	errors := prometheus.NewCounter(prometheus.CounterOpts{Name: "dealcart_vendor_errors_total"})
	r.MustRegister(poolSize, poolActive, queueDepth, requests, errors)
	return &Collectors{
		reg:           r,
		PoolSize:      poolSize,
		PoolActive:    poolActive,
		QueueDepth:    queueDepth,
		RequestsTotal: requests,
		ErrorsTotal:   errors,
	}
}

// Registry exposes the underlying registry for the scrape handler.
func (c *Collectors) Registry() *prometheus.Registry { return c.reg }

type metricsResponse struct {
	RPS         float64 `json:"rps"`
	ErrorRate   float64 `json:"errorRate"`
	P50Latency  int64   `json:"p50Latency"`
	P95Latency  int64   `json:"p95Latency"`
	P99Latency  int64   `json:"p99Latency"`
	CPUUsage    float64 `json:"cpuUsage"`
	MemoryUsage float64 `json:"memoryUsage"`
	LoadAverage float64 `json:"loadAverage"`
	Timestamp   int64   `json:"timestamp"`
}

// NewMetricsMux builds the sidecar HTTP mux: JSON traffic metrics at
// /metrics, liveness at /health, Prometheus exposition at
// /metrics/prometheus.
func NewMetricsMux(traffic *TrafficRecorder, sys *SystemMetrics, collectors *Collectors, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		snap := traffic.Snapshot()
		resp := metricsResponse{
			RPS:         snap.RPS,
			ErrorRate:   snap.ErrorRate,
			P50Latency:  snap.P50Latency.Milliseconds(),
			P95Latency:  snap.P95Latency.Milliseconds(),
			P99Latency:  snap.P99Latency.Milliseconds(),
			CPUUsage:    sys.CPUUsage(),
			MemoryUsage: sys.MemoryUsage(),
			LoadAverage: sys.LoadAverage(),
			Timestamp:   time.Now().UnixMilli(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode metrics response", "error", err)
		}
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	})

	if collectors != nil {
		mux.Handle("GET /metrics/prometheus", promhttp.HandlerFor(collectors.Registry(), promhttp.HandlerOpts{}))
	}

	return mux
}
