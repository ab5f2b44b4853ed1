package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface on top of Prometheus collectors.
type Prometheus struct {
	generations *prometheus.CounterVec
	genDuration *prometheus.HistogramVec
	leaves      *prometheus.HistogramVec
	cacheOps    *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
	requests    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
	inFlight    prometheus.Gauge
}

var (
	_ GenerateHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg.
// It panics if any collector is already registered, like prometheus.MustRegister.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mondrian",
			Name:      "generations_total",
			Help:      "Images generated, by mode and outcome.",
		}, []string{"mode", "status"}),
		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mondrian",
			Name:      "generation_duration_seconds",
			Help:      "Time spent subdividing and painting one image.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"mode"}),
		leaves: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mondrian",
			Name:      "leaves",
			Help:      "Leaf regions per generated image.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"mode"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mondrian",
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mondrian",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mondrian",
			Name:      "http_requests_total",
			Help:      "HTTP responses, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mondrian",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mondrian",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}
	reg.MustRegister(
		p.generations, p.genDuration, p.leaves,
		p.cacheOps, p.cacheBytes,
		p.requests, p.reqDuration, p.inFlight,
	)
	return p
}

func (p *Prometheus) OnGenerateStart(context.Context, string, int, int) {}

func (p *Prometheus) OnGenerateComplete(_ context.Context, mode string, leaves int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.generations.WithLabelValues(mode, status).Inc()
	if err == nil {
		p.genDuration.WithLabelValues(mode).Observe(d.Seconds())
		p.leaves.WithLabelValues(mode).Observe(float64(leaves))
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.inFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.inFlight.Dec()
	p.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
