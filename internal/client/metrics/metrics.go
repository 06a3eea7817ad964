// Package metrics exposes Prometheus instrumentation for the client's calls
// to the GraphQL gateway.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookshelf"

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Gateway records one sample per GraphQL operation.
type Gateway struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
}

// NewGateway registers the gateway collectors with reg.
func NewGateway(reg prometheus.Registerer) *Gateway {
	g := &Gateway{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "GraphQL operations issued, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of GraphQL operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_in_flight",
			Help:      "GraphQL operations currently awaiting a response.",
		}, []string{"operation"}),
	}
	reg.MustRegister(g.requests, g.duration, g.inflight)
	return g
}

// Observe runs fn and records its latency and outcome under operation.
func (g *Gateway) Observe(operation string, fn func() error) error {
	if g == nil {
		return fn()
	}

	g.inflight.WithLabelValues(operation).Inc()
	defer g.inflight.WithLabelValues(operation).Dec()

	start := time.Now()
	err := fn()
	g.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	g.requests.WithLabelValues(operation, outcome).Inc()
	return err
}

// Serve exposes the registry on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
