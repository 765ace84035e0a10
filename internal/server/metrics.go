package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
)

// DefaultMetricsAddr is the listen address of the metrics server when none is configured.
const DefaultMetricsAddr = ":9090"

// DefaultShutdownTimeout bounds graceful shutdown of HTTP servers.
const DefaultShutdownTimeout = 30 * time.Second

// MetricsServerConfig configures the dedicated metrics server.
type MetricsServerConfig struct {
	// Addr is the listen address (default: ":9090")
	Addr string

	// Enabled reports whether the metrics server should run at all
	Enabled bool

	// InstrumentationProvider is required; its Prometheus exporter feeds /metrics
	InstrumentationProvider *instrumentation.Provider

	// HealthChecker, when set, adds the health endpoints to the metrics server
	HealthChecker *HealthChecker
}

// MetricsServer serves Prometheus metrics on a port separate from the MCP
// transport.
type MetricsServer struct {
	addr       string
	httpServer *http.Server

	mu      sync.Mutex
	started bool
}

// NewMetricsServer creates a metrics server. It does not start listening.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, errors.New("instrumentation provider is required")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath(config.InstrumentationProvider), promhttp.Handler())
	if config.HealthChecker != nil {
		config.HealthChecker.RegisterHealthEndpoints(mux)
	} else {
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	return &MetricsServer{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Addr returns the listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}

// Handler returns the HTTP handler serving metrics and health endpoints.
func (s *MetricsServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until Shutdown. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *MetricsServer) Start() error {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully. It is safe to call without Start.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if !started {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func metricsPath(provider *instrumentation.Provider) string {
	if path := provider.Config().PrometheusEndpoint; path != "" {
		return path
	}
	return "/metrics"
}
