package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// newHTTPHandler mounts the streamable HTTP MCP endpoint and the health
// endpoints on one mux.
func newHTTPHandler(mcpSrv *mcpserver.MCPServer, endpoint string, health *server.HealthChecker) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(endpoint, mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(endpoint),
	))
	health.RegisterHealthEndpoints(mux)
	return mux
}

// runStreamableHTTPServer runs the server with Streamable HTTP transport
func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, config ServeConfig) error {
	healthChecker := server.NewHealthChecker(sc)

	metricsServer, err := startMetricsServer(config.Metrics, sc.InstrumentationProvider(), healthChecker)
	if err != nil {
		return err
	}

	// Write timeout stays generous; stream tool calls may hold a response open.
	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           newHTTPHandler(mcpSrv, config.HTTPEndpoint, healthChecker),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      6 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("streamable HTTP server starting",
		slog.String("addr", config.HTTPAddr),
		slog.String("endpoint", config.HTTPEndpoint),
		slog.Any("health_endpoints", []string{"/healthz", "/readyz", "/healthz/detailed"}))

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()

		shutdownMetricsServer(shutdownCtx, metricsServer)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		shutdownMetricsServer(shutdownCtx, metricsServer)
		if err != nil {
			slog.Error("HTTP server failed", logging.Err(err))
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		slog.Info("HTTP server stopped normally")
	}

	slog.Info("HTTP server gracefully stopped")
	return nil
}
