package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/server"
	"github.com/giantswarm/kube-dispatch/internal/tools/request"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var config ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server exposing raw Kubernetes API requests, streams and model
resolution as Model Context Protocol tools.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Safety modes:
  - Non-destructive (default): only --allowed-methods (GET by default) are sent
  - Dry run (--dry-run): mutating requests are sent with dryRun=All

When a config file is given with --config, changes to its log-level are applied
without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(config)
		},
	}

	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&config.SSEEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.MessageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&config.HTTPEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	cmd.Flags().BoolVar(&config.NonDestructiveMode, "non-destructive", true, "Only send --allowed-methods requests")
	cmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "Send mutating requests with dryRun=All")
	cmd.Flags().StringSliceVar(&config.AllowedMethods, "allowed-methods", []string{"GET"}, "Methods allowed in non-destructive mode")

	defaults := server.NewDefaultConfig().Output
	cmd.Flags().IntVar(&config.Output.MaxItems, "output-max-items", defaults.MaxItems, "Maximum items returned from a list response")
	cmd.Flags().IntVar(&config.Output.MaxResponseBytes, "output-max-bytes", defaults.MaxResponseBytes, "Maximum encoded size of one tool response")
	cmd.Flags().BoolVar(&config.Output.SlimOutput, "slim-output", defaults.SlimOutput, "Drop managedFields and similar bookkeeping fields from responses")
	cmd.Flags().BoolVar(&config.Output.MaskSecrets, "mask-secrets", defaults.MaskSecrets, "Replace Secret data in responses with a placeholder")

	cmd.Flags().BoolVar(&config.Metrics.Enabled, "metrics", true, "Serve Prometheus metrics on a dedicated port when instrumentation is enabled")
	cmd.Flags().StringVar(&config.Metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	allowedMethods, _ := config.allowedMethods()

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	provider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			slog.Error("error shutting down instrumentation provider", logging.Err(err))
		}
	}()

	dispatcher, err := dispatcherFromConfig(provider.Metrics())
	if err != nil {
		return fmt.Errorf("failed to configure dispatcher: %w", err)
	}

	sc, err := server.NewServerContext(shutdownCtx,
		server.WithDispatcher(dispatcher),
		server.WithLogger(slog.Default()),
		server.WithVersion(rootCmd.Version),
		server.WithNonDestructiveMode(config.NonDestructiveMode),
		server.WithDryRun(config.DryRun),
		server.WithAllowedMethods(allowedMethods),
		server.WithOutputConfig(config.Output),
		server.WithInstrumentationProvider(provider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := sc.Shutdown(); err != nil {
			slog.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	watchConfigFile(appConfig)

	mcpSrv := mcpserver.NewMCPServer(sc.Config().ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)
	if err := request.RegisterRequestTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register request tools: %w", err)
	}

	slog.Info("starting MCP server",
		slog.String("transport", config.Transport),
		slog.String("mode", sc.Config().Mode()),
		slog.Bool("instrumentation", provider.Enabled()))

	switch config.Transport {
	case transportSSE:
		return runSSEServer(shutdownCtx, mcpSrv, config)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, sc, config)
	default:
		return runStdioServer(mcpSrv)
	}
}

// watchConfigFile applies log level changes from the config file while the
// server runs. It does nothing when no config file is in use.
func watchConfigFile(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString(keyLogLevel)
		logging.SetLevel(level)
		slog.Info("config file changed", slog.String("file", e.Name), slog.String("log_level", level))
	})
	v.WatchConfig()
}

// startMetricsServer starts the dedicated metrics server on a separate port.
// It returns nil when metrics are disabled or instrumentation is off.
func startMetricsServer(config MetricsServeConfig, provider *instrumentation.Provider, health *server.HealthChecker) (*server.MetricsServer, error) {
	if !config.Enabled || !provider.Enabled() {
		return nil, nil
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    config.Addr,
		Enabled:                 config.Enabled,
		InstrumentationProvider: provider,
		HealthChecker:           health,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	go func() {
		if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", logging.Err(err))
		}
	}()

	slog.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
	return metricsServer, nil
}

// shutdownMetricsServer stops a server returned by startMetricsServer.
func shutdownMetricsServer(ctx context.Context, metricsServer *server.MetricsServer) {
	if metricsServer == nil {
		return
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		slog.Error("error shutting down metrics server", logging.Err(err))
	}
}
