package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/models"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	dispatcher *k8s.Dispatcher
	resolver   *models.Resolver
	logger     *slog.Logger
	config     *Config

	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:      serverCtx,
		cancel:   cancel,
		config:   NewDefaultConfig(),
		logger:   slog.Default(),
		resolver: models.NewResolver(nil),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Dispatcher returns the dispatcher that tool handlers send requests through.
func (sc *ServerContext) Dispatcher() *k8s.Dispatcher {
	return sc.dispatcher
}

// Resolver returns the model resolver.
func (sc *ServerContext) Resolver() *models.Resolver {
	return sc.resolver
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Config returns a copy of the server configuration.
func (sc *ServerContext) Config() *Config {
	return sc.config.Clone()
}

// OutputConfig returns the response shaping settings.
func (sc *ServerContext) OutputConfig() OutputConfig {
	return sc.config.Output
}

// InstrumentationProvider returns the instrumentation provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	return sc.instrumentationProvider
}

// Shutdown gracefully shuts down the server context.
// Calling it more than once is a no-op.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.dispatcher == nil {
		return ErrMissingDispatcher
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Non-destructive mode settings
	NonDestructiveMode bool `json:"nonDestructiveMode"`
	DryRun             bool `json:"dryRun"`

	// AllowedMethods are permitted even in non-destructive mode.
	AllowedMethods []k8s.Method `json:"allowedMethods"`

	// Output shapes tool responses.
	Output OutputConfig `json:"output"`
}

// OutputConfig bounds and filters the objects returned by tools.
type OutputConfig struct {
	// MaxItems caps the items of list responses (default: 100)
	MaxItems int `json:"maxItems"`

	// MaxResponseBytes caps the encoded size of one response (default: 512KB)
	MaxResponseBytes int `json:"maxResponseBytes"`

	// SlimOutput drops managedFields and similar bookkeeping fields
	SlimOutput bool `json:"slimOutput"`

	// MaskSecrets replaces Secret data with a placeholder
	MaskSecrets bool `json:"maskSecrets"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:         "kube-dispatch",
		Version:            "dev",
		NonDestructiveMode: true,
		DryRun:             false,
		AllowedMethods:     []k8s.Method{k8s.MethodGet},
		Output: OutputConfig{
			MaxItems:         100,
			MaxResponseBytes: 512 * 1024,
			SlimOutput:       true,
			MaskSecrets:      true,
		},
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.AllowedMethods != nil {
		clone.AllowedMethods = make([]k8s.Method, len(c.AllowedMethods))
		copy(clone.AllowedMethods, c.AllowedMethods)
	}
	return &clone
}

// Mode describes how mutating requests are treated, for logs and health output.
func (c *Config) Mode() string {
	switch {
	case !c.NonDestructiveMode:
		return "read-write"
	case c.DryRun:
		return "dry-run"
	default:
		return "read-only"
	}
}
