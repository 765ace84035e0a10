package server

import (
	"errors"
	"log/slog"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/models"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithDispatcher sets the dispatcher used by tool handlers.
func WithDispatcher(dispatcher *k8s.Dispatcher) Option {
	return func(sc *ServerContext) error {
		if dispatcher == nil {
			return ErrMissingDispatcher
		}
		sc.dispatcher = dispatcher
		return nil
	}
}

// WithResolver sets the model resolver.
func WithResolver(resolver *models.Resolver) Option {
	return func(sc *ServerContext) error {
		if resolver != nil {
			sc.resolver = resolver
		}
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		sc.ensureConfig().ServerName = name
		return nil
	}
}

// WithVersion sets the version reported by health endpoints and the MCP handshake.
func WithVersion(version string) Option {
	return func(sc *ServerContext) error {
		sc.ensureConfig().Version = version
		return nil
	}
}

// WithNonDestructiveMode enables or disables non-destructive mode.
func WithNonDestructiveMode(enabled bool) Option {
	return func(sc *ServerContext) error {
		sc.ensureConfig().NonDestructiveMode = enabled
		return nil
	}
}

// WithDryRun enables or disables dry-run mode.
func WithDryRun(enabled bool) Option {
	return func(sc *ServerContext) error {
		sc.ensureConfig().DryRun = enabled
		return nil
	}
}

// WithAllowedMethods sets the methods permitted in non-destructive mode.
func WithAllowedMethods(methods []k8s.Method) Option {
	return func(sc *ServerContext) error {
		for _, m := range methods {
			if !m.Valid() {
				return k8s.ErrInvalidMethod
			}
		}
		config := sc.ensureConfig()
		config.AllowedMethods = make([]k8s.Method, len(methods))
		copy(config.AllowedMethods, methods)
		return nil
	}
}

// WithOutputConfig sets how tool responses are bounded and filtered.
func WithOutputConfig(output OutputConfig) Option {
	return func(sc *ServerContext) error {
		sc.ensureConfig().Output = output
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

func (sc *ServerContext) ensureConfig() *Config {
	if sc.config == nil {
		sc.config = NewDefaultConfig()
	}
	return sc.config
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingDispatcher = errors.New("dispatcher is required")
	ErrMissingLogger     = errors.New("logger is required")
	ErrMissingConfig     = errors.New("configuration is required")
	ErrServerShutdown    = errors.New("server context has been shutdown")
)
