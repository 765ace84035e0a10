package cmd

import (
	"fmt"
	"strings"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Safety settings
	NonDestructiveMode bool
	DryRun             bool
	AllowedMethods     []string

	// Response shaping
	Output server.OutputConfig

	// Metrics server
	Metrics MetricsServeConfig
}

// MetricsServeConfig holds the dedicated metrics server settings.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// Validate checks the transport and endpoint settings.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio:
	case transportSSE:
		if err := validateEndpoint("--sse-endpoint", c.SSEEndpoint); err != nil {
			return err
		}
		if err := validateEndpoint("--message-endpoint", c.MessageEndpoint); err != nil {
			return err
		}
		if c.SSEEndpoint == c.MessageEndpoint {
			return fmt.Errorf("--sse-endpoint and --message-endpoint must differ, both are %q", c.SSEEndpoint)
		}
	case transportStreamableHTTP:
		if err := validateEndpoint("--http-endpoint", c.HTTPEndpoint); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported transport type %q: use %s, %s or %s",
			c.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}

	if c.Transport != transportStdio && c.HTTPAddr == "" {
		return fmt.Errorf("--http-addr is required for the %s transport", c.Transport)
	}

	if _, err := c.allowedMethods(); err != nil {
		return err
	}
	return nil
}

// allowedMethods parses AllowedMethods. An empty list allows only GET.
func (c ServeConfig) allowedMethods() ([]k8s.Method, error) {
	if len(c.AllowedMethods) == 0 {
		return []k8s.Method{k8s.MethodGet}, nil
	}
	methods := make([]k8s.Method, 0, len(c.AllowedMethods))
	for _, raw := range c.AllowedMethods {
		m, err := k8s.ParseMethod(raw)
		if err != nil {
			return nil, fmt.Errorf("--allowed-methods: %w", err)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func validateEndpoint(flag, endpoint string) error {
	if !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("%s must start with '/', got %q", flag, endpoint)
	}
	return nil
}
