package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
)

func validServeConfig() ServeConfig {
	return ServeConfig{
		Transport:          transportStdio,
		HTTPAddr:           ":8080",
		SSEEndpoint:        "/sse",
		MessageEndpoint:    "/message",
		HTTPEndpoint:       "/mcp",
		NonDestructiveMode: true,
	}
}

func TestServeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ServeConfig)
		wantErr string
	}{
		{name: "stdio defaults", modify: func(c *ServeConfig) {}},
		{name: "sse", modify: func(c *ServeConfig) { c.Transport = transportSSE }},
		{name: "streamable http", modify: func(c *ServeConfig) { c.Transport = transportStreamableHTTP }},
		{
			name:    "unknown transport",
			modify:  func(c *ServeConfig) { c.Transport = "websocket" },
			wantErr: "unsupported transport type",
		},
		{
			name:    "relative sse endpoint",
			modify:  func(c *ServeConfig) { c.Transport = transportSSE; c.SSEEndpoint = "sse" },
			wantErr: "--sse-endpoint must start with '/'",
		},
		{
			name: "identical sse endpoints",
			modify: func(c *ServeConfig) {
				c.Transport = transportSSE
				c.MessageEndpoint = c.SSEEndpoint
			},
			wantErr: "must differ",
		},
		{
			name:    "relative http endpoint",
			modify:  func(c *ServeConfig) { c.Transport = transportStreamableHTTP; c.HTTPEndpoint = "mcp" },
			wantErr: "--http-endpoint must start with '/'",
		},
		{
			name:    "missing http address",
			modify:  func(c *ServeConfig) { c.Transport = transportStreamableHTTP; c.HTTPAddr = "" },
			wantErr: "--http-addr is required",
		},
		{
			name:    "invalid allowed method",
			modify:  func(c *ServeConfig) { c.AllowedMethods = []string{"GET", "TRACE"} },
			wantErr: "--allowed-methods",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validServeConfig()
			tt.modify(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServeConfigAllowedMethods(t *testing.T) {
	methods, err := validServeConfig().allowedMethods()
	require.NoError(t, err)
	assert.Equal(t, []k8s.Method{k8s.MethodGet}, methods)

	config := validServeConfig()
	config.AllowedMethods = []string{"get", "Patch"}
	methods, err = config.allowedMethods()
	require.NoError(t, err)
	assert.Equal(t, []k8s.Method{k8s.MethodGet, k8s.MethodPatch}, methods)
}

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	assert.Equal(t, "serve", cmd.Use)
	tests := map[string]string{
		"transport":        transportStdio,
		"http-addr":        ":8080",
		"sse-endpoint":     "/sse",
		"message-endpoint": "/message",
		"http-endpoint":    "/mcp",
		"non-destructive":  "true",
		"dry-run":          "false",
		"allowed-methods":  "[GET]",
		"metrics-addr":     ":9090",
		"output-max-items": "100",
		"output-max-bytes": "524288",
		"slim-output":      "true",
		"mask-secrets":     "true",
	}
	for name, def := range tests {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "missing flag --%s", name)
		assert.Equal(t, def, flag.DefValue, "default of --%s", name)
	}
}
