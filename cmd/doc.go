// Package cmd provides the command-line interface for kube-dispatch.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - request: Sends one request to the API server and prints the decoded response
//   - watch: Streams one or more endpoints line by line
//   - resolve: Maps schema names to model identifiers
//   - models: Lists the model registry
//   - gen-registry: Generates the model registry from a swagger document
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	kube-dispatch [flags]                              # Starts the MCP server (default)
//	kube-dispatch serve [flags]                        # Explicitly starts the MCP server
//	kube-dispatch request GET /api/v1/namespaces       # One synchronous request
//	kube-dispatch watch /api/v1/pods --watch           # Stream a watch
//	kube-dispatch resolve io.k8s.api.core.v1.Pod       # Resolve a schema name
//	kube-dispatch version                              # Shows version information
//
// Connection settings are global flags. Every flag can also be set through a
// KUBE_DISPATCH_ prefixed environment variable (dashes become underscores) or
// a config file given with --config:
//
//	KUBE_DISPATCH_SERVER=https://10.0.0.1:6443 KUBE_DISPATCH_TOKEN_FILE=/tmp/token kube-dispatch request GET /version
//
// The default server is taken from --server when set, otherwise from the
// in-cluster service account with --in-cluster, otherwise from the kubeconfig.
package cmd
