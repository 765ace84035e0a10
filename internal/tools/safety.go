package tools

import (
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// DryRunAll is the dryRun query value that makes the API server validate a
// mutating request without persisting it.
const DryRunAll = "All"

// CheckMutatingMethod verifies if a request method is allowed given the current
// server configuration. Returns an error result if blocked, nil if allowed.
//
// Methods are allowed if:
//   - NonDestructiveMode is disabled, OR
//   - DryRun mode is enabled (requests will be validated but not applied), OR
//   - The method is explicitly listed in AllowedMethods
func CheckMutatingMethod(sc *server.ServerContext, method k8s.Method) *mcp.CallToolResult {
	config := sc.Config()
	if !config.NonDestructiveMode || config.DryRun {
		return nil
	}

	if slices.Contains(config.AllowedMethods, method) {
		return nil
	}

	return mcp.NewToolResultError(fmt.Sprintf(
		"%s requests are not allowed in non-destructive mode (use --dry-run to validate without applying)",
		method,
	))
}

// ApplyDryRun returns req with dryRun=All appended when dry-run mode is
// enabled and the method mutates state. GET requests are returned unchanged.
func ApplyDryRun(sc *server.ServerContext, req k8s.Request) k8s.Request {
	if !sc.Config().DryRun || req.Method == k8s.MethodGet {
		return req
	}
	return req.WithQuery("dryRun", DryRunAll)
}
