// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// WrapWithAuditLogging wraps a tool handler with audit logging and tracing.
// Every invocation gets a server span named after the tool and one log record
// with its duration and outcome. MCP tool errors are returned in the result,
// not as Go errors, so both are inspected.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		ctx, span := instrumentation.StartToolSpan(ctx, toolName, extractAuditInfoFromArgs(request.GetArguments())...)
		defer span.End()

		logger := logging.WithTool(sc.Logger(), toolName)

		result, err := handler(ctx, request, sc)
		duration := time.Since(start)

		switch {
		case err != nil:
			instrumentation.SetSpanError(span, err)
			logger.Error("Tool invocation failed",
				logging.Duration(duration),
				logging.Status(logging.StatusError),
				logging.SanitizedErr(err))
		case result != nil && result.IsError:
			message := resultText(result)
			instrumentation.SetSpanError(span, errors.New(message))
			logger.Warn("Tool returned an error",
				logging.Duration(duration),
				logging.Status(logging.StatusError),
				logging.SanitizedErr(errors.New(message)))
		default:
			instrumentation.SetSpanSuccess(span)
			logger.Info("Tool invocation completed",
				logging.Duration(duration),
				logging.Status(logging.StatusSuccess))
		}

		return result, err
	}
}

// extractAuditInfoFromArgs turns the request arguments that identify the
// call into span attributes.
func extractAuditInfoFromArgs(args map[string]interface{}) []attribute.KeyValue {
	builder := instrumentation.NewSpanAttributeBuilder()
	if method, ok := args["method"].(string); ok && method != "" {
		builder.WithMethod(method)
	}
	if path, ok := args["path"].(string); ok && path != "" {
		builder.WithPath(path)
	}
	if schema, ok := args["schema"].(string); ok && schema != "" {
		builder.WithSchema(schema)
	}
	return builder.Build()
}

// resultText returns the text of the first content item of a result.
func resultText(result *mcp.CallToolResult) string {
	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			return textContent.Text
		}
	}
	return "tool error"
}
