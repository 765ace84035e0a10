package request

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/kube-dispatch/internal/server"
	"github.com/giantswarm/kube-dispatch/internal/tools"
)

// Tool names.
const (
	ToolAPIRequest   = "kubernetes_api_request"
	ToolAPIStream    = "kubernetes_api_stream"
	ToolResolveModel = "kubernetes_resolve_model"
)

// Stream collection limits.
const (
	defaultStreamTimeoutSeconds = 10
	maxStreamTimeoutSeconds     = 300
	defaultStreamMaxLines       = 100
	maxStreamMaxLines           = 5000
)

// RegisterRequestTools registers the raw API request tools with the MCP server
func RegisterRequestTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	requestTool := mcp.NewTool(ToolAPIRequest,
		mcp.WithDescription(`Send one request to the Kubernetes API server and return the decoded response.

The path is the full API path, for example:
- /api/v1/namespaces/default/pods/web-0
- /apis/apps/v1/namespaces/kube-system/deployments
- /version

Set 'schema' to the OpenAPI definition name of the response (e.g. 'io.k8s.api.core.v1.Pod')
to have it decoded into that model. Without a schema the response is returned as plain JSON.

In non-destructive mode only allowed methods (GET by default) are sent. In dry-run mode
mutating requests are sent with dryRun=All.`),
		mcp.WithString("method",
			mcp.Required(),
			mcp.Description("HTTP method"),
			mcp.Enum("GET", "POST", "PUT", "PATCH", "DELETE"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("API path starting with '/'"),
		),
		mcp.WithArray("query",
			mcp.Description("Query parameters as 'name=value' strings, sent in the given order (e.g. ['labelSelector=app=nginx', 'limit=10'])"),
		),
		mcp.WithString("body",
			mcp.Description("Request body, sent as-is (usually a JSON document)"),
		),
		mcp.WithString("contentType",
			mcp.Description("Content-Type of the body. Defaults to application/json, or application/merge-patch+json for PATCH"),
		),
		mcp.WithString("schema",
			mcp.Description("Schema name the response decodes into (e.g. 'io.k8s.api.core.v1.PodList')"),
		),
	)
	s.AddTool(requestTool, tools.WrapWithAuditLogging(ToolAPIRequest, handleAPIRequest, sc))

	streamTool := mcp.NewTool(ToolAPIStream,
		mcp.WithDescription(`Open a streaming GET request (watch or log follow) and collect the lines it emits.

Collection stops after 'maxLines' lines, after 'timeoutSeconds', or when the server ends the stream.
Examples:
- Watch pods: {"path": "/api/v1/namespaces/default/pods", "query": ["watch=true"], "schema": "io.k8s.api.core.v1.Pod"}
- Follow logs: {"path": "/api/v1/namespaces/default/pods/web-0/log", "query": ["follow=true"]}

With a schema each line is decoded as a watch event {type, object}.`),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("API path starting with '/'"),
		),
		mcp.WithArray("query",
			mcp.Description("Query parameters as 'name=value' strings"),
		),
		mcp.WithString("schema",
			mcp.Description("Schema name of watched objects; lines are then decoded as watch events"),
		),
		mcp.WithNumber("timeoutSeconds",
			mcp.Description("Maximum collection time in seconds (default: 10, max: 300)"),
		),
		mcp.WithNumber("maxLines",
			mcp.Description("Maximum number of lines to collect (default: 100, max: 5000)"),
		),
	)
	s.AddTool(streamTool, tools.WrapWithAuditLogging(ToolAPIStream, handleAPIStream, sc))

	resolveTool := mcp.NewTool(ToolResolveModel,
		mcp.WithDescription(`Resolve an OpenAPI schema name to the model identifier used for decoding.

In safe mode (default) only registered schemas resolve. In unsafe mode the identifier is derived
from the name even when it is not registered.`),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema name, e.g. 'io.k8s.api.apps.v1.Deployment'"),
		),
		mcp.WithBoolean("unsafe",
			mcp.Description("Derive an identifier for unregistered schemas (default: false)"),
		),
	)
	s.AddTool(resolveTool, tools.WrapWithAuditLogging(ToolResolveModel, handleResolveModel, sc))

	return nil
}
