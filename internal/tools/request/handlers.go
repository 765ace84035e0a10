package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/models"
	"github.com/giantswarm/kube-dispatch/internal/server"
	"github.com/giantswarm/kube-dispatch/internal/tools"
	"github.com/giantswarm/kube-dispatch/internal/tools/output"
)

// RequestResponse is the JSON returned by the request tool.
type RequestResponse struct {
	StatusCode    int              `json:"statusCode"`
	Model         string           `json:"model,omitempty"`
	Object        interface{}      `json:"object"`
	Warnings      []output.Warning `json:"warnings,omitempty"`
	SecretsMasked bool             `json:"secretsMasked,omitempty"`
}

// StreamResponse is the JSON returned by the stream tool.
type StreamResponse struct {
	StreamID     string        `json:"streamId"`
	Lines        []interface{} `json:"lines"`
	LineCount    int           `json:"lineCount"`
	LimitReached bool          `json:"limitReached,omitempty"`
	TimedOut     bool          `json:"timedOut,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// ResolveResponse is the JSON returned by the resolve tool.
type ResolveResponse struct {
	Schema string `json:"schema"`
	Mode   string `json:"mode"`
	Found  bool   `json:"found"`
	Model  string `json:"model,omitempty"`
}

// handleAPIRequest handles raw API requests
func handleAPIRequest(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	methodArg, _ := args["method"].(string)
	if methodArg == "" {
		return mcp.NewToolResultError("method is required"), nil
	}
	method, err := k8s.ParseMethod(methodArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid method: %v", err)), nil
	}

	if result := tools.CheckMutatingMethod(sc, method); result != nil {
		return result, nil
	}

	path, errResult := requirePath(args)
	if errResult != nil {
		return errResult, nil
	}

	query, err := parseQuery(args["query"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body, err := parseBody(args["body"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	contentType, _ := args["contentType"].(string)
	if contentType == "" && len(body) > 0 {
		contentType = defaultContentType(method)
	}
	schema, _ := args["schema"].(string)

	req := tools.ApplyDryRun(sc, k8s.Request{
		Method:         method,
		Path:           path,
		Query:          query,
		Body:           body,
		ContentType:    contentType,
		ResponseSchema: schema,
	})

	result, err := sc.Dispatcher().Run(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(formatRequestError(err)), nil
	}

	response := RequestResponse{
		StatusCode: result.StatusCode,
		Model:      result.Model.String(),
	}
	if result.Object == nil {
		if len(result.Body) > 0 {
			response.Object = string(result.Body)
		}
	} else {
		processed, err := getOutputProcessor(sc).Process(result.Object)
		if err != nil {
			return mcp.NewToolResultError(formatOutputError(err)), nil
		}
		response.Object = processed.Object
		response.Warnings = processed.Warnings
		response.SecretsMasked = processed.SecretsMasked
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleAPIStream handles streaming GET requests and collects their lines
func handleAPIStream(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, errResult := requirePath(args)
	if errResult != nil {
		return errResult, nil
	}

	query, err := parseQuery(args["query"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	schema, _ := args["schema"].(string)
	timeout := time.Duration(boundedInt(args["timeoutSeconds"], defaultStreamTimeoutSeconds, maxStreamTimeoutSeconds)) * time.Second
	maxLines := boundedInt(args["maxLines"], defaultStreamMaxLines, maxStreamMaxLines)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sink := make(chan k8s.Line, 64)
	result, err := sc.Dispatcher().Run(ctx, k8s.Request{
		Method:         k8s.MethodGet,
		Path:           path,
		Query:          query,
		ResponseSchema: schema,
	}, k8s.StreamTo(sink))
	if err != nil {
		return mcp.NewToolResultError(formatRequestError(err)), nil
	}
	stream := result.Stream
	defer stream.Close()

	decoder := models.NewSchemeDecoder(sc.Resolver().Registry(), nil)
	processor := getOutputProcessor(sc)
	response := StreamResponse{
		StreamID: stream.ID(),
		Lines:    []interface{}{},
	}

	for line := range sink {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		response.Lines = append(response.Lines, decodeLine(line.Text, schema, decoder, processor))
		if len(response.Lines) >= maxLines {
			response.LimitReached = true
			stream.Close()
			break
		}
	}

	streamErr := stream.Wait()
	switch {
	case response.LimitReached:
	case ctx.Err() != nil:
		response.TimedOut = true
	case streamErr != nil:
		if len(response.Lines) == 0 {
			return mcp.NewToolResultError(formatRequestError(streamErr)), nil
		}
		response.Error = formatRequestError(streamErr)
	}
	response.LineCount = len(response.Lines)

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleResolveModel handles schema name resolution
func handleResolveModel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	schema, ok := args["schema"].(string)
	if !ok || schema == "" {
		return mcp.NewToolResultError("schema is required"), nil
	}

	mode := models.Safe
	if unsafe, _ := args["unsafe"].(bool); unsafe {
		mode = models.Unsafe
	}

	id, found := sc.Resolver().Resolve(schema, mode)
	response := ResolveResponse{
		Schema: schema,
		Mode:   mode.String(),
		Found:  found,
		Model:  id.String(),
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

func requirePath(args map[string]interface{}) (string, *mcp.CallToolResult) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", mcp.NewToolResultError("path is required")
	}
	if !strings.HasPrefix(path, "/") {
		return "", mcp.NewToolResultError("path must start with '/'")
	}
	return path, nil
}

// parseQuery converts 'name=value' strings into query parameters, keeping
// their order. Only the first '=' separates name from value.
func parseQuery(arg interface{}) ([]k8s.QueryParam, error) {
	if arg == nil {
		return nil, nil
	}
	items, ok := arg.([]interface{})
	if !ok {
		return nil, errors.New("query must be an array of 'name=value' strings")
	}

	query := make([]k8s.QueryParam, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("query entry %v is not a string", item)
		}
		param, err := k8s.ParseQueryParam(s)
		if err != nil {
			return nil, err
		}
		query = append(query, param)
	}
	return query, nil
}

// parseBody accepts a string sent verbatim, or a JSON object or array that is
// marshaled.
func parseBody(arg interface{}) ([]byte, error) {
	switch body := arg.(type) {
	case nil:
		return nil, nil
	case string:
		if body == "" {
			return nil, nil
		}
		return []byte(body), nil
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("body must be a string or a JSON object, got %T", arg)
	}
}

func defaultContentType(method k8s.Method) string {
	if method == k8s.MethodPatch {
		return k8s.ContentTypeMergePatch
	}
	return k8s.ContentTypeJSON
}

// boundedInt reads a JSON number argument. Missing or non-positive values
// select def; values above limit are capped.
func boundedInt(arg interface{}, def, limit int) int {
	f, ok := arg.(float64)
	if !ok || f <= 0 {
		return def
	}
	if f > float64(limit) {
		return limit
	}
	return int(f)
}

// decodeLine decodes a stream line as a watch event when a schema is set.
// Lines that fail to decode are returned raw with the decode error.
func decodeLine(text, schema string, decoder models.Decoder, processor *output.Processor) interface{} {
	if schema == "" {
		return text
	}
	event, err := k8s.DecodeWatchEvent(text, schema, decoder)
	if err != nil {
		return map[string]interface{}{
			"raw":         text,
			"decodeError": err.Error(),
		}
	}

	processed, err := processor.Process(event.Object)
	if err != nil {
		return map[string]interface{}{
			"type":        event.Type,
			"decodeError": formatOutputError(err),
		}
	}
	return map[string]interface{}{
		"type":   event.Type,
		"object": processed.Object,
	}
}

// getOutputProcessor builds the response processor from the server settings.
func getOutputProcessor(sc *server.ServerContext) *output.Processor {
	oc := sc.OutputConfig()
	return output.NewProcessor(&output.Config{
		MaxItems:         oc.MaxItems,
		MaxResponseBytes: oc.MaxResponseBytes,
		SlimOutput:       oc.SlimOutput,
		MaskSecrets:      oc.MaskSecrets,
	})
}

func formatOutputError(err error) string {
	if errors.Is(err, output.ErrResponseTooLarge) {
		return fmt.Sprintf("Response not returned: %v. Narrow the request with limit, labelSelector or fieldSelector.", err)
	}
	return fmt.Sprintf("Failed to process response: %v", err)
}

// formatRequestError renders a dispatcher error for the tool result. API
// errors carry the Kubernetes status reason.
func formatRequestError(err error) string {
	var configErr *k8s.ConfigurationError
	switch {
	case errors.As(err, &configErr):
		return fmt.Sprintf("Invalid configuration: %v", err)
	case apierrors.ReasonForError(err) != metav1.StatusReasonUnknown:
		return fmt.Sprintf("Request failed (%s): %v", apierrors.ReasonForError(err), err)
	default:
		return fmt.Sprintf("Request failed: %v", err)
	}
}
