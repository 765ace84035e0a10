package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// recordSpans installs a span recorder as the global tracer provider for the
// duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

// captureLogs returns a server context whose logger writes JSON to the
// returned buffer.
func captureLogs(t *testing.T) (*server.ServerContext, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := logging.New(&buf, "json", "debug")
	return newTestServerContext(t, server.WithLogger(logger)), &buf
}

func createTestRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func lastLogRecord(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))
	return record
}

func TestWrapWithAuditLogging_Success(t *testing.T) {
	recorder := recordSpans(t)
	sc, buf := captureLogs(t)

	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("success"), nil
	}

	wrapped := WrapWithAuditLogging("test_tool", handler, sc)
	request := createTestRequest(map[string]interface{}{
		"method": "GET",
		"path":   "/api/v1/namespaces/default/pods",
		"schema": "io.k8s.api.core.v1.PodList",
	})

	result, err := wrapped(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	record := lastLogRecord(t, buf)
	assert.Equal(t, "test_tool", record[logging.KeyTool])
	assert.Equal(t, logging.StatusSuccess, record[logging.KeyStatus])

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.test_tool", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "GET", attrs["http.request.method"])
	assert.Equal(t, "/api/v1/namespaces/default/pods", attrs["url.path"])
	assert.Equal(t, "io.k8s.api.core.v1.PodList", attrs["k8s.schema"])
}

func TestWrapWithAuditLogging_ToolError(t *testing.T) {
	recorder := recordSpans(t)
	sc, buf := captureLogs(t)

	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("path is required"), nil
	}

	result, err := WrapWithAuditLogging("test_tool", handler, sc)(context.Background(), createTestRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	record := lastLogRecord(t, buf)
	assert.Equal(t, slog.LevelWarn.String(), record[slog.LevelKey])
	assert.Equal(t, logging.StatusError, record[logging.KeyStatus])
	assert.Equal(t, "path is required", record[logging.KeyError])

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestWrapWithAuditLogging_HandlerError(t *testing.T) {
	recordSpans(t)
	sc, buf := captureLogs(t)

	boom := errors.New("dial tcp 10.0.0.1:6443: connection refused")
	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return nil, boom
	}

	result, err := WrapWithAuditLogging("test_tool", handler, sc)(context.Background(), createTestRequest(nil))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)

	record := lastLogRecord(t, buf)
	assert.Equal(t, slog.LevelError.String(), record[slog.LevelKey])
	assert.NotContains(t, record[logging.KeyError], "10.0.0.1")
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "boom", resultText(mcp.NewToolResultError("boom")))
	assert.Equal(t, "tool error", resultText(&mcp.CallToolResult{IsError: true}))
}
