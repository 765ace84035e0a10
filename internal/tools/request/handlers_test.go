package request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

const (
	testPodJSON  = `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"web-0","namespace":"default"}}`
	testNotFound = `{"kind":"Status","apiVersion":"v1","status":"Failure","message":"pods \"web-0\" not found","reason":"NotFound","code":404}`
)

// newTestServerContext returns a server context whose dispatcher targets srv.
func newTestServerContext(t *testing.T, srv *httptest.Server, opts ...server.Option) *server.ServerContext {
	t.Helper()

	dispatcherOpts := []k8s.Option{k8s.WithLogger(logging.Discard())}
	if srv != nil {
		dispatcherOpts = append(dispatcherOpts, k8s.WithDefaultServer(k8s.Server{URL: srv.URL}))
	}

	base := []server.Option{
		server.WithDispatcher(k8s.NewDispatcher(dispatcherOpts...)),
		server.WithLogger(logging.Discard()),
	}
	sc, err := server.NewServerContext(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error),
	sc *server.ServerContext, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := handler(context.Background(), request, sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// getResultText extracts the text of the first content item.
func getResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func TestHandleAPIRequest_DecodesTypedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/namespaces/default/pods/web-0", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, testPodJSON)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv)
	result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
		"method": "get",
		"path":   "/api/v1/namespaces/default/pods/web-0",
		"schema": "io.k8s.api.core.v1.Pod",
	})
	require.False(t, result.IsError, getResultText(t, result))

	var response struct {
		StatusCode int    `json:"statusCode"`
		Model      string `json:"model"`
		Object     struct {
			Kind     string `json:"kind"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
		} `json:"object"`
	}
	require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), &response))
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Models.Api.Core.V1.Pod", response.Model)
	assert.Equal(t, "Pod", response.Object.Kind)
	assert.Equal(t, "web-0", response.Object.Metadata.Name)
}

func TestHandleAPIRequest_ArgumentValidation(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv, server.WithNonDestructiveMode(false))

	tests := []struct {
		name      string
		args      map[string]interface{}
		wantError string
	}{
		{
			name:      "missing method",
			args:      map[string]interface{}{"path": "/api"},
			wantError: "method is required",
		},
		{
			name:      "invalid method",
			args:      map[string]interface{}{"method": "TRACE", "path": "/api"},
			wantError: "Invalid method",
		},
		{
			name:      "missing path",
			args:      map[string]interface{}{"method": "GET"},
			wantError: "path is required",
		},
		{
			name:      "relative path",
			args:      map[string]interface{}{"method": "GET", "path": "api/v1"},
			wantError: "path must start with '/'",
		},
		{
			name:      "query is not an array",
			args:      map[string]interface{}{"method": "GET", "path": "/api", "query": "watch=true"},
			wantError: "query must be an array",
		},
		{
			name:      "query entry without name",
			args:      map[string]interface{}{"method": "GET", "path": "/api", "query": []interface{}{"=true"}},
			wantError: "has no name",
		},
		{
			name:      "body of the wrong type",
			args:      map[string]interface{}{"method": "POST", "path": "/api", "body": float64(3)},
			wantError: "body must be a string or a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, handleAPIRequest, sc, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, getResultText(t, result), tt.wantError)
		})
	}

	assert.Zero(t, hits.Load(), "invalid arguments never reach the API server")
}

func TestHandleAPIRequest_NonDestructiveModeBlocksMutations(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv, server.WithNonDestructiveMode(true), server.WithDryRun(false))

	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
				"method": method,
				"path":   "/api/v1/namespaces/default/pods/web-0",
			})
			assert.True(t, result.IsError)
			assert.Contains(t, getResultText(t, result), "not allowed in non-destructive mode")
		})
	}

	assert.Zero(t, hits.Load())
}

func TestHandleAPIRequest_DryRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "propagationPolicy=Foreground&dryRun=All", r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"kind":"Status","apiVersion":"v1","status":"Success"}`)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv, server.WithNonDestructiveMode(true), server.WithDryRun(true))
	result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
		"method": "DELETE",
		"path":   "/api/v1/namespaces/default/pods/web-0",
		"query":  []interface{}{"propagationPolicy=Foreground"},
	})
	assert.False(t, result.IsError, getResultText(t, result))
}

func TestHandleAPIRequest_PatchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, k8s.ContentTypeMergePatch, r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"metadata":{"labels":{"tier":"web"}}}`, string(body))

		_, _ = io.WriteString(w, testPodJSON)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv, server.WithNonDestructiveMode(false))
	result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
		"method": "PATCH",
		"path":   "/api/v1/namespaces/default/pods/web-0",
		"body": map[string]interface{}{
			"metadata": map[string]interface{}{"labels": map[string]interface{}{"tier": "web"}},
		},
	})
	assert.False(t, result.IsError, getResultText(t, result))
}

func TestHandleAPIRequest_ExplicitContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, k8s.ContentTypeJSONPatch, r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, testPodJSON)
	}))
	defer srv.Close()

	sc := newTestServerContext(t, srv, server.WithNonDestructiveMode(false))
	result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
		"method":      "PATCH",
		"path":        "/api/v1/namespaces/default/pods/web-0",
		"body":        `[{"op":"remove","path":"/metadata/labels/tier"}]`,
		"contentType": k8s.ContentTypeJSONPatch,
	})
	assert.False(t, result.IsError, getResultText(t, result))
}

func TestHandleAPIRequest_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, testNotFound)
		}))
		defer srv.Close()

		result := callTool(t, handleAPIRequest, newTestServerContext(t, srv), map[string]interface{}{
			"method": "GET",
			"path":   "/api/v1/namespaces/default/pods/web-0",
		})
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "Request failed (NotFound)")
		assert.Contains(t, getResultText(t, result), `pods "web-0" not found`)
	})

	t.Run("no default server", func(t *testing.T) {
		result := callTool(t, handleAPIRequest, newTestServerContext(t, nil), map[string]interface{}{
			"method": "GET",
			"path":   "/version",
		})
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "Invalid configuration")
	})
}

func TestHandleAPIRequest_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"major":"1","minor":"34"}`)
	}))
	defer srv.Close()

	result := callTool(t, handleAPIRequest, newTestServerContext(t, srv), map[string]interface{}{
		"method": "GET",
		"path":   "/version",
	})
	require.False(t, result.IsError, getResultText(t, result))

	var response RequestResponse
	require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), &response))
	assert.Empty(t, response.Model)
	assert.Equal(t, map[string]interface{}{"major": "1", "minor": "34"}, response.Object)
}

// streamServer writes lines and flushes after each one. With hold set it
// keeps the connection open until the client goes away.
func streamServer(t *testing.T, lines []string, hold bool) *httptest.Server {
	t.Helper()

	stop := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, _ := w.(http.Flusher)

		w.Header().Set("Content-Type", "application/json")
		for _, line := range lines {
			_, _ = fmt.Fprintln(w, line)
			if flusher != nil {
				flusher.Flush()
			}
		}
		if hold {
			select {
			case <-r.Context().Done():
			case <-stop:
			}
		}
	}))
	t.Cleanup(func() {
		close(stop)
		srv.Close()
	})
	return srv
}

func decodeStreamResponse(t *testing.T, result *mcp.CallToolResult) StreamResponse {
	t.Helper()
	require.False(t, result.IsError, getResultText(t, result))

	var response StreamResponse
	require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), &response))
	return response
}

func TestHandleAPIStream(t *testing.T) {
	t.Run("collects until the server ends the stream", func(t *testing.T) {
		srv := streamServer(t, []string{"line 1", "", "line 2", "line 3"}, false)

		result := callTool(t, handleAPIStream, newTestServerContext(t, srv), map[string]interface{}{
			"path":  "/api/v1/namespaces/default/pods/web-0/log",
			"query": []interface{}{"follow=true"},
		})

		response := decodeStreamResponse(t, result)
		assert.NotEmpty(t, response.StreamID)
		assert.Equal(t, []interface{}{"line 1", "line 2", "line 3"}, response.Lines)
		assert.Equal(t, 3, response.LineCount)
		assert.False(t, response.LimitReached)
		assert.False(t, response.TimedOut)
	})

	t.Run("stops at max lines", func(t *testing.T) {
		srv := streamServer(t, []string{"a", "b", "c", "d", "e"}, true)

		result := callTool(t, handleAPIStream, newTestServerContext(t, srv), map[string]interface{}{
			"path":     "/api/v1/pods",
			"maxLines": float64(2),
		})

		response := decodeStreamResponse(t, result)
		assert.Equal(t, []interface{}{"a", "b"}, response.Lines)
		assert.True(t, response.LimitReached)
	})

	t.Run("stops at the timeout", func(t *testing.T) {
		srv := streamServer(t, []string{"only"}, true)

		result := callTool(t, handleAPIStream, newTestServerContext(t, srv), map[string]interface{}{
			"path":           "/api/v1/pods",
			"timeoutSeconds": float64(1),
		})

		response := decodeStreamResponse(t, result)
		assert.Equal(t, []interface{}{"only"}, response.Lines)
		assert.True(t, response.TimedOut)
		assert.Empty(t, response.Error)
	})

	t.Run("decodes watch events", func(t *testing.T) {
		srv := streamServer(t, []string{
			`{"type":"ADDED","object":` + testPodJSON + `}`,
			`not an event`,
		}, false)

		result := callTool(t, handleAPIStream, newTestServerContext(t, srv), map[string]interface{}{
			"path":   "/api/v1/namespaces/default/pods",
			"query":  []interface{}{"watch=true"},
			"schema": "io.k8s.api.core.v1.Pod",
		})

		response := decodeStreamResponse(t, result)
		require.Len(t, response.Lines, 2)

		event, ok := response.Lines[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ADDED", event["type"])
		object, ok := event["object"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Pod", object["kind"])

		failed, ok := response.Lines[1].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "not an event", failed["raw"])
		assert.NotEmpty(t, failed["decodeError"])
	})

	t.Run("HTTP error before any line", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"kind":"Status","apiVersion":"v1","status":"Failure","reason":"Forbidden","code":403}`)
		}))
		defer srv.Close()

		result := callTool(t, handleAPIStream, newTestServerContext(t, srv), map[string]interface{}{
			"path": "/api/v1/pods",
		})
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "Request failed (Forbidden)")
	})

	t.Run("missing path", func(t *testing.T) {
		result := callTool(t, handleAPIStream, newTestServerContext(t, nil), map[string]interface{}{})
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "path is required")
	})
}

func TestHandleResolveModel(t *testing.T) {
	sc := newTestServerContext(t, nil)

	tests := []struct {
		name string
		args map[string]interface{}
		want ResolveResponse
	}{
		{
			name: "registered schema",
			args: map[string]interface{}{"schema": "io.k8s.api.core.v1.Pod"},
			want: ResolveResponse{Schema: "io.k8s.api.core.v1.Pod", Mode: "safe", Found: true, Model: "Models.Api.Core.V1.Pod"},
		},
		{
			name: "unknown schema in safe mode",
			args: map[string]interface{}{"schema": "com.example.v1.Widget"},
			want: ResolveResponse{Schema: "com.example.v1.Widget", Mode: "safe", Found: false},
		},
		{
			name: "unknown schema in unsafe mode",
			args: map[string]interface{}{"schema": "com.example.v1.Widget", "unsafe": true},
			want: ResolveResponse{Schema: "com.example.v1.Widget", Mode: "unsafe", Found: true, Model: "Models.Com.Example.V1.Widget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, handleResolveModel, sc, tt.args)
			require.False(t, result.IsError)

			var got ResolveResponse
			require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing schema", func(t *testing.T) {
		result := callTool(t, handleResolveModel, sc, map[string]interface{}{})
		assert.True(t, result.IsError)
	})
}

func TestBoundedInt(t *testing.T) {
	assert.Equal(t, 10, boundedInt(nil, 10, 300))
	assert.Equal(t, 10, boundedInt(float64(0), 10, 300))
	assert.Equal(t, 10, boundedInt("5", 10, 300))
	assert.Equal(t, 5, boundedInt(float64(5), 10, 300))
	assert.Equal(t, 300, boundedInt(float64(1000), 10, 300))
}

func TestHandleAPIRequest_OutputProcessing(t *testing.T) {
	t.Run("secret data is masked", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"apiVersion":"v1","kind":"Secret","metadata":{"name":"db",`+
				`"managedFields":[{"manager":"kubectl"}]},"data":{"password":"aHVudGVyMg=="}}`)
		}))
		defer srv.Close()

		result := callTool(t, handleAPIRequest, newTestServerContext(t, srv), map[string]interface{}{
			"method": "GET",
			"path":   "/api/v1/namespaces/default/secrets/db",
			"schema": "io.k8s.api.core.v1.Secret",
		})
		require.False(t, result.IsError, getResultText(t, result))

		text := getResultText(t, result)
		assert.NotContains(t, text, "aHVudGVyMg==")
		assert.NotContains(t, text, "managedFields")

		var response RequestResponse
		require.NoError(t, json.Unmarshal([]byte(text), &response))
		assert.True(t, response.SecretsMasked)
	})

	t.Run("lists are truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"apiVersion":"v1","kind":"PodList","metadata":{},"items":[`+
				testPodJSON+`,`+testPodJSON+`,`+testPodJSON+`]}`)
		}))
		defer srv.Close()

		sc := newTestServerContext(t, srv, server.WithOutputConfig(server.OutputConfig{MaxItems: 2}))
		result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
			"method": "GET",
			"path":   "/api/v1/pods",
			"schema": "io.k8s.api.core.v1.PodList",
		})
		require.False(t, result.IsError, getResultText(t, result))

		var response RequestResponse
		require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), &response))
		object, ok := response.Object.(map[string]interface{})
		require.True(t, ok)
		assert.Len(t, object["items"], 2)
		require.Len(t, response.Warnings, 1)
		assert.Equal(t, 3, response.Warnings[0].Total)
	})

	t.Run("oversized response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, testPodJSON)
		}))
		defer srv.Close()

		sc := newTestServerContext(t, srv, server.WithOutputConfig(server.OutputConfig{MaxResponseBytes: 16}))
		result := callTool(t, handleAPIRequest, sc, map[string]interface{}{
			"method": "GET",
			"path":   "/api/v1/namespaces/default/pods/web-0",
		})
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "response too large")
	})
}
