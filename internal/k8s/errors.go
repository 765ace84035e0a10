package k8s

import (
	"errors"
	"fmt"
	"net/http"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Sentinel errors returned by the dispatcher.
// These errors can be checked using errors.Is() for programmatic error handling.
var (
	// ErrNoServer indicates that no server was passed to the call and the
	// dispatcher has no default server configured.
	ErrNoServer = errors.New("no server configured")

	// ErrInvalidServerURL indicates that the server URL is empty or not an
	// absolute http(s) URL.
	ErrInvalidServerURL = errors.New("invalid server URL")

	// ErrInvalidMethod indicates a request method outside GET, POST, PUT,
	// DELETE and PATCH.
	ErrInvalidMethod = errors.New("invalid request method")

	// ErrUnsupportedAuth indicates an Auth value the dispatcher does not know
	// how to apply.
	ErrUnsupportedAuth = errors.New("unsupported auth variant")

	// ErrStreamIdle indicates that a stream received no data for longer than
	// the stream idle timeout.
	ErrStreamIdle = errors.New("stream idle timeout")
)

// ConfigurationError reports that the effective server for a call could not
// be determined. It is fatal for the call and is raised before any network
// I/O happens.
type ConfigurationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Unwrap returns the underlying cause for use with errors.Is().
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransportError reports a network or TLS failure. The request never
// produced a response, or the response body could not be read.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport error: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause for use with errors.Is().
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError reports a response with a status code outside 200-299.
//
// Payload holds the body parsed as JSON when that succeeds, and the raw body
// bytes otherwise. HTTPError implements the apimachinery APIStatus interface,
// so the helpers in k8s.io/apimachinery/pkg/api/errors work on it:
//
//	if apierrors.IsNotFound(err) {
//	    // ...
//	}
type HTTPError struct {
	StatusCode int
	Payload    any
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if msg := e.message(); msg != "" {
		return fmt.Sprintf("http %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
	}
	return fmt.Sprintf("http %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Raw returns the payload when it could not be parsed as JSON.
func (e *HTTPError) Raw() ([]byte, bool) {
	raw, ok := e.Payload.([]byte)
	return raw, ok
}

// Status implements apierrors.APIStatus. A Kubernetes Status payload is
// returned as sent by the server; any other payload yields a Status derived
// from the status code.
func (e *HTTPError) Status() metav1.Status {
	if object, ok := e.Payload.(map[string]any); ok && object["kind"] == "Status" {
		status := metav1.Status{
			Status:  metav1.StatusFailure,
			Code:    int32(e.StatusCode), //nolint:gosec // HTTP status codes fit in int32
			Message: stringField(object, "message"),
			Reason:  metav1.StatusReason(stringField(object, "reason")),
		}
		switch code := object["code"].(type) {
		case int64:
			status.Code = int32(code) //nolint:gosec // HTTP status codes fit in int32
		case float64:
			status.Code = int32(code)
		}
		if status.Reason == "" {
			status.Reason = reasonForCode(e.StatusCode)
		}
		return status
	}

	return metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    int32(e.StatusCode), //nolint:gosec // HTTP status codes fit in int32
		Reason:  reasonForCode(e.StatusCode),
		Message: e.message(),
	}
}

func (e *HTTPError) message() string {
	switch payload := e.Payload.(type) {
	case map[string]any:
		return stringField(payload, "message")
	case []byte:
		return truncate(string(payload), maxErrorMessageBytes)
	case string:
		return truncate(payload, maxErrorMessageBytes)
	default:
		return ""
	}
}

// DecodeError reports that a successful response body could not be decoded
// into the requested schema.
type DecodeError struct {
	Schema string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("decoding response: %v", e.Err)
	}
	return fmt.Sprintf("decoding response as %s: %v", e.Schema, e.Err)
}

// Unwrap returns the underlying cause for use with errors.Is().
func (e *DecodeError) Unwrap() error {
	return e.Err
}

const maxErrorMessageBytes = 512

func stringField(object map[string]any, key string) string {
	value, _ := object[key].(string)
	return value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// reasonForCode maps status codes to the reasons the API server uses for
// them, so apierrors.Is* matches payloads that are not Status objects.
func reasonForCode(code int) metav1.StatusReason {
	switch code {
	case http.StatusBadRequest:
		return metav1.StatusReasonBadRequest
	case http.StatusUnauthorized:
		return metav1.StatusReasonUnauthorized
	case http.StatusForbidden:
		return metav1.StatusReasonForbidden
	case http.StatusNotFound:
		return metav1.StatusReasonNotFound
	case http.StatusMethodNotAllowed:
		return metav1.StatusReasonMethodNotAllowed
	case http.StatusNotAcceptable:
		return metav1.StatusReasonNotAcceptable
	case http.StatusConflict:
		return metav1.StatusReasonConflict
	case http.StatusGone:
		return metav1.StatusReasonGone
	case http.StatusRequestEntityTooLarge:
		return metav1.StatusReasonRequestEntityTooLarge
	case http.StatusUnsupportedMediaType:
		return metav1.StatusReasonUnsupportedMediaType
	case http.StatusUnprocessableEntity:
		return metav1.StatusReasonInvalid
	case http.StatusTooManyRequests:
		return metav1.StatusReasonTooManyRequests
	case http.StatusInternalServerError:
		return metav1.StatusReasonInternalError
	case http.StatusServiceUnavailable:
		return metav1.StatusReasonServiceUnavailable
	case http.StatusGatewayTimeout:
		return metav1.StatusReasonTimeout
	default:
		return metav1.StatusReasonUnknown
	}
}
