package k8s

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	utiljson "k8s.io/apimachinery/pkg/util/json"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/models"
)

// maxErrorBodyBytes bounds how much of a non-2xx streaming response is read.
const maxErrorBodyBytes = 1 << 20

// Dispatcher issues Requests against a Kubernetes API server.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	defaultServer     *Server
	decoder           models.Decoder
	resolver          *models.Resolver
	logger            *slog.Logger
	metrics           *instrumentation.Metrics
	requestTimeout    time.Duration
	streamIdleTimeout time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDefaultServer sets the server used by calls that do not pass WithServer.
func WithDefaultServer(server Server) Option {
	return func(d *Dispatcher) {
		d.defaultServer = &server
	}
}

// WithDecoder sets the decoder for synchronous response bodies.
func WithDecoder(decoder models.Decoder) Option {
	return func(d *Dispatcher) {
		if decoder != nil {
			d.decoder = decoder
		}
	}
}

// WithResolver sets the resolver used to report the model of a response.
func WithResolver(resolver *models.Resolver) Option {
	return func(d *Dispatcher) {
		if resolver != nil {
			d.resolver = resolver
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(d *Dispatcher) {
		if metrics != nil {
			d.metrics = metrics
		}
	}
}

// WithRequestTimeout bounds synchronous calls. Zero or negative disables the
// timeout and leaves cancellation to the context.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.requestTimeout = timeout
	}
}

// WithStreamIdleTimeout sets how long a stream may go without receiving data
// before it is torn down. Zero or negative disables the idle timeout.
func WithStreamIdleTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.streamIdleTimeout = timeout
	}
}

// NewDispatcher creates a Dispatcher. Without WithDefaultServer every call
// must pass WithServer.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		decoder:           models.NewSchemeDecoder(nil, nil),
		resolver:          models.NewResolver(nil),
		logger:            slog.Default(),
		metrics:           &instrumentation.Metrics{},
		requestTimeout:    DefaultRequestTimeout,
		streamIdleTimeout: DefaultStreamIdleTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultServer returns the configured default server, if any.
func (d *Dispatcher) DefaultServer() (Server, bool) {
	if d.defaultServer == nil {
		return Server{}, false
	}
	return *d.defaultServer, true
}

// CallOption configures a single Run.
type CallOption func(*callOptions)

type callOptions struct {
	server *Server
	sink   chan<- Line
}

// WithServer overrides the dispatcher's default server for one call.
func WithServer(server Server) CallOption {
	return func(o *callOptions) {
		o.server = &server
	}
}

// StreamTo switches the call into streaming mode. Completed lines are sent
// on sink in the order they arrive and sink is closed when the stream ends.
// Each stream needs its own channel.
func StreamTo(sink chan<- Line) CallOption {
	return func(o *callOptions) {
		o.sink = sink
	}
}

// Result is the outcome of a successful Run.
//
// For synchronous calls StatusCode, Body and Object are set, and Model holds
// the registered model of the response schema (empty when the schema is not
// registered). For streaming calls only Stream is set.
type Result struct {
	StatusCode int
	Body       []byte
	Model      models.ModelID
	Object     any
	Stream     *Stream
}

// Run dispatches req. Errors are one of *ConfigurationError, *TransportError,
// *HTTPError or *DecodeError, or wrap ErrInvalidMethod.
//
// With StreamTo, Run returns as soon as the stream goroutine is started;
// transport and HTTP failures are then reported by Stream.Err.
func (d *Dispatcher) Run(ctx context.Context, req Request, opts ...CallOption) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var call callOptions
	for _, opt := range opts {
		opt(&call)
	}

	server, err := d.findServer(call.server)
	if err != nil {
		return nil, err
	}

	logger := logging.WithOperation(d.logger, "dispatch").With(
		logging.Method(req.Method.String()),
		logging.Path(req.Path),
	)

	if call.sink != nil {
		return d.startStream(ctx, req, server, call.sink, logger)
	}
	return d.runSync(ctx, req, server, logger)
}

// MustRun is like Run but panics with the error Run would have returned.
func (d *Dispatcher) MustRun(ctx context.Context, req Request, opts ...CallOption) *Result {
	result, err := d.Run(ctx, req, opts...)
	if err != nil {
		panic(err)
	}
	return result
}

// findServer picks the per-call server over the default one.
func (d *Dispatcher) findServer(override *Server) (Server, error) {
	var server Server
	switch {
	case override != nil:
		server = *override
	case d.defaultServer != nil:
		server = *d.defaultServer
	default:
		return Server{}, &ConfigurationError{
			Reason: "no server given for the call and no default server configured",
			Err:    ErrNoServer,
		}
	}

	if err := server.Validate(); err != nil {
		return Server{}, err
	}
	return server, nil
}

// newHTTPRequest builds the HTTP request and a transport dedicated to it.
func (d *Dispatcher) newHTTPRequest(ctx context.Context, req Request, server Server) (*http.Request, *http.Transport, error) {
	tlsConfig, err := tlsConfigFor(server)
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: "building TLS options", Err: err}
	}

	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), req.targetURL(server.URL), body)
	if err != nil {
		return nil, nil, &ConfigurationError{Reason: "building request", Err: err}
	}

	if err := applyHeaders(httpReq, req, server.Auth); err != nil {
		return nil, nil, &ConfigurationError{Reason: "building headers", Err: err}
	}

	return httpReq, newTransport(tlsConfig), nil
}

func (d *Dispatcher) runSync(ctx context.Context, req Request, server Server, logger *slog.Logger) (*Result, error) {
	ctx, span := instrumentation.StartRequestSpan(ctx, req.Method.String(),
		instrumentation.NewSpanAttributeBuilder().
			WithMethod(req.Method.String()).
			WithPath(req.Path).
			WithSchema(req.ResponseSchema).
			WithStreaming(false).
			Build()...)
	defer span.End()

	httpReq, transport, err := d.newHTTPRequest(ctx, req, server)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{Transport: transport}
	if d.requestTimeout > 0 {
		client.Timeout = d.requestTimeout
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		d.metrics.RecordRequest(ctx, req.Method.String(), 0, time.Since(start))
		transportErr := &TransportError{Method: req.Method, URL: httpReq.URL.String(), Err: err}
		instrumentation.SetSpanError(span, transportErr)
		logger.Warn("request failed", logging.Host(server.URL), logging.SanitizedErr(err))
		return nil, transportErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	d.metrics.RecordRequest(ctx, req.Method.String(), resp.StatusCode, duration)
	instrumentation.SetSpanStatusCode(span, resp.StatusCode)
	if err != nil {
		transportErr := &TransportError{Method: req.Method, URL: httpReq.URL.String(), Err: err}
		instrumentation.SetSpanError(span, transportErr)
		return nil, transportErr
	}

	if !isSuccess(resp.StatusCode) {
		httpErr := newHTTPError(resp.StatusCode, body)
		instrumentation.SetSpanError(span, httpErr)
		logger.Debug("request returned error status",
			logging.StatusCode(resp.StatusCode),
			logging.Duration(duration))
		return nil, httpErr
	}

	result := &Result{StatusCode: resp.StatusCode, Body: body}
	if req.ResponseSchema != "" {
		if model, ok := d.resolver.Resolve(req.ResponseSchema, models.Safe); ok {
			result.Model = model
		} else {
			logger.Debug("response schema not registered", logging.Schema(req.ResponseSchema))
		}
	}

	result.Object, err = d.decoder.Decode(body, req.ResponseSchema)
	if err != nil {
		decodeErr := &DecodeError{Schema: req.ResponseSchema, Err: err}
		instrumentation.SetSpanError(span, decodeErr)
		return nil, decodeErr
	}

	instrumentation.SetSpanSuccess(span)
	logger.Debug("request completed",
		logging.StatusCode(resp.StatusCode),
		logging.Model(result.Model.String()),
		logging.Duration(duration))

	return result, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

// newHTTPError parses body as JSON when possible and keeps the raw bytes
// otherwise.
func newHTTPError(statusCode int, body []byte) *HTTPError {
	var payload any
	if err := utiljson.Unmarshal(body, &payload); err != nil {
		return &HTTPError{StatusCode: statusCode, Payload: body}
	}
	return &HTTPError{StatusCode: statusCode, Payload: payload}
}
