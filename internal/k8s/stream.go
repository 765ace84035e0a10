package k8s

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/linebuffer"
	"github.com/giantswarm/kube-dispatch/internal/logging"
)

// readBufferSize is the size of a single read from a stream body.
const readBufferSize = 32 * 1024

// errStreamClosed is the cancellation cause set by Stream.Close.
var errStreamClosed = errors.New("stream closed")

// Line is one complete newline-delimited record from a stream.
type Line struct {
	StreamID string
	Text     string
}

// Stream is a handle to an in-flight streaming call.
type Stream struct {
	id     string
	cancel context.CancelCauseFunc
	done   chan struct{}
	lines  atomic.Int64

	// err is written once before done is closed.
	err error
}

// ID returns the stream identifier carried by every Line of the stream.
func (s *Stream) ID() string {
	return s.id
}

// Done is closed once the stream has ended and Err is final. The sink is
// closed right after Done, so a consumer that sees the sink close can read Err.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Err returns the reason the stream ended. It is nil while the stream is
// running, after a clean end of the response body, and after the stream was
// closed by Close or by cancelling the context passed to Run.
func (s *Stream) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the stream ends and returns Err.
func (s *Stream) Wait() error {
	<-s.done
	return s.err
}

// Lines returns the number of lines delivered so far.
func (s *Stream) Lines() int64 {
	return s.lines.Load()
}

// Close tears down the connection. It does not wait for the stream goroutine;
// use Wait or Done for that. Close is safe to call more than once.
func (s *Stream) Close() {
	s.cancel(errStreamClosed)
}

// startStream validates everything that can fail before I/O, then hands the
// connection to a goroutine and returns.
func (d *Dispatcher) startStream(ctx context.Context, req Request, server Server, sink chan<- Line, logger *slog.Logger) (*Result, error) {
	streamCtx, cancel := context.WithCancelCause(ctx)

	stream := &Stream{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	spanCtx, span := instrumentation.StartRequestSpan(streamCtx, req.Method.String(),
		instrumentation.NewSpanAttributeBuilder().
			WithMethod(req.Method.String()).
			WithPath(req.Path).
			WithSchema(req.ResponseSchema).
			WithStreaming(true).
			Build()...)

	httpReq, transport, err := d.newHTTPRequest(spanCtx, req, server)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		span.End()
		cancel(err)
		return nil, err
	}

	logger = logging.WithStream(logger, stream.id)
	d.metrics.IncrementActiveStreams(ctx)

	go d.pump(streamCtx, stream, httpReq, transport, sink, span, logger)

	return &Result{Stream: stream}, nil
}

// pump owns the connection and the LineBuffer of one stream.
func (d *Dispatcher) pump(ctx context.Context, stream *Stream, httpReq *http.Request, transport *http.Transport,
	sink chan<- Line, span trace.Span, logger *slog.Logger) {
	start := time.Now()
	statusCode := 0

	finish := func(err error) {
		stream.err = d.streamError(ctx, httpReq, err)

		transport.CloseIdleConnections()
		stream.cancel(errStreamClosed)

		d.metrics.DecrementActiveStreams(context.WithoutCancel(ctx))
		d.metrics.RecordRequest(context.WithoutCancel(ctx), httpReq.Method, statusCode, time.Since(start))
		if stream.err != nil {
			instrumentation.SetSpanError(span, stream.err)
			logger.Warn("stream ended with error", logging.SanitizedErr(stream.err))
		} else {
			instrumentation.SetSpanSuccess(span)
			logger.Debug("stream closed", slog.Int64("lines", stream.Lines()), logging.Duration(time.Since(start)))
		}
		span.End()

		close(stream.done)
		close(sink)
	}

	idle := newIdleTimer(d.streamIdleTimeout, func() { stream.cancel(ErrStreamIdle) })
	defer idle.Stop()

	client := &http.Client{Transport: transport}
	resp, err := client.Do(httpReq)
	if err != nil {
		finish(err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	statusCode = resp.StatusCode
	instrumentation.SetSpanStatusCode(span, statusCode)
	if !isSuccess(statusCode) {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if readErr != nil {
			finish(readErr)
			return
		}
		finish(newHTTPError(statusCode, body))
		return
	}

	logger.Debug("stream opened", logging.StatusCode(statusCode))

	buffer := linebuffer.New()
	chunk := make([]byte, readBufferSize)

	send := func(text string) bool {
		select {
		case sink <- Line{StreamID: stream.id, Text: text}:
			stream.lines.Add(1)
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			// A slow consumer does not count as an idle connection.
			idle.Stop()
			buffer.AddChunk(string(chunk[:n]))
			lines := buffer.Lines()
			for _, text := range lines {
				if !send(text) {
					finish(ctx.Err())
					return
				}
			}
			d.metrics.RecordStreamLines(ctx, len(lines))
			idle.Reset()
		}

		if errors.Is(readErr, io.EOF) {
			// Only newline-terminated lines are records; a partial tail is dropped.
			if pending := buffer.Pending(); pending != "" {
				logger.Debug("dropping unterminated tail", slog.Int("bytes", len(pending)))
			}
			finish(nil)
			return
		}
		if readErr != nil {
			finish(readErr)
			return
		}
	}
}

// idleTimer fires when a stream receives nothing for timeout. A zero or
// negative timeout yields a timer that never fires.
type idleTimer struct {
	timer   *time.Timer
	timeout time.Duration
}

func newIdleTimer(timeout time.Duration, fire func()) *idleTimer {
	if timeout <= 0 {
		return &idleTimer{}
	}
	return &idleTimer{timer: time.AfterFunc(timeout, fire), timeout: timeout}
}

func (t *idleTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *idleTimer) Reset() {
	if t.timer != nil {
		t.timer.Reset(t.timeout)
	}
}

// streamError classifies the reason a stream ended.
func (d *Dispatcher) streamError(ctx context.Context, httpReq *http.Request, err error) error {
	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, errStreamClosed), errors.Is(cause, context.Canceled):
		return nil
	case errors.Is(cause, ErrStreamIdle):
		return &TransportError{Method: Method(httpReq.Method), URL: httpReq.URL.String(), Err: ErrStreamIdle}
	case err == nil:
		return nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if cause != nil {
		err = cause
	}
	return &TransportError{Method: Method(httpReq.Method), URL: httpReq.URL.String(), Err: err}
}
