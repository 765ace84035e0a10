package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/api/meta"

	"github.com/giantswarm/kube-dispatch/internal/instrumentation"
	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/logging"
	"github.com/giantswarm/kube-dispatch/internal/models"
	"github.com/giantswarm/kube-dispatch/internal/server"
)

// sinkBuffer is the number of lines buffered per stream before the stream
// goroutine blocks on the printer.
const sinkBuffer = 64

// watchOptions holds the flags of the watch command.
type watchOptions struct {
	Paths       []string
	Query       []string
	Watch       bool
	Schema      string
	MetricsAddr string
}

func newWatchCmd() *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch PATH...",
		Short: "Stream one or more endpoints line by line",
		Long: `Open a streaming request for every PATH and print each line as it arrives.
Lines from several paths are interleaved and prefixed with their path.

With --schema every line is decoded as a watch event and printed as
"TYPE namespace/name"; lines that do not decode are printed unchanged.

Examples:
  kube-dispatch watch /api/v1/namespaces/default/pods --watch
  kube-dispatch watch /api/v1/namespaces/default/pods/web-0/log -q follow=true
  kube-dispatch watch /api/v1/pods /apis/apps/v1/deployments --watch --schema io.k8s.api.core.v1.Pod`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			metrics, stop, err := startWatchMetrics(ctx, opts.MetricsAddr)
			if err != nil {
				return err
			}
			defer stop()

			dispatcher, err := dispatcherFromConfig(metrics)
			if err != nil {
				return err
			}
			return runWatch(ctx, dispatcher, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Query, "query", "q", nil, "Query parameter as name=value, sent to every path (repeatable)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Append watch=true to every path")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Decode lines as watch events of this schema, e.g. io.k8s.api.core.v1.Pod")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus stream metrics on this address while watching")

	return cmd
}

// runWatch streams every path concurrently and prints lines until all
// streams end. The first stream failure stops the others.
func runWatch(ctx context.Context, dispatcher *k8s.Dispatcher, opts watchOptions, out io.Writer) error {
	var query []k8s.QueryParam
	for _, raw := range opts.Query {
		param, err := k8s.ParseQueryParam(raw)
		if err != nil {
			return err
		}
		query = append(query, param)
	}
	if opts.Watch {
		query = append(query, k8s.QueryParam{Name: "watch", Value: "true"})
	}

	printer := &linePrinter{
		out:     out,
		schema:  opts.Schema,
		decoder: models.NewSchemeDecoder(nil, nil),
		prefix:  len(opts.Paths) > 1,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, path := range opts.Paths {
		req := k8s.Request{Method: k8s.MethodGet, Path: path, Query: query}

		sink := make(chan k8s.Line, sinkBuffer)
		result, err := dispatcher.Run(gctx, req, k8s.StreamTo(sink))
		if err != nil {
			cancel()
			_ = g.Wait()
			return fmt.Errorf("%s: %w", path, err)
		}

		stream := result.Stream
		g.Go(func() error {
			for line := range sink {
				printer.print(path, line.Text)
			}
			if err := stream.Wait(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// linePrinter serializes output from concurrent streams.
type linePrinter struct {
	mu      sync.Mutex
	out     io.Writer
	schema  string
	decoder models.Decoder
	prefix  bool
}

func (p *linePrinter) print(path, text string) {
	if text == "" {
		return
	}
	if p.schema != "" {
		text = p.summarize(text)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prefix {
		_, _ = fmt.Fprintf(p.out, "[%s] %s\n", path, text)
		return
	}
	_, _ = fmt.Fprintln(p.out, text)
}

// summarize renders a watch event as "TYPE namespace/name", or returns the
// line unchanged when it is not a decodable event of a named object.
func (p *linePrinter) summarize(text string) string {
	event, err := k8s.DecodeWatchEvent(text, p.schema, p.decoder)
	if err != nil {
		return text
	}
	obj, err := meta.Accessor(event.Object)
	if err != nil {
		return fmt.Sprintf("%s %v", event.Type, event.Object)
	}
	if ns := obj.GetNamespace(); ns != "" {
		return fmt.Sprintf("%s %s/%s", event.Type, ns, obj.GetName())
	}
	return fmt.Sprintf("%s %s", event.Type, obj.GetName())
}

// startWatchMetrics enables Prometheus instrumentation and serves it on addr.
// With an empty addr it returns no-op metrics.
func startWatchMetrics(ctx context.Context, addr string) (*instrumentation.Metrics, func(), error) {
	if addr == "" {
		return nil, func() {}, nil
	}

	config := instrumentation.DefaultConfig()
	config.Enabled = true
	config.MetricsExporter = instrumentation.ExporterPrometheus
	config.TracingExporter = instrumentation.ExporterNone
	config.ServiceVersion = rootCmd.Version

	provider, err := instrumentation.NewProvider(ctx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, err
	}
	go func() {
		if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", logging.Err(err))
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		shutdownMetricsServer(shutdownCtx, metricsServer)
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down instrumentation provider", logging.Err(err))
		}
	}
	return provider.Metrics(), stop, nil
}
