// Package server provides the ServerContext that carries the dependencies of
// the MCP server, and the health endpoints served next to its metrics.
//
// The ServerContext holds the dispatcher every tool call goes through, the
// model resolver, a structured logger, the instrumentation provider and the
// server configuration. Dependencies are injected with functional options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithDispatcher(dispatcher),
//		server.WithLogger(logger),
//		server.WithNonDestructiveMode(true),
//		server.WithDryRun(false),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
// In non-destructive mode only the configured allowed methods (GET by default)
// reach the cluster. With dry-run enabled mutating requests are sent with
// dryRun=All so the API server validates them without persisting anything.
//
// HealthChecker exposes /healthz, /readyz and /healthz/detailed for probes.
package server
