// Package logging provides structured logging utilities for kube-dispatch.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Process-wide slog setup from a format and level string
//   - Consistent attribute naming for request dispatch and streams
//   - Host/URL sanitization and credential masking
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "dispatch")
//	logger.Info("request completed",
//	    logging.Method("GET"),
//	    logging.Path("/api/v1/namespaces"),
//	    logging.StatusCode(200))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("resolved server",
//	    logging.Host(server.URL),
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
//   - API server URLs have IP addresses redacted to prevent topology leakage
//   - Credentials and tokens are never logged directly
package logging
