// Package output shapes decoded API responses before they are returned by MCP
// tools.
//
// Responses from the API server can be far larger than an LLM context window.
// A [Processor] applies, in order:
//
//   - Secret masking: data, stringData and the last-applied-configuration
//     annotation of Secrets are replaced with "***REDACTED***".
//   - Slim output: bookkeeping fields such as metadata.managedFields are removed.
//   - Truncation: the items of list responses are capped at Config.MaxItems.
//   - Size limit: lists are trimmed further, and single objects rejected, when
//     the encoded response exceeds Config.MaxResponseBytes.
//
// Usage:
//
//	processor := output.NewProcessor(output.DefaultConfig())
//	result, err := processor.Process(obj)
//	if err != nil {
//		// the response is too large even after trimming
//	}
//	for _, w := range result.Warnings {
//		fmt.Println(w.Message)
//	}
package output
