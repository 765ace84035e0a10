// Package request provides the MCP tools that expose the dispatcher: raw API
// requests, collection of streaming responses, and schema name resolution.
package request
