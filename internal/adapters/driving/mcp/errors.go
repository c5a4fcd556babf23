// Package mcp implements the Model Context Protocol server for guidedex.
//
// The server exposes the guideline catalog to AI assistants through typed
// tools (list, get, search, ADR listing, refresh) and read-only resources.
// It speaks stdio by default and streamable HTTP when given a port.
package mcp

import "errors"

// ErrMissingQueryService is returned when a server is constructed without a
// query service.
var ErrMissingQueryService = errors.New("mcp: query service is required")
