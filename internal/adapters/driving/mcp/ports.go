package mcp

import (
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
)

// Ports aggregates the services the MCP server depends on.
type Ports struct {
	// Query answers catalog lookups, searches and refreshes.
	Query driving.QueryService
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
