// Package domain defines the core business entities for Guidedex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a parsed guidance document with its metadata
//   - Catalog: one immutable index generation built over documents
//   - RawDocument: opaque bytes fetched from a corpus source
//   - Config: resolved runtime configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
