// Package connectors provides implementations of the Source port for the
// supported corpus backends. Each connector knows how to enumerate and
// fetch markdown documents from one source type.
package connectors

import (
	"fmt"

	"github.com/custodia-labs/guidedex/internal/connectors/github"
	"github.com/custodia-labs/guidedex/internal/connectors/localfs"
	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
)

// New builds the source described by the configuration.
func New(cfg domain.Config) (driven.Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.SourceType {
	case domain.SourceLocal:
		return localfs.New(cfg.BasePath), nil
	case domain.SourceGitHub:
		return github.New(cfg)
	default:
		return nil, fmt.Errorf("%w: source type %q", domain.ErrInvalidInput, cfg.SourceType)
	}
}
