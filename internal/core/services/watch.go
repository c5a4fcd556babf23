package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/guidedex/internal/core/domain"
	"github.com/custodia-labs/guidedex/internal/core/ports/driven"
	"github.com/custodia-labs/guidedex/internal/core/ports/driving"
	"github.com/custodia-labs/guidedex/internal/logger"
)

// WatchInvalidate subscribes to source change events and invalidates the
// catalog on each one, so the next query picks up the changed corpus.
// Returns domain.ErrWatchUnsupported for sources that cannot push events.
// The subscription ends when ctx is cancelled.
func WatchInvalidate(ctx context.Context, source driven.Source, query driving.QueryService) error {
	if !source.Capabilities().SupportsWatch {
		return domain.ErrWatchUnsupported
	}

	events, err := source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch source: %w", err)
	}

	go func() {
		for range events {
			logger.Info("Corpus changed, invalidating catalogue")
			query.Invalidate()
		}
		logger.Debug("Watch subscription ended")
	}()
	return nil
}
