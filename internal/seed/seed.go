package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/telemetry"
)

// Seed loads the demo catalog. Without force it does nothing when any event
// exists; with force it adds the demo events whose title is missing.
// Returns the number of events inserted.
func Seed(ctx context.Context, repo repository.EventRepository, force bool) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "seed.catalog")
	defer span.End()

	log := logger.Get()

	if !force {
		count, err := repo.Count(ctx)
		if err != nil {
			telemetry.RecordError(span, err)
			return 0, fmt.Errorf("failed to count events: %w", err)
		}
		if count > 0 {
			log.Debug("catalog already seeded", zap.Int64("events", count))
			return 0, nil
		}
	}

	created, err := repo.CreateBatch(ctx, Catalog())
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("failed to seed events: %w", err)
	}

	log.Info("seeded demo catalog", zap.Int("events", created))
	return created, nil
}
