package profiler

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 8

// Assess runs the style advisor and the group classifier on one profile.
func Assess(p models.ScoreProfile) models.Assessment {
	return models.Assessment{
		AdjustedResponse: Advise(p),
		UserGroup:        Classify(p),
	}
}

// AssessBatch assesses profiles in parallel, at most limit at a time.
// Results are in input order.
func AssessBatch(ctx context.Context, profiles []models.ScoreProfile, limit int) ([]models.Assessment, error) {
	if limit <= 0 {
		limit = defaultBatchConcurrency
	}

	results := make([]models.Assessment, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("assessment %d cancelled: %w", i, err)
			}
			results[i] = Assess(p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
