package seed

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// LoadAll reads every path concurrently and merges the results in path order
// on top of base. With no paths the base fixture is returned unchanged. The
// merged fixture is resolved and validated before it is returned.
func LoadAll(ctx context.Context, loader Loader, paths []string, base *Fixture, logger zerolog.Logger) (*Fixture, error) {
	logger = logger.With().Str("component", "seed").Logger()

	merged := &Fixture{}
	merged.Merge(base)

	type loadResult struct {
		fixture *Fixture
		err     error
	}

	results := make([]loadResult, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()
			f, err := loader.Load(ctx, path)
			results[index] = loadResult{fixture: f, err: err}
		}(i, p)
	}
	wg.Wait()

	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load seed fixture %s: %w", paths[i], result.err)
		}
		merged.Merge(result.fixture)
	}

	merged.Resolve()
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed fixture: %w", err)
	}

	logger.Info().
		Int("files", len(paths)).
		Int("rewards", len(merged.Rewards)).
		Int("add_ons", len(merged.AddOns)).
		Int("user_rewards", len(merged.UserRewards)).
		Int("purchases", len(merged.Purchases)).
		Msg("seed fixture ready")

	return merged, nil
}
