package store

import (
	"context"
	"fmt"

	"github.com/danmuck/petty/internal/terms"
	"github.com/rs/zerolog/log"
)

// Activate merges the default terms into s. Entries already present keep
// their symbol. It returns how many defaults were added.
func Activate(ctx context.Context, s Store) (int, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("activate: %w", err)
	}
	merged := existing.Merge(terms.Defaults())
	added := merged.Len() - existing.Len()
	if added == 0 {
		return 0, nil
	}
	if err := s.Save(ctx, merged); err != nil {
		return 0, fmt.Errorf("activate: %w", err)
	}
	log.Info().Int("added", added).Int("total", merged.Len()).Msg("default terms activated")
	return added, nil
}

// SeedEmpty activates the defaults only when s holds no terms at all, so
// terms an administrator removed are not brought back on restart.
func SeedEmpty(ctx context.Context, s Store) (int, error) {
	existing, err := s.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if existing.Len() > 0 {
		return 0, nil
	}
	return Activate(ctx, s)
}
