package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillback/spendsort/internal/rules"
)

// SeedSystemRules inserts the built-in system rules if the database holds
// no system rules yet. Idempotent across restarts.
func (s *SQLiteStore) SeedSystemRules(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pattern_rules WHERE owner = 'system'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count system rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := rules.DefaultSystemRules()
	for i := range seed {
		if err := s.CreatePatternRule(ctx, &seed[i]); err != nil {
			return fmt.Errorf("failed to seed system rule %d: %w", i, err)
		}
	}

	slog.Info("Seeded system rules", "count", len(seed))
	return nil
}
