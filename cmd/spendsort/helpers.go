package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/quillback/spendsort/internal/config"
	"github.com/quillback/spendsort/internal/engine"
	"github.com/quillback/spendsort/internal/storage"
	"github.com/quillback/spendsort/internal/taxonomy"
)

// initStore opens the database, runs migrations, and seeds system rules.
func initStore(ctx context.Context) (*storage.SQLiteStore, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/spendsort/spendsort.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}

	if err := store.Migrate(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := store.SeedSystemRules(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to seed system rules: %w", err)
	}

	return store, cleanup, nil
}

// loadTaxonomy loads the configured taxonomy file, falling back to the
// built-in table.
func loadTaxonomy() (*taxonomy.Table, error) {
	path := viper.GetString("taxonomy.path")
	if path == "" {
		return taxonomy.DefaultTable(), nil
	}
	return taxonomy.Load(config.ExpandPath(path))
}

// newAssigner wires the engine to the store and taxonomy. Account owner
// lookups go through the given resolver so the caller can share one
// memoized view of the accounts table with the engine.
func newAssigner(ctx context.Context, store *storage.SQLiteStore, accounts engine.AccountResolver) (*engine.Assigner, error) {
	table, err := loadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	assigner, err := engine.New(ctx, store, accounts, store, table)
	if err != nil {
		return nil, err
	}
	if err := assigner.ValidateRules(); err != nil {
		return nil, fmt.Errorf("invalid system rules: %w", err)
	}
	return assigner, nil
}
