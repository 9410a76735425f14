package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/config"
	"github.com/Veraticus/larder/internal/engine"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/storage"
	"github.com/spf13/viper"
)

// loadConfig reads engine settings from the global viper instance.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds an engine over the catalog stored in store.
func initEngine(ctx context.Context, store *storage.SQLiteStorage, opts ...engine.Option) (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	e, err := engine.NewFromSource(ctx, store, cfg, opts...)
	if errors.Is(err, common.ErrEmptyCatalog) {
		return nil, common.NewUserError("No canonical ingredients yet. Run 'larder import catalog <file>' first", err)
	}
	return e, err
}

// resolveItem fills in item's canonical id when the engine can resolve its name
// above the scoring confidence floor. It reports whether the id was set.
func resolveItem(e *engine.Engine, item *model.InventoryItem) bool {
	if item.CanonicalID != nil {
		return false
	}
	result := e.Match(item.Name)
	if !result.Matched() || result.Confidence < e.Config().Scoring.ConfidenceFloor {
		return false
	}
	id := result.ID()
	item.CanonicalID = &id
	return true
}

// joinArgs treats all positional arguments as one phrase.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
