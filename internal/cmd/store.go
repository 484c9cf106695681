package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/wordlens/wordlens/internal/config"
	"github.com/wordlens/wordlens/internal/core/store"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg == nil {
		return nil, errors.New("config not loaded")
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	db.DailyBudget = cfg.Dict.DailyBudget
	db.CacheTTL = cfg.Dict.CacheTTL

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
