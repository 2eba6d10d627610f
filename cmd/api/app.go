package main

import (
	"context"
	"fmt"

	pbauth "household-illness-tracker/internal/adapters/auth/pocketbase"
	mem "household-illness-tracker/internal/adapters/storage/memory"
	pg "household-illness-tracker/internal/adapters/storage/postgres"
	"household-illness-tracker/internal/adapters/storage/remote"
	"household-illness-tracker/internal/adapters/storage/sqlite"
	"household-illness-tracker/internal/config"
	"household-illness-tracker/internal/domain/persons"
	"household-illness-tracker/internal/platform/httpclient"
	"household-illness-tracker/internal/platform/logger"
	"household-illness-tracker/internal/ports/auth"
	"household-illness-tracker/internal/ports/store"
)

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err := cfg.Validate(); err != nil {
		return nil, log, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, log, nil
}

// openStore arma el backend elegido. close libera conexiones (no-op para memory/remote).
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (st store.Store, closeFn func(), err error) {
	closeFn = func() {}

	switch cfg.StoreBackend {
	case config.BackendRemote:
		c, err := httpclient.NewWithBaseURL(cfg.StoreURL, cfg.StoreTimeout)
		if err != nil {
			return nil, closeFn, err
		}
		if cfg.StoreToken != "" {
			c.Headers["Authorization"] = cfg.StoreToken
		}
		st = remote.New(c)

	case config.BackendPostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open postgres: %w", err)
		}
		closeFn = func() { _ = db.Close() }
		if st, err = pg.New(ctx, db); err != nil {
			closeFn()
			return nil, func() {}, err
		}

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open sqlite: %w", err)
		}
		closeFn = func() { _ = db.Close() }
		if st, err = sqlite.New(ctx, db); err != nil {
			closeFn()
			return nil, func() {}, err
		}

	default:
		st = mem.New()
	}

	log.Info("store ready", map[string]any{"backend": cfg.StoreBackend})
	return st, closeFn, nil
}

// newVerifier: sin AUTH_ENABLED queda nil (modo dev, header X-Debug-User-ID).
func newVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	c, err := httpclient.NewWithBaseURL(cfg.StoreURL, cfg.StoreTimeout)
	if err != nil {
		return nil, err
	}
	return pbauth.NewVerifier(c, pbauth.Config{Collection: cfg.AuthCollection}), nil
}

func seedPersons(ctx context.Context, st store.Store, path string, log logger.Logger) error {
	people, err := persons.LoadSeedFile(path)
	if err != nil {
		return err
	}
	n, err := persons.Seed(ctx, st, people)
	if err != nil {
		return err
	}
	log.Info("persons seeded", map[string]any{"file": path, "created": n, "total": len(people)})
	return nil
}
