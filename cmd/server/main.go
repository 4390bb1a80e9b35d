// Package main is the entry point for the product catalog server.
//
// main reads configuration, opens the configured fixture source, builds the
// Catalog once and hands it to the HTTP server. Everything else lives in
// internal/.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ivannaromanovych/product-categories/internal/config"
	"github.com/ivannaromanovych/product-categories/internal/fixture"
	"github.com/ivannaromanovych/product-categories/internal/repository"
	"github.com/ivannaromanovych/product-categories/internal/repository/postgres"
	sqliteRepo "github.com/ivannaromanovych/product-categories/internal/repository/sqlite"
	"github.com/ivannaromanovych/product-categories/internal/server"
	"github.com/ivannaromanovych/product-categories/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	source, closer, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := service.NewCatalog(ctx, source, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, cat, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until SIGINT or SIGTERM.
	return srv.Start()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSource returns the fixture source named by cfg and the resource to
// close once the catalog is loaded. An empty SQLite database is seeded with
// the builtin tables first.
func openSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.FixtureSource, io.Closer, error) {
	switch cfg.FixtureSource {
	case config.SourceYAML:
		return fixture.YAMLFile{Path: cfg.FixturePath}, nopCloser{}, nil

	case config.SourceSQLite:
		if cfg.FixturePath != ":memory:" {
			dir := filepath.Dir(cfg.FixturePath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		db, err := sqliteRepo.New(cfg.FixturePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite: %w", err)
		}
		if err := seedIfEmpty(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, db, nil

	case config.SourcePostgres:
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		return db, db, nil

	default:
		return fixture.Builtin{}, nopCloser{}, nil
	}
}

func seedIfEmpty(ctx context.Context, s repository.Seeder, logger *slog.Logger) error {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("checking fixture tables: %w", err)
	}
	if !empty {
		return nil
	}
	if err := s.Seed(ctx, fixture.Default()); err != nil {
		return fmt.Errorf("seeding fixture tables: %w", err)
	}
	logger.Info("seeded empty database with builtin fixtures")
	return nil
}
