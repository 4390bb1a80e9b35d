// Package postgres serves fixture tables from a PostgreSQL database via GORM.
//
// The source is read-only: it never migrates or writes. The database is
// expected to contain users, categories and products tables whose columns
// match the gorm tags on the model types.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ivannaromanovych/product-categories/internal/apperror"
	"github.com/ivannaromanovych/product-categories/internal/model"
	"github.com/ivannaromanovych/product-categories/internal/repository"
)

var _ repository.FixtureSource = (*DB)(nil)

type DB struct {
	db *gorm.DB
}

// New connects to the database identified by dsn.
func New(dsn string) (*DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, apperror.ValidationFailed("DATABASE_URL", "postgres fixture source requires a DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads all three tables, each ordered by id.
func (d *DB) Load(ctx context.Context) (*model.Tables, error) {
	t := model.Tables{
		Users:      []model.User{},
		Categories: []model.Category{},
		Products:   []model.Product{},
	}
	if err := d.ordered(ctx).Find(&t.Users).Error; err != nil {
		return nil, fmt.Errorf("postgres: loading users: %w", err)
	}
	if err := d.ordered(ctx).Find(&t.Categories).Error; err != nil {
		return nil, fmt.Errorf("postgres: loading categories: %w", err)
	}
	if err := d.ordered(ctx).Find(&t.Products).Error; err != nil {
		return nil, fmt.Errorf("postgres: loading products: %w", err)
	}
	return &t, nil
}

// ordered starts a fresh query chain; GORM chains must not be reused after
// a finisher such as Find.
func (d *DB) ordered(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Order("id")
}
