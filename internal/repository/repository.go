// Package repository defines the data-access contracts of the catalog.
//
// The catalog never writes its data at runtime, so the only contract is a
// FixtureSource: something that can produce one complete set of fixture
// tables. Implementations live in sibling packages (sqlite, postgres) and in
// the fixture package (builtin tables, YAML files).
package repository

import (
	"context"

	"github.com/ivannaromanovych/product-categories/internal/model"
)

// FixtureSource loads the users, categories and products tables.
// Load is called once at startup; the result is treated as immutable.
type FixtureSource interface {
	Load(ctx context.Context) (*model.Tables, error)
}

// Seeder is implemented by sources that can be populated from another
// table set, used to bootstrap an empty database from the builtin tables.
type Seeder interface {
	Seed(ctx context.Context, t *model.Tables) error
	IsEmpty(ctx context.Context) (bool, error)
}
