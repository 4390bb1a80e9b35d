// Package service contains the catalog's application layer.
//
// THE LAYERS:
//
//	Handler (HTTP layer)     → parses requests, renders pages and JSON
//	Service (this package)   → owns the catalog data and the UI state
//	catalog (pure core)      → join and filter functions
//	Repository (data layer)  → loads the fixture tables
//
// Catalog is built once at startup and shared by every session. Controller is
// the per-session owner of the two UI-state values; handlers read state and
// request changes only through its methods.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ivannaromanovych/product-categories/internal/apperror"
	"github.com/ivannaromanovych/product-categories/internal/catalog"
	"github.com/ivannaromanovych/product-categories/internal/fixture"
	"github.com/ivannaromanovych/product-categories/internal/model"
	"github.com/ivannaromanovych/product-categories/internal/repository"
)

// MaxSearchTermLength bounds the search term, in characters.
const MaxSearchTermLength = 100

// AllUsersParam is the request value that selects the all-sentinel.
const AllUsersParam = "all"

// Catalog holds the immutable fixture tables and the enriched product list.
type Catalog struct {
	tables   *model.Tables
	products []model.EnrichedProduct
	logger   *slog.Logger
}

// NewCatalog loads the fixture tables from source and runs the join stage.
//
// Dangling references in the fixtures are logged as warnings, not returned
// as errors: the affected rows render with blank cells.
func NewCatalog(ctx context.Context, source repository.FixtureSource, logger *slog.Logger) (*Catalog, error) {
	tables, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	for _, issue := range fixture.Check(tables) {
		logger.Warn("fixture reference does not resolve",
			slog.String("table", issue.Table),
			slog.Int("id", issue.ID),
			slog.String("field", issue.Field),
			slog.Int("ref", issue.Ref),
		)
	}

	c := &Catalog{
		tables:   tables,
		products: catalog.Join(tables),
		logger:   logger,
	}

	logger.Info("catalog loaded",
		slog.Int("users", len(tables.Users)),
		slog.Int("categories", len(tables.Categories)),
		slog.Int("products", len(c.products)),
	)

	return c, nil
}

// Users returns a copy of the users table in fixture order.
func (c *Catalog) Users() []model.User {
	return slices.Clone(c.tables.Users)
}

// Categories returns a copy of the categories table in fixture order.
func (c *Catalog) Categories() []model.Category {
	return slices.Clone(c.tables.Categories)
}

// Products returns the enriched product list. The slice is shared and must
// not be modified.
func (c *Catalog) Products() []model.EnrichedProduct {
	return c.products
}

// FindUser returns the first user with the given id.
func (c *Catalog) FindUser(id int) (model.User, error) {
	for _, u := range c.tables.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, apperror.NotFound("user", strconv.Itoa(id))
}

// ParseUserFilter turns a request value into a UserFilter.
//
// "" and "all" select the all-sentinel. Any other value must be the id of an
// existing user; anything else is a validation error.
func (c *Catalog) ParseUserFilter(raw string) (catalog.UserFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AllUsersParam) {
		return catalog.AllUsers(), nil
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return catalog.UserFilter{}, apperror.ValidationFailed("user",
			fmt.Sprintf("user must be a user id or %q", AllUsersParam))
	}
	return c.UserFilterByID(id)
}

// UserFilterByID returns a filter selecting the user with the given id.
// An unknown id is a validation error, since the caller asked for a filter
// value that the user-tab control never offers.
func (c *Catalog) UserFilterByID(id int) (catalog.UserFilter, error) {
	u, err := c.FindUser(id)
	if err != nil {
		return catalog.UserFilter{}, apperror.ValidationFailed("user",
			fmt.Sprintf("unknown user %d", id))
	}
	return catalog.OnlyUser(u), nil
}

// NewController returns a controller over this catalog with default state.
func (c *Catalog) NewController() *Controller {
	return NewController(c.products, c.logger)
}

// ValidateSearchTerm rejects terms longer than MaxSearchTermLength.
func ValidateSearchTerm(term string) error {
	if utf8.RuneCountInString(term) > MaxSearchTermLength {
		return apperror.ValidationFailed("q",
			fmt.Sprintf("search term must be %d characters or less", MaxSearchTermLength))
	}
	return nil
}
