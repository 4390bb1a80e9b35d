package service

import (
	"log/slog"
	"sync"

	"github.com/ivannaromanovych/product-categories/internal/catalog"
	"github.com/ivannaromanovych/product-categories/internal/model"
)

// View is one snapshot of a controller: its state and the products that the
// filter pipeline produces for that state.
type View struct {
	SelectedUser catalog.UserFilter
	SearchTerm   string
	Products     []model.EnrichedProduct
}

// Controller owns the UI state of one session: the selected user and the
// search term. Both start at their defaults (all-sentinel, empty term).
//
// State changes are plain value replacements made through the four mutators.
// The mutex serializes them against View, which recomputes the pipeline from
// scratch on every call.
type Controller struct {
	mu       sync.Mutex
	products []model.EnrichedProduct
	selected catalog.UserFilter
	search   string
	logger   *slog.Logger
}

// NewController returns a controller over products with default state.
// products is read, never modified.
func NewController(products []model.EnrichedProduct, logger *slog.Logger) *Controller {
	return &Controller{
		products: products,
		selected: catalog.AllUsers(),
		logger:   logger,
	}
}

// SelectUser replaces the selected user. Selecting the current selection
// again is a no-op.
func (c *Controller) SelectUser(f catalog.UserFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected.Equal(f) {
		return
	}
	c.selected = f
	c.logger.Debug("user filter changed", userAttr(f))
}

// SetSearchTerm replaces the search term.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.search = term
	c.logger.Debug("search term changed", slog.String("term", term))
}

// ClearSearchTerm resets the search term to empty.
func (c *Controller) ClearSearchTerm() {
	c.SetSearchTerm("")
}

// ResetAll restores both state values to their defaults in one step.
func (c *Controller) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = catalog.AllUsers()
	c.search = ""
	c.logger.Debug("filters reset")
}

// View runs the filter pipeline against the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		SelectedUser: c.selected,
		SearchTerm:   c.search,
		Products:     catalog.Apply(c.products, c.selected, c.search),
	}
}

func userAttr(f catalog.UserFilter) slog.Attr {
	if u, ok := f.User(); ok {
		return slog.Int("user", u.ID)
	}
	return slog.String("user", AllUsersParam)
}
