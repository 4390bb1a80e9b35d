package catalog

import (
	"strings"

	"github.com/ivannaromanovych/product-categories/internal/model"
)

// UserFilter is the selected-user state: either the all-sentinel, which
// matches every product, or one concrete user.
//
// The zero value is the all-sentinel.
type UserFilter struct {
	user *model.User
}

// AllUsers returns the all-sentinel.
func AllUsers() UserFilter {
	return UserFilter{}
}

// OnlyUser returns a filter selecting products owned by u.
func OnlyUser(u model.User) UserFilter {
	return UserFilter{user: &u}
}

// All reports whether f is the all-sentinel.
func (f UserFilter) All() bool {
	return f.user == nil
}

// User returns the selected user. ok is false for the all-sentinel.
func (f UserFilter) User() (u model.User, ok bool) {
	if f.user == nil {
		return model.User{}, false
	}
	return *f.user, true
}

// Selects reports whether f selects the user with the given id.
// The all-sentinel selects no concrete user.
func (f UserFilter) Selects(id int) bool {
	return f.user != nil && f.user.ID == id
}

// Equal reports whether two filters select the same thing.
func (f UserFilter) Equal(other UserFilter) bool {
	if f.All() || other.All() {
		return f.All() == other.All()
	}
	return f.user.ID == other.user.ID
}

// FilterByUser keeps products owned by the selected user.
//
// With the all-sentinel the input slice is returned as is. Otherwise a new
// slice is returned holding products whose resolved owner has the selected ID;
// products with no resolved owner never match.
func FilterByUser(products []model.EnrichedProduct, f UserFilter) []model.EnrichedProduct {
	if f.All() {
		return products
	}

	filtered := make([]model.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if p.User != nil && f.Selects(p.User.ID) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterBySearch keeps products whose name contains term, ignoring case.
// An empty term returns the input slice as is.
func FilterBySearch(products []model.EnrichedProduct, term string) []model.EnrichedProduct {
	if term == "" {
		return products
	}

	needle := strings.ToLower(term)
	filtered := make([]model.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Apply runs the filter pipeline: by user first, then by search term.
// It is recomputed in full on every call.
func Apply(products []model.EnrichedProduct, f UserFilter, term string) []model.EnrichedProduct {
	return FilterBySearch(FilterByUser(products, f), term)
}
