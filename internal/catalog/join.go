// Package catalog implements the pure core of the product catalog: the join
// stage that enriches products with their category and owner, and the filter
// pipeline that narrows the enriched list by owner and search term.
//
// Every function here is synchronous, deterministic and total. Nothing in this
// package mutates its input, logs, or returns an error. Unresolvable references
// become nil pointers rather than failures.
package catalog

import "github.com/ivannaromanovych/product-categories/internal/model"

// Join builds the enriched product list from one set of fixture tables.
//
// For each product, in the original order:
//  1. the category whose ID equals the product's CategoryID (nil if none)
//  2. the user whose ID equals that category's OwnerID (nil if the category
//     is nil or no user matches)
//
// Lookups are linear scans. IDs are assumed unique; if they are not, the first
// match wins. The returned products hold copies of the fixture records, so
// later changes to t do not leak into the result.
func Join(t *model.Tables) []model.EnrichedProduct {
	if t == nil {
		return []model.EnrichedProduct{}
	}

	enriched := make([]model.EnrichedProduct, 0, len(t.Products))
	for _, p := range t.Products {
		category := findCategory(t.Categories, p.CategoryID)
		enriched = append(enriched, model.EnrichedProduct{
			Product:  p,
			Category: category,
			User:     resolveOwner(t.Users, category),
		})
	}
	return enriched
}

func findCategory(categories []model.Category, id int) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c
		}
	}
	return nil
}

// resolveOwner takes an optional category and returns an optional user.
// A nil category is never dereferenced.
func resolveOwner(users []model.User, category *model.Category) *model.User {
	if category == nil {
		return nil
	}
	return findUser(users, category.OwnerID)
}

func findUser(users []model.User, id int) *model.User {
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u
		}
	}
	return nil
}
