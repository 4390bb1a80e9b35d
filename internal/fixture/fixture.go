// Package fixture provides the catalog's fixture tables and the file-free
// fixture sources: the builtin tables compiled into the binary and YAML files.
package fixture

import (
	"context"
	"fmt"

	"github.com/ivannaromanovych/product-categories/internal/model"
)

// Default returns the builtin fixture tables.
// Each call returns fresh slices, so callers may keep or modify the result.
func Default() *model.Tables {
	return &model.Tables{
		Users: []model.User{
			{ID: 1, Name: "Roma", Sex: model.SexMale},
			{ID: 2, Name: "Anna", Sex: model.SexFemale},
			{ID: 3, Name: "Max", Sex: model.SexMale},
			{ID: 4, Name: "John", Sex: model.SexMale},
		},
		Categories: []model.Category{
			{ID: 1, Title: "Grocery", Icon: "🍞", OwnerID: 2},
			{ID: 2, Title: "Drinks", Icon: "🍺", OwnerID: 1},
			{ID: 3, Title: "Fruits", Icon: "🍏", OwnerID: 2},
			{ID: 4, Title: "Electronics", Icon: "💻", OwnerID: 1},
			{ID: 5, Title: "Clothes", Icon: "👚", OwnerID: 3},
		},
		Products: []model.Product{
			{ID: 1, Name: "Milk", CategoryID: 2},
			{ID: 2, Name: "Bread", CategoryID: 1},
			{ID: 3, Name: "Eggs", CategoryID: 1},
			{ID: 4, Name: "Jacket", CategoryID: 5},
			{ID: 5, Name: "Sugar", CategoryID: 1},
			{ID: 6, Name: "Banana", CategoryID: 3},
			{ID: 7, Name: "Beer", CategoryID: 2},
			{ID: 8, Name: "Socks", CategoryID: 5},
			{ID: 9, Name: "Apples", CategoryID: 3},
		},
	}
}

// Builtin is a fixture source that serves Default.
type Builtin struct{}

func (Builtin) Load(_ context.Context) (*model.Tables, error) {
	return Default(), nil
}

// Issue describes a reference in the fixtures that does not resolve.
// Issues are not errors: the catalog renders unresolved references as blanks.
type Issue struct {
	Table string // "products" or "categories"
	ID    int    // ID of the record holding the reference
	Field string // "categoryId" or "ownerId"
	Ref   int    // the dangling value
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %d: %s %d does not resolve", i.Table, i.ID, i.Field, i.Ref)
}

// Check reports every dangling categoryId and ownerId in t, in table order.
// ID uniqueness is not checked.
func Check(t *model.Tables) []Issue {
	var issues []Issue

	users := make(map[int]bool, len(t.Users))
	for _, u := range t.Users {
		users[u.ID] = true
	}
	categories := make(map[int]bool, len(t.Categories))
	for _, c := range t.Categories {
		categories[c.ID] = true
		if !users[c.OwnerID] {
			issues = append(issues, Issue{Table: "categories", ID: c.ID, Field: "ownerId", Ref: c.OwnerID})
		}
	}
	for _, p := range t.Products {
		if !categories[p.CategoryID] {
			issues = append(issues, Issue{Table: "products", ID: p.ID, Field: "categoryId", Ref: p.CategoryID})
		}
	}
	return issues
}
