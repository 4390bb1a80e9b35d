package handler

import (
	"github.com/ivannaromanovych/product-categories/internal/catalog"
	"github.com/ivannaromanovych/product-categories/internal/model"
	"github.com/ivannaromanovych/product-categories/internal/service"
)

// CSS classes for the owner cell, by sex.
const (
	ownerClassMale   = "has-text-link"
	ownerClassFemale = "has-text-danger"
)

// productRow is one rendered table row. Every field is already a display
// string, so the template never dereferences a nil category or owner.
type productRow struct {
	ID         int
	Name       string
	Category   string // "icon - title", empty when the category is unresolved
	Owner      string // empty when the owner is unresolved
	OwnerClass string // empty when the owner is unresolved
}

type userTab struct {
	ID     int
	Name   string
	Active bool
}

// pageData is the template input for the catalog page.
type pageData struct {
	Title           string
	Users           []userTab
	AllUsersActive  bool
	SearchTerm      string
	MaxSearchLength int
	Categories      []model.Category
	Rows            []productRow
}

func newPageData(cat *service.Catalog, view service.View) pageData {
	users := cat.Users()
	tabs := make([]userTab, 0, len(users))
	for _, u := range users {
		tabs = append(tabs, userTab{ID: u.ID, Name: u.Name, Active: view.SelectedUser.Selects(u.ID)})
	}

	return pageData{
		Title:           "Product Categories",
		Users:           tabs,
		AllUsersActive:  view.SelectedUser.All(),
		SearchTerm:      view.SearchTerm,
		MaxSearchLength: service.MaxSearchTermLength,
		Categories:      cat.Categories(),
		Rows:            newRows(view.Products),
	}
}

func newRows(products []model.EnrichedProduct) []productRow {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		row := productRow{ID: p.ID, Name: p.Name}
		if p.Category != nil {
			row.Category = p.Category.Icon + " - " + p.Category.Title
		}
		if p.User != nil {
			row.Owner = p.User.Name
			row.OwnerClass = ownerClass(p.User.Sex)
		}
		rows = append(rows, row)
	}
	return rows
}

func ownerClass(sex model.Sex) string {
	if sex == model.SexMale {
		return ownerClassMale
	}
	return ownerClassFemale
}

// ViewResponse is the JSON form of a controller view.
type ViewResponse struct {
	SelectedUser *model.User             `json:"selectedUser"` // null means all users
	SearchTerm   string                  `json:"searchTerm"`
	Total        int                     `json:"total"`
	Products     []model.EnrichedProduct `json:"products"`
}

func newViewResponse(view service.View) ViewResponse {
	return ViewResponse{
		SelectedUser: selectedUser(view.SelectedUser),
		SearchTerm:   view.SearchTerm,
		Total:        len(view.Products),
		Products:     view.Products,
	}
}

func selectedUser(f catalog.UserFilter) *model.User {
	if u, ok := f.User(); ok {
		return &u
	}
	return nil
}
