package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ivannaromanovych/product-categories/internal/apperror"
	"github.com/ivannaromanovych/product-categories/internal/catalog"
	"github.com/ivannaromanovych/product-categories/internal/service"
)

// APIHandler exposes the catalog and the session's filter state as JSON.
// Every mutator responds with the resulting view.
type APIHandler struct {
	catalog *service.Catalog
	logger  *slog.Logger
}

func NewAPIHandler(cat *service.Catalog, logger *slog.Logger) *APIHandler {
	return &APIHandler{catalog: cat, logger: logger}
}

// HandleUsers returns the users table.
//
// HTTP: GET /api/users
func (h *APIHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Users())
}

// HandleCategories returns the categories table.
//
// HTTP: GET /api/categories
func (h *APIHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

// HandleProducts returns the caller's current view.
//
// HTTP: GET /api/products?user={id|all}&q={term}
func (h *APIHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(ctl *service.Controller) error {
		return applyQuery(r, h.catalog, ctl)
	})
}

// HandleSelectUser replaces the selected user.
//
// HTTP: PUT /api/filters/user
// REQUEST BODY: {"userId": 2} or {"all": true}
func (h *APIHandler) HandleSelectUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID *int `json:"userId"`
		All    bool `json:"all"`
	}
	if !h.decode(w, r, &input) {
		return
	}

	h.respond(w, r, func(ctl *service.Controller) error {
		var f catalog.UserFilter
		switch {
		case input.All && input.UserID != nil:
			return apperror.ValidationFailed("userId", `set either "userId" or "all", not both`)
		case input.All:
			f = catalog.AllUsers()
		case input.UserID != nil:
			var err error
			if f, err = h.catalog.UserFilterByID(*input.UserID); err != nil {
				return err
			}
		default:
			return apperror.ValidationFailed("userId", `"userId" or "all" is required`)
		}
		ctl.SelectUser(f)
		return nil
	})
}

// HandleSetSearch replaces the search term.
//
// HTTP: PUT /api/filters/search
// REQUEST BODY: {"term": "e"}
func (h *APIHandler) HandleSetSearch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Term string `json:"term"`
	}
	if !h.decode(w, r, &input) {
		return
	}

	h.respond(w, r, func(ctl *service.Controller) error {
		if err := service.ValidateSearchTerm(input.Term); err != nil {
			return err
		}
		ctl.SetSearchTerm(input.Term)
		return nil
	})
}

// HandleClearSearch empties the search term.
//
// HTTP: DELETE /api/filters/search
func (h *APIHandler) HandleClearSearch(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(ctl *service.Controller) error {
		ctl.ClearSearchTerm()
		return nil
	})
}

// HandleReset restores both filters to their defaults.
//
// HTTP: POST /api/filters/reset
func (h *APIHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(ctl *service.Controller) error {
		ctl.ResetAll()
		return nil
	})
}

// decode reads a JSON body into v, rejecting unknown fields. It writes the
// error response itself and reports whether decoding succeeded.
func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.logger.Warn("invalid request JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "request body must be valid JSON"))
		return false
	}
	return true
}

// respond runs change against the caller's controller and writes the
// resulting view, or the error.
func (h *APIHandler) respond(w http.ResponseWriter, r *http.Request, change func(*service.Controller) error) {
	ctl, err := controllerFor(r)
	if err != nil {
		h.logger.Error("api request without session", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	if err := change(ctl); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newViewResponse(ctl.View()))
}
