// Package handler contains the HTTP handlers of the catalog.
//
// Two handler groups share one Catalog and read the caller's Controller from
// the request context (see package session):
//   - PageHandler renders the HTML page and accepts the page's form posts
//   - APIHandler serves the same data and mutators as JSON
//
// Handlers never touch UI state directly; they call the Controller's
// mutators and render its View.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ivannaromanovych/product-categories/internal/service"
	"github.com/ivannaromanovych/product-categories/web"
)

// PageHandler serves the catalog page and its form endpoints.
// Templates are parsed once at construction.
type PageHandler struct {
	catalog   *service.Catalog
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler parses the embedded templates.
func NewPageHandler(cat *service.Catalog, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/base.html", "templates/catalog.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		catalog:   cat,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandlePage renders the catalog for the caller's session.
//
// HTTP: GET /?user={id|all}&q={term}
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctl, err := controllerFor(r)
	if err != nil {
		h.logger.Error("page requested without session", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := applyQuery(r, h.catalog, ctl); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := newPageData(h.catalog, ctl.View())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleSelectUser handles a click on a user tab.
//
// HTTP: POST /filters/user  (form: user={id|all})
//
// An unknown user leaves the state unchanged.
func (h *PageHandler) HandleSelectUser(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctl *service.Controller) error {
		f, err := h.catalog.ParseUserFilter(r.PostFormValue("user"))
		if err != nil {
			return err
		}
		ctl.SelectUser(f)
		return nil
	})
}

// HandleSearch handles a submitted search field.
//
// HTTP: POST /filters/search  (form: q=term)
func (h *PageHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctl *service.Controller) error {
		term := r.PostFormValue("q")
		if err := service.ValidateSearchTerm(term); err != nil {
			return err
		}
		ctl.SetSearchTerm(term)
		return nil
	})
}

// HandleClearSearch handles the clear button of the search field.
//
// HTTP: POST /filters/search/clear
func (h *PageHandler) HandleClearSearch(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctl *service.Controller) error {
		ctl.ClearSearchTerm()
		return nil
	})
}

// HandleReset handles "Reset all filters".
//
// HTTP: POST /filters/reset
func (h *PageHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctl *service.Controller) error {
		ctl.ResetAll()
		return nil
	})
}

// mutate runs one state change and redirects back to the page
// (POST/redirect/GET). Rejected changes are logged and leave state as is.
func (h *PageHandler) mutate(w http.ResponseWriter, r *http.Request, change func(*service.Controller) error) {
	ctl, err := controllerFor(r)
	if err != nil {
		h.logger.Error("filter change without session", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := change(ctl); err != nil {
		h.logger.Warn("filter change rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
