package handler

// RESPONSE HELPERS:
// Every JSON endpoint writes through writeJSON, every failure through
// writeError, so error bodies always have the same shape:
//
//	{"error": "validation_error", "message": "unknown user 9"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ivannaromanovych/product-categories/internal/apperror"
	"github.com/ivannaromanovych/product-categories/internal/service"
	"github.com/ivannaromanovych/product-categories/internal/session"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// errNoSession means the session middleware did not run for this route.
var errNoSession = errors.New("handler: no session controller in request context")

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code and sends it.
// Errors that are not *apperror.AppError become a generic 500 so internal
// details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// controllerFor returns the caller's session controller.
func controllerFor(r *http.Request) (*service.Controller, error) {
	ctl, ok := session.ControllerFromContext(r.Context())
	if !ok {
		return nil, errNoSession
	}
	return ctl, nil
}

// applyQuery applies the optional "user" and "q" query parameters through
// the controller's mutators, so views can be deep-linked (/?user=2&q=e).
// Nothing is changed unless both parameters are valid.
func applyQuery(r *http.Request, cat *service.Catalog, ctl *service.Controller) error {
	query := r.URL.Query()

	if query.Has("q") {
		if err := service.ValidateSearchTerm(query.Get("q")); err != nil {
			return err
		}
	}
	if query.Has("user") {
		f, err := cat.ParseUserFilter(query.Get("user"))
		if err != nil {
			return err
		}
		ctl.SelectUser(f)
	}
	if query.Has("q") {
		ctl.SetSearchTerm(query.Get("q"))
	}
	return nil
}
