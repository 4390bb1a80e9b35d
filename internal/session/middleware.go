package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ivannaromanovych/product-categories/internal/service"
)

// CookieName is the name of the session cookie.
const CookieName = "catalog_session"

// contextKey is unexported so no other package can read or shadow the value.
type contextKey string

const controllerKey contextKey = "controller"

// Middleware attaches the caller's Controller to the request context,
// creating a session when the cookie is missing, invalid, expired, or names
// a session the store no longer holds.
func Middleware(store *Store, signer *Signer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ctl := resolve(r, store, signer)
			if ctl == nil {
				id, ctl = store.Create()
			}

			token, err := signer.Sign(id)
			if err != nil {
				logger.Error("failed to sign session", slog.String("error", err.Error()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(signer.TTL().Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), controllerKey, ctl)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolve returns the session named by the request cookie, or a nil
// controller when there is none.
func resolve(r *http.Request, store *Store, signer *Signer) (string, *service.Controller) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", nil
	}
	id, err := signer.Verify(cookie.Value)
	if err != nil {
		return "", nil
	}
	ctl, ok := store.Get(id)
	if !ok {
		return "", nil
	}
	return id, ctl
}

// ControllerFromContext returns the Controller placed by Middleware.
func ControllerFromContext(ctx context.Context) (*service.Controller, bool) {
	ctl, ok := ctx.Value(controllerKey).(*service.Controller)
	return ctl, ok && ctl != nil
}

// WithController returns a copy of ctx carrying ctl. Handlers under test use
// it in place of Middleware.
func WithController(ctx context.Context, ctl *service.Controller) context.Context {
	return context.WithValue(ctx, controllerKey, ctl)
}
