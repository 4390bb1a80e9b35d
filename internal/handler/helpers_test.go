package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivannaromanovych/product-categories/internal/fixture"
	"github.com/ivannaromanovych/product-categories/internal/model"
	"github.com/ivannaromanovych/product-categories/internal/service"
	"github.com/ivannaromanovych/product-categories/internal/session"
)

type tablesSource struct{ tables *model.Tables }

func (s tablesSource) Load(context.Context) (*model.Tables, error) { return s.tables, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newCatalog(t *testing.T, tables *model.Tables) *service.Catalog {
	t.Helper()
	if tables == nil {
		tables = fixture.Default()
	}
	cat, err := service.NewCatalog(context.Background(), tablesSource{tables}, testLogger())
	require.NoError(t, err)
	return cat
}

// newRequest builds a request that carries ctl the way the session
// middleware would.
func newRequest(ctl *service.Controller, method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if ctl != nil {
		req = req.WithContext(session.WithController(req.Context(), ctl))
	}
	return req
}
