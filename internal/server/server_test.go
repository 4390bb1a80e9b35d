package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivannaromanovych/product-categories/internal/config"
	"github.com/ivannaromanovych/product-categories/internal/fixture"
	"github.com/ivannaromanovych/product-categories/internal/handler"
	"github.com/ivannaromanovych/product-categories/internal/service"
	"github.com/ivannaromanovych/product-categories/internal/session"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cat, err := service.NewCatalog(context.Background(), fixture.Builtin{}, logger)
	require.NoError(t, err)

	cfg := config.Config{
		Port:          0,
		FixtureSource: config.SourceBuiltin,
		SessionSecret: "test-secret-0123456789",
		SessionTTL:    time.Hour,
	}
	s, err := New(cfg, cat, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// newBrowser returns a client that keeps cookies and follows redirects,
// the way a browser would.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func getView(t *testing.T, c *http.Client, ts *httptest.Server) handler.ViewResponse {
	t.Helper()
	resp, err := c.Get(ts.URL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view handler.ViewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func productNames(view handler.ViewResponse) []string {
	names := make([]string, 0, len(view.Products))
	for _, p := range view.Products {
		names = append(names, p.Name)
	}
	return names
}

func TestServer_Healthz(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestServer_Static(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/static/css/catalog.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
}

func TestServer_PageSetsSessionCookie(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestServer_FormFlow(t *testing.T) {
	ts := testServer(t)
	browser := newBrowser(t)

	// Selecting Anna redirects back to the page with her tab active.
	resp, err := browser.PostForm(ts.URL+"/filters/user", url.Values{"user": {"2"}})
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Equal(t, 5, strings.Count(string(body), `data-cy="Product"`))

	resp, err = browser.PostForm(ts.URL+"/filters/search", url.Values{"q": {"e"}})
	require.NoError(t, err)
	resp.Body.Close()

	view := getView(t, browser, ts)
	require.NotNil(t, view.SelectedUser)
	assert.Equal(t, "Anna", view.SelectedUser.Name)
	assert.Equal(t, "e", view.SearchTerm)
	assert.Equal(t, []string{"Bread", "Eggs", "Apples"}, productNames(view))

	resp, err = browser.PostForm(ts.URL+"/filters/search/clear", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 5, getView(t, browser, ts).Total)

	resp, err = browser.PostForm(ts.URL+"/filters/reset", nil)
	require.NoError(t, err)
	resp.Body.Close()

	view = getView(t, browser, ts)
	assert.Nil(t, view.SelectedUser)
	assert.Empty(t, view.SearchTerm)
	assert.Equal(t, 9, view.Total)
}

func TestServer_APIFlow(t *testing.T) {
	ts := testServer(t)
	browser := newBrowser(t)

	put := func(path, body string) *http.Response {
		req, err := http.NewRequest(http.MethodPut, ts.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := browser.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := put("/api/filters/user", `{"userId": 3}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = put("/api/filters/user", `{"userId": 99}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	view := getView(t, browser, ts)
	require.NotNil(t, view.SelectedUser)
	assert.Equal(t, 3, view.SelectedUser.ID, "a rejected selection leaves state unchanged")
	assert.Equal(t, []string{"Jacket", "Socks"}, productNames(view))

	resp = put("/api/filters/search", `{"term": "zzz"}`)
	resp.Body.Close()
	assert.Equal(t, 0, getView(t, browser, ts).Total)
}

func TestServer_SessionsAreIsolated(t *testing.T) {
	ts := testServer(t)
	alice := newBrowser(t)
	bob := newBrowser(t)

	resp, err := alice.PostForm(ts.URL+"/filters/search", url.Values{"q": {"milk"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"Milk"}, productNames(getView(t, alice, ts)))
	assert.Equal(t, 9, getView(t, bob, ts).Total)
}

func TestServer_DeepLink(t *testing.T) {
	ts := testServer(t)
	browser := newBrowser(t)

	resp, err := browser.Get(ts.URL + "/?user=1&q=E")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(string(body), `data-cy="Product"`), "Roma owns Milk and Beer; only Beer has an e")

	view := getView(t, browser, ts)
	assert.Equal(t, []string{"Beer"}, productNames(view))
}

func TestServer_RejectsShortSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := service.NewCatalog(context.Background(), fixture.Builtin{}, logger)
	require.NoError(t, err)

	_, err = New(config.Config{SessionSecret: "short", SessionTTL: time.Minute}, cat, logger)
	assert.Error(t, err)
}

func TestJanitorInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, janitorInterval(20*time.Minute))
	assert.Equal(t, minJanitorInterval, janitorInterval(time.Second))
}
