package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/i18n"
	"github.com/tlsy/handicrafts/internal/infrastructure/storage"
	"github.com/tlsy/handicrafts/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		status   int
	}{
		{"generic code normalized", shared.ErrNotFound, dto.ErrCodeNotFound, http.StatusNotFound},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.NewDomainError("TOKEN_REVOKED", "revoked")), "TOKEN_REVOKED", http.StatusUnauthorized},
		{"unmapped domain code", shared.NewDomainError("INVALID_PRICE", "bad price"), "INVALID_PRICE", http.StatusBadRequest},
		{"plain error", errors.New("connection refused"), dto.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotContains(t, info.Message, "connection refused")
		})
	}
}

func TestBaseHandler_ParseIDParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h := &BaseHandler{}
	_, ok := h.parseIDParam(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplaceLocale(t *testing.T) {
	tests := []struct {
		path, query string
		want        string
	}{
		{"/fr", "", "/en/"},
		{"/fr/", "", "/en/"},
		{"/EN/products", "q=card", "/en/products?q=card"},
		{"/xx/products/123", "", "/en/products/123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, replaceLocale(tt.path, tt.query, shared.LocaleEnglish), tt.path)
	}
}

func TestMediaHandler_Serve(t *testing.T) {
	objects := storage.NewMemoryObjectStorage("products")
	require.NoError(t, objects.Upload(t.Context(), "a.png", []byte("png-bytes"), "image/png"))

	r := gin.New()
	r.GET("/media/:bucket/*key", NewMediaHandler(objects).Serve)

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve("/media/products/a.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.Equal(t, "png-bytes", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve("/media/other/a.png").Code)
	assert.Equal(t, http.StatusNotFound, serve("/media/products/missing.png").Code)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, "unhealthy"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(stubPinger{err: tc.err})
			h.now = func() time.Time { return fixed }

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
			h.Health(c)

			assert.Equal(t, tc.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body["status"])
			assert.Equal(t, fixed.Format(time.RFC3339), body["time"])
		})
	}
}

func TestPageRenderer(t *testing.T) {
	translator, err := i18n.New()
	require.NoError(t, err)
	renderer, err := NewPageRenderer(translator)
	require.NoError(t, err)

	for _, page := range storefrontPages {
		assert.Contains(t, renderer.pages, page)
	}

	data := &pageData{Locale: shared.LocaleTagalog, SiteName: "TLSY", Page: pageNotFound, Path: "/x"}
	w := httptest.NewRecorder()
	require.NoError(t, renderer.Instance(pageNotFound, data).Render(w))
	assert.Contains(t, w.Body.String(), `data-lang="tl"`)
	assert.Contains(t, w.Body.String(), "TLSY")

	w = httptest.NewRecorder()
	require.NoError(t, renderer.Instance("no-such-page", &pageData{Locale: shared.LocaleEnglish}).Render(w))
	assert.Contains(t, w.Body.String(), `data-page=""`)

	for _, page := range adminPages {
		assert.Contains(t, renderer.pages, page)
	}
	w = httptest.NewRecorder()
	require.NoError(t, renderer.Instance("admin/no-such-page", &adminPageData{Locale: shared.LocaleEnglish, SiteName: "TLSY"}).Render(w))
	assert.Contains(t, w.Body.String(), "Back to the dashboard")
	assert.Contains(t, w.Body.String(), "/static/admin.js")
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                         "/admin",
		"/admin/messages?filter=a": "/admin/messages?filter=a",
		"/admin/products/new":      "/admin/products/new",
		"/admin/login":             "/admin",
		"https://evil.example.com": "/admin",
		"//evil.example.com/admin": "/admin",
		"/en/products":             "/admin",
		"/admin\\evil":             "/admin",
	}
	for in, want := range cases {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestStaticFS(t *testing.T) {
	f, err := StaticFS().Open("/track.js")
	require.NoError(t, err)
	defer f.Close()
	stat, err := f.Stat()
	require.NoError(t, err)
	assert.Positive(t, stat.Size())
}
