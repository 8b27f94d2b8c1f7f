package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"yatube/internal/errs"
	userPort "yatube/internal/ports/user"
)

type memoryCache struct {
	pages map[string][]byte
	ttls  map[string]time.Duration
	err   error
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	body, ok := m.pages[key]
	return body, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.pages[key] = append([]byte(nil), body...)
	m.ttls[key] = ttl
	return nil
}

type staticAuth map[string]*userPort.UserDTO

func (a staticAuth) Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token.")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCachePage(t *testing.T) {
	cache := newMemoryCache()
	hits := 0

	r := gin.New()
	r.Use(Authenticate(staticAuth{"leo-token": {ID: "leo-id", Username: "leo"}}))
	r.GET("/", CachePage(cache, 20*time.Second), func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "render %d", hits)
	})
	r.GET("/missing", CachePage(cache, 20*time.Second), func(c *gin.Context) {
		c.String(http.StatusNotFound, "nope")
	})

	first := serve(r, http.MethodGet, "/", "")
	second := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, "render 1", first.Body.String())
	assert.Equal(t, "render 1", second.Body.String())
	assert.Equal(t, 20*time.Second, cache.ttls["anonymous:/"])

	// each actor has its own copy of the page
	assert.Equal(t, "render 2", serve(r, http.MethodGet, "/", "leo-token").Body.String())
	assert.Contains(t, cache.pages, "leo-id:/")

	assert.Equal(t, "render 3", serve(r, http.MethodGet, "/?page=2", "").Body.String())

	serve(r, http.MethodGet, "/missing", "")
	assert.NotContains(t, cache.pages, "anonymous:/missing")
}

func TestCachePage_FailsOpen(t *testing.T) {
	cache := newMemoryCache()
	cache.err = errors.New("connection refused")

	r := gin.New()
	r.GET("/", CachePage(cache, time.Second), func(c *gin.Context) {
		c.String(http.StatusOK, "fresh")
	})

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fresh", w.Body.String())
}

func TestLoginRequired(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(staticAuth{"leo-token": {ID: "leo-id", Username: "leo"}}))
	r.GET("/new/", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})

	w := serve(r, http.MethodGet, "/new/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fnew%2F", w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/new/", "bogus")
	assert.Equal(t, http.StatusFound, w.Code)

	w = serve(r, http.MethodGet, "/new/", "leo-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "leo", w.Body.String())
}

func TestOnlyAuthor(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(staticAuth{
		"leo-token":  {ID: "leo-id", Username: "leo"},
		"anna-token": {ID: "anna-id", Username: "anna"},
	}))
	r.GET("/:username/:post_id/edit/", OnlyAuthor(), func(c *gin.Context) {
		c.String(http.StatusOK, "edit form")
	})

	w := serve(r, http.MethodGet, "/leo/3/edit/", "anna-token")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/leo/3/", w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/leo/3/edit/", "leo-token")
	assert.Equal(t, http.StatusOK, w.Code)
}
