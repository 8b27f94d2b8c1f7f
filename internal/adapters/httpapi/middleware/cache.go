package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yatube/internal/config"
	cachePort "yatube/internal/ports/cache"
)

const anonymous = "anonymous"

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePageKey identifies a cached page per actor and request URI.
func CachePageKey(c *gin.Context) string {
	actor := anonymous
	if user := CurrentUser(c); user != nil {
		actor = user.ID
	}
	return actor + ":" + c.Request.URL.RequestURI()
}

// CachePage serves GET responses from cache for ttl. Only 200 responses are
// stored. Cache failures are logged and the page is rendered normally.
func CachePage(cache cachePort.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := CachePageKey(c)

		body, ok, err := cache.Get(ctx, key)
		if err != nil {
			config.Logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		if err := cache.Set(ctx, key, rec.body.Bytes(), ttl); err != nil {
			config.Logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
