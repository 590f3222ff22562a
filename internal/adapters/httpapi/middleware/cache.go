package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
	"yatube/internal/config"
	"yatube/internal/ports/pagecache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheHeader tells clients whether a page came from the page cache.
const CacheHeader = "X-Page-Cache"

const skipCacheKey = "pagecache.skip"

// SkipPageCache tells CachePage not to memoize the current response.
func SkipPageCache(c *gin.Context) {
	c.Set(skipCacheKey, true)
}

// KeyFunc names the cache entry for a request.
type KeyFunc func(c *gin.Context) string

type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves the memoized response for key(c) while it is younger than
// ttl; otherwise it runs the handler and memoizes a 200 response. Writes
// elsewhere never invalidate an entry. A failing store only costs a
// recomputation.
func CachePage(store pagecache.Store, ttl time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		k := key(c)

		raw, ok, err := store.Get(ctx, k)
		if err != nil {
			config.Logger.Warn("Page cache read failed", zap.String("key", k), zap.Error(err))
		}
		if ok {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				c.Header(CacheHeader, "HIT")
				c.Data(http.StatusOK, page.ContentType, page.Body)
				c.Abort()
				return
			}
			config.Logger.Warn("Discarding unreadable page cache entry", zap.String("key", k))
		}

		w := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Header(CacheHeader, "MISS")
		c.Next()

		if w.Status() != http.StatusOK || c.GetBool(skipCacheKey) {
			return
		}
		entry, err := json.Marshal(cachedPage{
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Set(ctx, k, entry, ttl); err != nil {
			config.Logger.Warn("Page cache write failed", zap.String("key", k), zap.Error(err))
		}
	}
}
