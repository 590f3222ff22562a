package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticParser map[string]string

func (p staticParser) ParseToken(token string) (string, error) {
	if id, ok := p[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddleware(staticParser{"good": "user-1"}))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.String(http.StatusOK, id)
	})
	r.GET("/private", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer good", "", "user-1"},
		{"lowercase scheme", "bearer good", "", "user-1"},
		{"cookie", "", "good", "user-1"},
		{"invalid token", "Bearer bad", "", ""},
		{"anonymous", "", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Body.String() != tc.want {
				t.Fatalf("user = %q, want %q", w.Body.String(), tc.want)
			}
		})
	}
}

func TestLoginRequiredRedirects(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != LoginPath {
		t.Fatalf("anonymous: %d -> %q", w.Code, w.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "secret" {
		t.Fatalf("authenticated: %d %q", w.Code, w.Body.String())
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/admin", AdminAuthMiddleware("s3cret"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, tc := range []struct {
		token string
		want  int
	}{
		{"", http.StatusUnauthorized},
		{"wrong", http.StatusForbidden},
		{"s3cret", http.StatusNoContent},
	} {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		if tc.token != "" {
			req.Header.Set(AdminTokenHeader, tc.token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("token %q: status %d, want %d", tc.token, w.Code, tc.want)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/write", RateLimitMiddleware(NewIPRateLimiter(0.0001, 2)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("statuses = %v, want burst of 2 then 429", codes)
	}

	open := gin.New()
	open.POST("/write", RateLimitMiddleware(nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("nil limiter rejected request %d", i)
		}
	}
}
