package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/ratelimit"
)

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an ID when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps the caller's ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("replaces an oversized ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(0.01, 1, time.Minute)

	router := gin.New()
	router.Use(RateLimitMiddleware(limiter))
	router.POST("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/", nil)
		req.RemoteAddr = remoteAddr
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1234").Code)

	w := send("10.0.0.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), CodeRateLimited)

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1234").Code)
}

func TestRouter_ThrottlesWritesOnly(t *testing.T) {
	db, repo := setupBooksTestDB(t)
	router := NewRouter(RouterConfig{
		Database:  db,
		BookStore: repo,
		Limiter:   ratelimit.NewMemoryLimiter(0.01, 1, time.Minute),
	})

	first := postJSON(router, "/api/books", `{"name":"One","author":"A","year_published":2000,"book_type":"Novel"}`)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(router, "/api/books", `{"name":"Two","author":"A","year_published":2000,"book_type":"Novel"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestBodyLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimitMiddleware(16))
	router.POST("/", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			respondBindError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/", strings.NewReader(`{"a":"b"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/", strings.NewReader(`{"a":"`+strings.Repeat("b", 64)+`"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := NewRouter(RouterConfig{Version: "test"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRouter_RateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	sendFrom := func(router *gin.Engine, i int) int {
		body := `{"name":"Book ` + strconv.Itoa(i) + `","author":"A","year_published":2000,"book_type":"Novel"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "198.51.100."+strconv.Itoa(i))
		req.RemoteAddr = "203.0.113.7:4321"
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("spoofed header does not buy a fresh bucket", func(t *testing.T) {
		db, repo := setupBooksTestDB(t)
		router := NewRouter(RouterConfig{
			Database:  db,
			BookStore: repo,
			Limiter:   ratelimit.NewMemoryLimiter(0.001, 1, time.Minute),
		})

		codes := make([]int, 0, 5)
		for i := 1; i <= 5; i++ {
			codes = append(codes, sendFrom(router, i))
		}

		assert.Equal(t, []int{
			http.StatusCreated,
			http.StatusTooManyRequests,
			http.StatusTooManyRequests,
			http.StatusTooManyRequests,
			http.StatusTooManyRequests,
		}, codes)
	})

	t.Run("trusted proxy forwards the client address", func(t *testing.T) {
		db, repo := setupBooksTestDB(t)
		router := NewRouter(RouterConfig{
			Database:       db,
			BookStore:      repo,
			Limiter:        ratelimit.NewMemoryLimiter(0.001, 1, time.Minute),
			TrustedProxies: []string{"203.0.113.7"},
		})

		for i := 1; i <= 5; i++ {
			assert.Equal(t, http.StatusCreated, sendFrom(router, i))
		}
	})

	t.Run("invalid proxy list falls back to trusting none", func(t *testing.T) {
		db, repo := setupBooksTestDB(t)
		router := NewRouter(RouterConfig{
			Database:       db,
			BookStore:      repo,
			Limiter:        ratelimit.NewMemoryLimiter(0.001, 1, time.Minute),
			TrustedProxies: []string{"not-an-ip"},
		})

		assert.Equal(t, http.StatusCreated, sendFrom(router, 1))
		assert.Equal(t, http.StatusTooManyRequests, sendFrom(router, 2))
	})
}
