package http

import (
	"log"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Rate limiting keys on ClientIP, so forwarded headers are only read
	// from configured proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	if cfg.MaxBodyBytes > 0 {
		router.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))
	}

	health := NewHealthController(cfg.Database, cfg.BookStore, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.BookStore == nil {
		return router
	}

	booksController := NewBooksController(cfg.BookStore)

	// Books API endpoints
	api := router.Group("/api/books")
	api.GET("", booksController.GetAllBooks)
	api.GET("/search", booksController.GetBookByName)
	api.GET("/:id", booksController.GetBook)

	// Write endpoints are throttled when a limiter is configured
	writes := api.Group("")
	if cfg.Limiter != nil {
		writes.Use(RateLimitMiddleware(cfg.Limiter))
	}
	writes.POST("", booksController.CreateBook)
	writes.DELETE("/:id", booksController.DeleteBook)

	return router
}
