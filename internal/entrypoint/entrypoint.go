package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/ratelimit"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// NewLimiter builds the configured write limiter. It returns nil when rate
// limiting is disabled. The returned cleanup must be called on shutdown.
func NewLimiter(cfg config.RateLimit) (ratelimit.Limiter, func(), error) {
	if !cfg.Enabled {
		return nil, func() {}, nil
	}

	switch cfg.Backend {
	case config.RateLimitBackendRedis:
		limiter, err := ratelimit.DialRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix, cfg.Requests, cfg.Window)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Rate limiting: redis at %s, %d writes per %v", cfg.RedisAddr, cfg.Requests, cfg.Window)
		return limiter, func() {
			if err := limiter.Close(); err != nil {
				log.Printf("Error closing rate limiter: %v", err)
			}
		}, nil

	case config.RateLimitBackendMemory, "":
		limiter := ratelimit.NewMemoryLimiter(cfg.RPS, cfg.Burst, cfg.IdleTTL)
		ctx, cancel := context.WithCancel(context.Background())
		limiter.StartJanitor(ctx, time.Minute)
		log.Printf("Rate limiting: memory, %.2f writes/s (burst %d)", cfg.RPS, cfg.Burst)
		return limiter, cancel, nil

	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	limiter, stopLimiter, err := NewLimiter(cfg.RateLimit)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	if limiter == nil {
		log.Printf("Rate limiting disabled")
	}

	repo := books.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		BookStore:      repo,
		Limiter:        limiter,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		stopLimiter()
	}

	Serve(router, cfg, onShutdown)
}
