package http

import (
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/ratelimit"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database  *database.Database
	BookStore BookStore

	// Write throttling (optional)
	Limiter ratelimit.Limiter

	// Upper bound for request bodies; 0 disables the check
	MaxBodyBytes int64

	// Proxies whose X-Forwarded-For is honoured; empty trusts none
	TrustedProxies []string

	// Application info
	Version string
}
