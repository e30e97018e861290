package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/cli"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/ratelimit"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ cli.BookCreator = (*books.Repository)(nil)
var _ http.BookCounter = (*books.Repository)(nil)

// =============================================================================
// Rate Limiting
// =============================================================================

var _ ratelimit.Limiter = (*ratelimit.MemoryLimiter)(nil)
var _ ratelimit.Limiter = (*ratelimit.RedisLimiter)(nil)
