// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - http.BookStore: Book persistence used by the API (internal/http/stores.go)
//   - cli.BookCreator: Book inserts used by the seed command (internal/cli/seed.go)
//
// ## Request Throttling
//
//   - ratelimit.Limiter: Allow(key) decision per client (internal/ratelimit)
//
// # Adding a New Rate Limit Backend
//
//  1. Implement Allow(key string) bool in internal/ratelimit/
//  2. Add a backend constant in internal/config/config.go
//  3. Construct it in entrypoint.NewLimiter
//  4. Add a compile-time check to checks.go
package interfaces
