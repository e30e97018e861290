package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
)

const (
	HealthCheckDatabase    = "database"
	HealthCheckBooksTable  = "books_table"
	HealthCheckUniqueNames = "unique_name_index"
)

type HealthCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Books   *int64        `json:"books,omitempty"`
	Checks  []HealthCheck `json:"checks"`
}

// BookCounter is the part of the store the health endpoint reads.
type BookCounter interface {
	CountBooks() (int64, error)
}

type HealthController struct {
	db      *database.Database
	counter BookCounter
	version string
}

func NewHealthController(db *database.Database, counter BookCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		counter: counter,
		version: version,
	}
}

// Status answers 200 only when the catalogue can safely take writes: the
// database responds, the books table exists and the unique name index is in
// place. The book count is included when every check passes.
func (h *HealthController) Status(c *gin.Context) {
	checks := h.runChecks()

	response := HealthResponse{Status: "ok", Version: h.version, Checks: checks}
	for _, check := range checks {
		if !check.OK {
			response.Status = "degraded"
			c.IndentedJSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	if h.counter != nil {
		count, err := h.counter.CountBooks()
		if err != nil {
			response.Status = "degraded"
			response.Checks = append(response.Checks, HealthCheck{Name: "count", Detail: err.Error()})
			c.IndentedJSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Books = &count
	}

	c.IndentedJSON(http.StatusOK, response)
}

func (h *HealthController) runChecks() []HealthCheck {
	if h.db == nil {
		return []HealthCheck{{Name: HealthCheckDatabase, Detail: "not configured"}}
	}
	if err := h.db.Ping(); err != nil {
		return []HealthCheck{{Name: HealthCheckDatabase, Detail: err.Error()}}
	}

	schema := h.db.Schema()
	return []HealthCheck{
		{Name: HealthCheckDatabase, OK: true},
		schemaCheck(HealthCheckBooksTable, schema.BooksTable),
		schemaCheck(HealthCheckUniqueNames, schema.UniqueNameIndex),
	}
}

func schemaCheck(name string, present bool) HealthCheck {
	if present {
		return HealthCheck{Name: name, OK: true}
	}
	return HealthCheck{Name: name, Detail: "missing"}
}
