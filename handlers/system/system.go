package system

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/utils/response"
)

// SystemHandler exposes observability endpoints: raw collection dumps, the
// activity log, and live SSE streams of both.
type SystemHandler struct {
	store *database.Store
	audit *database.AuditLog
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(store *database.Store, audit *database.AuditLog) *SystemHandler {
	return &SystemHandler{
		store: store,
		audit: audit,
	}
}

// knownCollections guards the debug endpoints against arbitrary keys
var knownCollections = map[string]bool{
	database.Institutions: true,
	database.Users:        true,
	database.Projects:     true,
	database.Candidates:   true,
	database.Ideas:        true,
	database.Learning:     true,
	database.Messages:     true,
	database.Resources:    true,
}

// DumpCollection returns the raw records of one collection. Debug use only.
func (h *SystemHandler) DumpCollection(c *fiber.Ctx) error {
	name := c.Params("collection")
	if !knownCollections[name] {
		return response.NotFound(c, "Unknown collection")
	}

	records, err := h.store.ReadAll(name)
	if err != nil {
		return response.InternalServerError(c, "Failed to read collection")
	}
	return response.Success(c, records)
}

// AuditLog returns the activity log snapshot, most recent first
func (h *SystemHandler) AuditLog(c *fiber.Ctx) error {
	return response.Success(c, h.audit.Entries())
}
