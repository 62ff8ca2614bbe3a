package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/utils/response"
)

// AuditLog returns the in-memory activity log, most recent first
func (h *AdminHandler) AuditLog(c *fiber.Ctx) error {
	return response.Success(c, h.audit.Entries())
}
