package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
)

// HandleCheckHealth reports liveness plus storage health
func HandleCheckHealth(c *fiber.Ctx, db *database.BadgerStore) error {
	if err := db.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}

	lsm, vlog := db.Size()
	return c.JSON(fiber.Map{
		"status": "ok",
		"storage": fiber.Map{
			"lsmBytes":      lsm,
			"valueLogBytes": vlog,
		},
	})
}
