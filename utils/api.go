package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
)

func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, db *database.BadgerStore) error, db *database.BadgerStore) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, db); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return nil
	}
}
