package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/utils/response"
)

// RegisterInstitutionRequest represents an institution onboarding request
type RegisterInstitutionRequest struct {
	Name   string `json:"name" validate:"required,min=2"`
	Domain string `json:"domain" validate:"required,min=3"`
}

// RegisterInstitution onboards a new tenant
func (h *AuthHandler) RegisterInstitution(c *fiber.Ctx) error {
	var req RegisterInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	inst, err := h.directory.RegisterInstitution(req.Name, req.Domain)
	if err != nil {
		return response.InternalServerError(c, "Failed to register institution")
	}

	return response.Created(c, inst)
}

// ListInstitutions returns all registered institutions for the login picker
func (h *AuthHandler) ListInstitutions(c *fiber.Ctx) error {
	institutions, err := h.directory.Institutions()
	if err != nil {
		return response.InternalServerError(c, "Failed to list institutions")
	}
	return response.Success(c, institutions)
}
