package learning

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

// LearningHandler handles AI curriculum endpoints
type LearningHandler struct {
	learning  *services.LearningService
	validator *validation.Validator
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(learning *services.LearningService) *LearningHandler {
	return &LearningHandler{
		learning:  learning,
		validator: validation.NewValidator(),
	}
}

// GenerateRequest asks for a curriculum toward a learning goal
type GenerateRequest struct {
	Goal string `json:"goal" validate:"required,min=3"`
}

// Generate builds and persists an AI curriculum for the goal. Nothing is
// stored when generation fails.
func (h *LearningHandler) Generate(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	path, err := h.learning.Generate(c.Context(), req.Goal, user.Name, user.InstitutionID)
	if err != nil {
		return response.BadGateway(c, "Curriculum generation failed")
	}

	return response.Created(c, path)
}

// List returns the institution's learning paths plus global ones
func (h *LearningHandler) List(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	paths, err := h.learning.List(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list learning paths")
	}
	return response.Success(c, paths)
}
