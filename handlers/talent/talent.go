package talent

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
)

// TalentHandler handles the candidate pool endpoints
type TalentHandler struct {
	talent *services.TalentService
}

// NewTalentHandler creates a new talent handler
func NewTalentHandler(talent *services.TalentService) *TalentHandler {
	return &TalentHandler{talent: talent}
}

// List returns the institution's candidate pool
func (h *TalentHandler) List(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	candidates, err := h.talent.Candidates(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list candidates")
	}
	return response.Success(c, candidates)
}

// GenerateBio writes an AI bio onto the candidate. The stored record is
// untouched when the upstream call fails.
func (h *TalentHandler) GenerateBio(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	candidateID := c.Params("id")
	if candidateID == "" {
		return response.BadRequest(c, "Candidate ID is required")
	}

	candidate, err := h.talent.GenerateBio(c.Context(), institutionID, candidateID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Candidate not found")
		}
		return response.BadGateway(c, "Bio generation failed")
	}

	return response.Success(c, candidate)
}
