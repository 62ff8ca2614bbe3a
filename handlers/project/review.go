package project

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
)

// Critique runs the AI deep review and persists it on the project.
// An upstream failure leaves the stored project untouched.
func (h *ProjectHandler) Critique(c *fiber.Ctx) error {
	if _, err := h.findScoped(c); err != nil {
		return h.scopeError(c, err)
	}

	critique, err := h.projects.Critique(c.Context(), c.Params("id"))
	if err != nil {
		return response.BadGateway(c, "Critique generation failed")
	}

	return response.Success(c, critique)
}

// HandoverRequest is the faculty guidance left for the next iteration
type HandoverRequest struct {
	Note              string `json:"note" validate:"required,min=2"`
	RecommendedPathID string `json:"recommendedPathId,omitempty"`
	ResourceLink      string `json:"resourceLink,omitempty"`
}

// Handover attaches the faculty note, recommended learning path and optional
// resource link to the project
func (h *ProjectHandler) Handover(c *fiber.Ctx) error {
	if _, err := h.findScoped(c); err != nil {
		return h.scopeError(c, err)
	}

	role, _ := middleware.GetUserRole(c)
	if role != model.RoleFaculty && role != model.RoleAdmin {
		return response.Forbidden(c, "Only faculty can attach handover notes")
	}

	var req HandoverRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.projects.AttachHandover(c.Params("id"), services.HandoverInput{
		Note:              req.Note,
		RecommendedPathID: req.RecommendedPathID,
		ResourceLink:      req.ResourceLink,
	}); err != nil {
		return response.InternalServerError(c, "Failed to save handover")
	}

	return response.SuccessWithMessage(c, "Handover saved", nil)
}
