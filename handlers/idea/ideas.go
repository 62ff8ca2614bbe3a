package idea

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

// IdeaHandler handles the ideation board endpoints
type IdeaHandler struct {
	ideas     *services.IdeaService
	directory *services.DirectoryService
	validator *validation.Validator
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideas *services.IdeaService, directory *services.DirectoryService) *IdeaHandler {
	return &IdeaHandler{
		ideas:     ideas,
		directory: directory,
		validator: validation.NewValidator(),
	}
}

// CreateIdeaRequest represents a new idea post
type CreateIdeaRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description" validate:"required,min=10"`
}

// Create posts a new idea. The description is analyzed by AI for required
// skills and open roles; a failed analysis fails the whole request.
func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	idea, err := h.ideas.Create(c.Context(), services.CreateInput{
		InstitutionID: user.InstitutionID,
		Title:         req.Title,
		Description:   req.Description,
		AuthorID:      user.ID,
		AuthorName:    user.Name,
	})
	if err != nil {
		return response.BadGateway(c, "Idea analysis failed")
	}

	return response.Created(c, idea)
}

// List returns the institution's ideation board
func (h *IdeaHandler) List(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	ideas, err := h.ideas.ListByInstitution(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list ideas")
	}
	return response.Success(c, ideas)
}

// Apply adds the logged-in user to the idea's applicants. Applying twice or
// applying while already on the team is a no-op.
func (h *IdeaHandler) Apply(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	idea, err := h.ideas.Find(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Idea not found")
		}
		return response.InternalServerError(c, "Failed to load idea")
	}
	if idea.InstitutionID != user.InstitutionID {
		return response.NotFound(c, "Idea not found")
	}

	idea, err = h.ideas.Apply(idea.ID, user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to apply")
	}

	return response.Success(c, idea)
}

// ApproveRequest names the applicant being accepted
type ApproveRequest struct {
	ApplicantID string `json:"applicantId" validate:"required"`
}

// Approve moves an applicant onto the team. Only the idea's author can
// approve; approval is one-way.
func (h *IdeaHandler) Approve(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	idea, err := h.ideas.Find(c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "Idea not found")
		}
		return response.InternalServerError(c, "Failed to load idea")
	}
	if idea.InstitutionID != user.InstitutionID {
		return response.NotFound(c, "Idea not found")
	}
	if idea.AuthorID != user.ID {
		return response.Forbidden(c, "Only the idea author can approve applicants")
	}

	applicant, err := h.directory.FindUser(req.ApplicantID)
	if err != nil {
		if err == services.ErrUserNotFound {
			return response.NotFound(c, "Applicant not found")
		}
		return response.InternalServerError(c, "Failed to load applicant")
	}

	idea, err = h.ideas.Approve(idea.ID, applicant.ID, applicant.Name)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "No pending application for this user")
		}
		return response.InternalServerError(c, "Failed to approve applicant")
	}

	return response.Success(c, idea)
}
