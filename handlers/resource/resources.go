package resource

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

// ResourceHandler handles the faculty notes board
type ResourceHandler struct {
	resources database.Collection[model.Resource]
	validator *validation.Validator
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(store *database.Store) *ResourceHandler {
	return &ResourceHandler{
		resources: database.NewCollection[model.Resource](store, database.Resources),
		validator: validation.NewValidator(),
	}
}

// PostResourceRequest represents a note posted to the board
type PostResourceRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=2"`
	Link        string `json:"link,omitempty"`
}

// Post publishes a note to the institution's board. Faculty and admins only.
func (h *ResourceHandler) Post(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}
	if user.Role != model.RoleFaculty && user.Role != model.RoleAdmin {
		return response.Forbidden(c, "Only faculty can post resources")
	}

	var req PostResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	res := model.Resource{
		InstitutionID: user.InstitutionID,
		Title:         req.Title,
		Description:   req.Description,
		Link:          req.Link,
		AuthorName:    user.Name,
		PostedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	id, err := h.resources.Add(res)
	if err != nil {
		return response.InternalServerError(c, "Failed to post resource")
	}
	res.ID = id

	return response.Created(c, res)
}

// List returns the institution's notes board, newest first
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	all, err := h.resources.ReadAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to list resources")
	}

	scoped := []model.Resource{}
	for _, r := range all {
		if r.InstitutionID == institutionID {
			scoped = append(scoped, r)
		}
	}
	return response.Success(c, scoped)
}
