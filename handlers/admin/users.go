package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

// AdminHandler handles institution administration endpoints
type AdminHandler struct {
	directory *services.DirectoryService
	audit     *database.AuditLog
	validator *validation.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(directory *services.DirectoryService, audit *database.AuditLog) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		audit:     audit,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents a single user creation request
type CreateUserRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Email       string   `json:"email" validate:"required,email"`
	Role        string   `json:"role" validate:"required,oneof=Admin Faculty Student"`
	Batch       string   `json:"batch,omitempty"`
	Course      string   `json:"course,omitempty"`
	Year        string   `json:"year,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

// CreateUser creates one user in the admin's institution
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.directory.CreateUser(model.UserProfile{
		InstitutionID: institutionID,
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Batch:         req.Batch,
		Course:        req.Course,
		Year:          req.Year,
		PhoneNumber:   req.PhoneNumber,
		Subjects:      req.Subjects,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Created(c, user)
}

// ListUsers returns all users of the admin's institution
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	users, err := h.directory.GetUsersByInstitution(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, users)
}

// DeleteUser removes a user (and its candidate record) from the institution
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	userID := c.Params("id")
	if userID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	// Admins only manage their own tenant
	user, err := h.directory.FindUser(userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load user")
	}
	if user.InstitutionID != institutionID {
		return response.NotFound(c, "User not found")
	}

	if err := h.directory.DeleteUser(userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted", fiber.Map{"id": userID})
}
