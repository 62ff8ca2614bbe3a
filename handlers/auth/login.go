package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/response"
)

// LoginRequest represents a login request. Login carries no password: the
// user id (or display name) is the credential that was handed out when the
// account was created.
type LoginRequest struct {
	InstitutionID string `json:"institutionId" validate:"required"`
	Login         string `json:"login" validate:"required"` // user id or name
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User        *model.UserProfile `json:"user"`
	AccessToken string             `json:"access_token"`
	ExpiresIn   int                `json:"expires_in"` // in seconds
}

// Login resolves a user by id or name within the institution and issues a
// session token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	user, err := h.directory.Login(req.InstitutionID, req.Login)
	if err != nil {
		if err == services.ErrUserNotFound {
			return response.NotFound(c, "User not found in this institution")
		}
		return response.InternalServerError(c, "Failed to resolve login")
	}

	accessToken, err := h.jwtManager.GenerateToken(user.ID, user.InstitutionID, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	res := LoginResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   24 * 60 * 60, // 24 hours in seconds
	}

	return response.Success(c, res)
}
