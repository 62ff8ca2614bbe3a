package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/auth"
	"github.com/educhanakya/campus-api/utils/response"
)

// AuthMiddleware handles session token authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	directory  *services.DirectoryService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, directory *services.DirectoryService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		directory:  directory,
	}
}

// Required is middleware that requires a valid session token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		tokenString := parts[1]

		// Validate token
		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// Load user to confirm the account still exists
		user, err := m.directory.FindUser(claims.UserID)
		if err != nil {
			if err == services.ErrUserNotFound {
				return response.Unauthorized(c, "User not found")
			}
			return response.InternalServerError(c, "Failed to load user")
		}

		// Store user info and full profile in context
		c.Locals("user_id", claims.UserID)
		c.Locals("institution_id", user.InstitutionID)
		c.Locals("user_role", user.Role)
		c.Locals("claims", claims)
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireRole is middleware that requires specific user role
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := c.Locals("user_role")
		if userRole == nil {
			return response.Forbidden(c, "Access denied")
		}

		role := userRole.(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// RequireAdmin is middleware that requires the Admin role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(model.RoleAdmin)
}

// GetUser extracts the full user profile from context
func GetUser(c *fiber.Ctx) (*model.UserProfile, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.UserProfile)
	return u, ok
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (string, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetInstitutionID extracts the tenant institution ID from context
func GetInstitutionID(c *fiber.Ctx) (string, bool) {
	instID := c.Locals("institution_id")
	if instID == nil {
		return "", false
	}
	id, ok := instID.(string)
	return id, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	role := c.Locals("user_role")
	if role == nil {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}
