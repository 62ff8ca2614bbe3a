package auth

import (
	"github.com/educhanakya/campus-api/services"
	authutil "github.com/educhanakya/campus-api/utils/auth"
	"github.com/educhanakya/campus-api/utils/validation"
)

// AuthHandler handles institution registration and login
type AuthHandler struct {
	directory  *services.DirectoryService
	jwtManager *authutil.JWTManager
	validator  *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(directory *services.DirectoryService, jwtManager *authutil.JWTManager) *AuthHandler {
	return &AuthHandler{
		directory:  directory,
		jwtManager: jwtManager,
		validator:  validation.NewValidator(),
	}
}
