package chat

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/services/gemini"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

// AssistantHandler handles the platform AI assistant
type AssistantHandler struct {
	ai        *gemini.Client
	validator *validation.Validator
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(ai *gemini.Client) *AssistantHandler {
	return &AssistantHandler{
		ai:        ai,
		validator: validation.NewValidator(),
	}
}

// AskRequest is one assistant turn with optional prior history
type AskRequest struct {
	Message string               `json:"message" validate:"required,min=1"`
	History []gemini.ChatMessage `json:"history,omitempty"`
}

// AskResponse is the assistant's reply
type AskResponse struct {
	Reply string `json:"reply"`
}

// Ask sends one message to the assistant and returns its reply
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	reply, err := h.ai.Chat(c.Context(), req.Message, req.History)
	if err != nil {
		return response.BadGateway(c, "Assistant is unavailable")
	}

	return response.Success(c, AskResponse{Reply: reply})
}
