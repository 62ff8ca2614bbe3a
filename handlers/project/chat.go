package project

import (
	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
)

// Messages returns the chatroom history for a project or idea, oldest first
func (h *ProjectHandler) Messages(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	chatroomID := c.Params("id")
	if chatroomID == "" {
		return response.BadRequest(c, "Chatroom ID is required")
	}

	messages, err := h.projects.Messages(institutionID, chatroomID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load messages")
	}

	return response.Success(c, messages)
}

// PostMessageRequest is one chat message body
type PostMessageRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// PostMessage appends a chat message to the chatroom as the logged-in user
func (h *ProjectHandler) PostMessage(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	chatroomID := c.Params("id")
	if chatroomID == "" {
		return response.BadRequest(c, "Chatroom ID is required")
	}

	var req PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	msg, err := h.projects.PostMessage(model.Message{
		InstitutionID: user.InstitutionID,
		ProjectID:     chatroomID,
		SenderID:      user.ID,
		SenderName:    user.Name,
		Text:          req.Text,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to post message")
	}

	return response.Created(c, msg)
}
