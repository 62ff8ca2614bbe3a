package admin

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
)

const maxRosterSize = 5 * 1024 * 1024 // 5MB

// BulkUploadRequest carries a pasted roster when no file is attached
type BulkUploadRequest struct {
	Roster string `json:"roster"`
}

// BulkUpload imports users from an uploaded or pasted CSV roster.
// Partial success is a success: the payload reports created vs skipped rows.
func (h *AdminHandler) BulkUpload(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	text, err := rosterText(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if text == "" {
		return response.BadRequest(c, "Roster is required (file upload or roster field)")
	}

	rows := services.ParseRoster(text)
	if len(rows) == 0 {
		return response.BadRequest(c, "Roster contains no data rows")
	}

	result, err := h.directory.BulkCreateUsers(institutionID, rows)
	if err != nil {
		return response.InternalServerError(c, "Failed to import roster")
	}

	return response.SuccessWithMessage(c, "Roster import finished", result)
}

// rosterText extracts CSV text from a multipart "file" field or the JSON body
func rosterText(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("file")
	if err == nil {
		if file.Size > maxRosterSize {
			return "", fiber.NewError(fiber.StatusBadRequest, "Roster file exceeds 5MB")
		}
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxRosterSize))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var req BulkUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return "", nil
	}
	return req.Roster, nil
}
