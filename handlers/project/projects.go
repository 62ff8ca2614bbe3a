package project

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/utils/middleware"
	"github.com/educhanakya/campus-api/utils/response"
	"github.com/educhanakya/campus-api/utils/validation"
)

const maxUploadSize = 50 * 1024 * 1024 // 50MB

// ProjectHandler handles project ingestion, review and chat endpoints
type ProjectHandler struct {
	projects  *services.ProjectService
	validator *validation.Validator
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projects:  projects,
		validator: validation.NewValidator(),
	}
}

// Ingest accepts a project file upload, runs AI analysis and creates the
// project plus its chatroom. The upload succeeds even when analysis fails;
// the project then carries fallback metadata.
func (h *ProjectHandler) Ingest(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if file.Size > maxUploadSize {
		return response.BadRequest(c, "File size exceeds maximum allowed size of 50MB")
	}

	f, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to open file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return response.InternalServerError(c, "Failed to read file")
	}

	project, err := h.projects.Ingest(c.Context(), services.IngestInput{
		InstitutionID: user.InstitutionID,
		AuthorID:      user.ID,
		AuthorName:    user.Name,
		AuthorRole:    user.Role,
		Filename:      file.Filename,
		SizeBytes:     file.Size,
		ParentID:      c.FormValue("parentId"),
		Content:       content,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to ingest project")
	}

	return response.Created(c, project)
}

// List returns the institution's projects, newest first
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	projects, err := h.projects.ListByInstitution(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}
	return response.Success(c, projects)
}

// Lineages returns the institution's projects grouped into version chains
func (h *ProjectHandler) Lineages(c *fiber.Ctx) error {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	groups, err := h.projects.Lineages(institutionID)
	if err != nil {
		return response.InternalServerError(c, "Failed to group lineages")
	}
	return response.Success(c, groups)
}

// Get returns one project by id
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.findScoped(c)
	if err != nil {
		return h.scopeError(c, err)
	}
	return response.Success(c, project)
}

// UpdateStatusRequest changes a project's review status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves the project through the review workflow
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	if _, err := h.findScoped(c); err != nil {
		return h.scopeError(c, err)
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status != model.ProjectPending && req.Status != model.ProjectInProgress && req.Status != model.ProjectCompleted {
		return response.BadRequest(c, "Status must be one of: Pending, In Progress, Completed")
	}

	if err := h.projects.UpdateStatus(c.Params("id"), req.Status); err != nil {
		return response.InternalServerError(c, "Failed to update status")
	}

	return response.SuccessWithMessage(c, "Status updated", fiber.Map{"status": req.Status})
}

// AssignFacultyRequest sets the reviewing faculty member
type AssignFacultyRequest struct {
	FacultyID string `json:"facultyId" validate:"required"`
}

// AssignFaculty assigns a faculty reviewer to the project
func (h *ProjectHandler) AssignFaculty(c *fiber.Ctx) error {
	if _, err := h.findScoped(c); err != nil {
		return h.scopeError(c, err)
	}

	var req AssignFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.projects.AssignFaculty(c.Params("id"), req.FacultyID); err != nil {
		return response.InternalServerError(c, "Failed to assign faculty")
	}

	return response.SuccessWithMessage(c, "Faculty assigned", fiber.Map{"facultyId": req.FacultyID})
}

var (
	errUnauthenticated = errors.New("authentication required")
	errMissingID       = errors.New("project id required")
)

// findScoped loads the project and enforces tenant scoping. Cross-tenant ids
// read as not found.
func (h *ProjectHandler) findScoped(c *fiber.Ctx) (*model.Project, error) {
	institutionID, ok := middleware.GetInstitutionID(c)
	if !ok {
		return nil, errUnauthenticated
	}

	projectID := c.Params("id")
	if projectID == "" {
		return nil, errMissingID
	}

	project, err := h.projects.Find(projectID)
	if err != nil {
		return nil, err
	}
	if project.InstitutionID != institutionID {
		return nil, database.ErrNotFound
	}

	return project, nil
}

// scopeError maps findScoped failures onto HTTP responses
func (h *ProjectHandler) scopeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errUnauthenticated):
		return response.Unauthorized(c, "Authentication required")
	case errors.Is(err, errMissingID):
		return response.BadRequest(c, "Project ID is required")
	case errors.Is(err, database.ErrNotFound):
		return response.NotFound(c, "Project not found")
	default:
		return response.InternalServerError(c, "Failed to load project")
	}
}
