package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services/gemini"
)

// ProjectService handles the project repository: ingestion, lineage listing,
// status transitions, AI critique and faculty annotations.
type ProjectService struct {
	store     *database.Store
	ai        *gemini.Client
	directory *DirectoryService
	projects  database.Collection[model.Project]
	messages  database.Collection[model.Message]
}

// NewProjectService creates a new project service
func NewProjectService(store *database.Store, ai *gemini.Client, directory *DirectoryService) *ProjectService {
	return &ProjectService{
		store:     store,
		ai:        ai,
		directory: directory,
		projects:  database.NewCollection[model.Project](store, database.Projects),
		messages:  database.NewCollection[model.Message](store, database.Messages),
	}
}

// IngestInput describes one uploaded project file
type IngestInput struct {
	InstitutionID string
	AuthorID      string
	AuthorName    string
	AuthorRole    string
	Filename      string
	SizeBytes     int64
	ParentID      string // empty for a new lineage root
	Content       []byte // optional raw file bytes, used for PDF preview only
}

// Ingest analyzes the uploaded file with AI, persists the project, syncs the
// inferred tags into the author's candidate skills and announces the new
// chatroom. If the AI call fails the project is still created with fallback
// metadata so the upload never half-applies.
func (s *ProjectService) Ingest(ctx context.Context, in IngestInput) (*model.Project, error) {
	analysis := s.analyze(ctx, in)

	project := model.Project{
		InstitutionID: in.InstitutionID,
		ParentID:      in.ParentID,
		Title:         analysis.Title,
		Description:   analysis.Description,
		Complexity:    analysis.Complexity,
		Tags:          analysis.Tags,
		Filename:      in.Filename,
		SizeBytes:     in.SizeBytes,
		UploadedAt:    time.Now().UTC().Format(time.RFC3339),
		AuthorID:      in.AuthorID,
		AuthorName:    in.AuthorName,
		Status:        model.ProjectPending,
	}

	// Sync inferred tags into the student's talent-pool skills
	if in.AuthorRole == model.RoleStudent && len(project.Tags) > 0 {
		if err := s.directory.AppendSkills(in.AuthorID, project.Tags); err != nil {
			log.Printf("[Projects] Failed to sync skills for %s: %v", in.AuthorID, err)
		}
	}

	id, err := s.projects.Add(project)
	if err != nil {
		return nil, err
	}
	project.ID = id

	version := "1"
	if in.ParentID != "" {
		version = "Next"
	}
	if _, err := s.messages.Add(model.Message{
		InstitutionID: in.InstitutionID,
		ProjectID:     id,
		SenderID:      model.SystemSender,
		SenderName:    "System",
		Text:          fmt.Sprintf("Project ingestion complete. Chatroom created for %s (v%s).", project.Title, version),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("[Projects] Failed to post welcome message for %s: %v", id, err)
	}

	return &project, nil
}

// analyze asks the AI for project metadata and falls back to a stub when the
// AI is unconfigured or fails, matching the upload contract: the record is
// created in full either way.
func (s *ProjectService) analyze(ctx context.Context, in IngestInput) gemini.ProjectAnalysis {
	preview := ""
	if strings.HasSuffix(strings.ToLower(in.Filename), ".pdf") && len(in.Content) > 0 {
		text, err := ExtractPDFText(in.Content)
		if err != nil {
			log.Printf("[Projects] PDF text extraction failed for %s: %v", in.Filename, err)
		} else {
			preview = text
		}
	}

	if s.ai.Configured() {
		analysis, err := s.ai.AnalyzeProjectFile(ctx, in.Filename, in.SizeBytes, preview)
		if err == nil {
			if analysis.Title == "" {
				analysis.Title = in.Filename
			}
			return *analysis
		}
		log.Printf("[Projects] AI analysis failed for %s: %v", in.Filename, err)
	}

	return gemini.ProjectAnalysis{
		Title:       in.Filename,
		Description: "Analysis failed. Please check API Key.",
		Complexity:  10,
		Tags:        []string{"Unknown"},
	}
}

// ListByInstitution returns the institution's projects
func (s *ProjectService) ListByInstitution(institutionID string) ([]model.Project, error) {
	projects, err := s.projects.ReadAll()
	if err != nil {
		return nil, err
	}
	scoped := []model.Project{}
	for _, p := range projects {
		if p.InstitutionID == institutionID {
			scoped = append(scoped, p)
		}
	}
	return scoped, nil
}

// Lineages groups the institution's projects into version lineages
func (s *ProjectService) Lineages(institutionID string) ([][]model.Project, error) {
	projects, err := s.ListByInstitution(institutionID)
	if err != nil {
		return nil, err
	}
	return GroupLineages(projects), nil
}

// Find returns one project by id
func (s *ProjectService) Find(projectID string) (*model.Project, error) {
	projects, err := s.projects.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == projectID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project (ID: %s): %w", projectID, database.ErrNotFound)
}

// UpdateStatus moves a project through Pending / In Progress / Completed
func (s *ProjectService) UpdateStatus(projectID, status string) error {
	switch status {
	case model.ProjectPending, model.ProjectInProgress, model.ProjectCompleted:
	default:
		return fmt.Errorf("invalid project status %q", status)
	}
	return s.projects.Update(projectID, map[string]any{"status": status})
}

// Critique runs the AI deep review and attaches the result. The project is
// only written when the AI call fully succeeds.
func (s *ProjectService) Critique(ctx context.Context, projectID string) (*model.ProjectCritique, error) {
	project, err := s.Find(projectID)
	if err != nil {
		return nil, err
	}

	critique, err := s.ai.CritiqueProject(ctx, *project)
	if err != nil {
		return nil, fmt.Errorf("critique generation: %w", err)
	}

	if err := s.projects.Update(projectID, map[string]any{"critique": critique}); err != nil {
		return nil, err
	}
	return critique, nil
}

// HandoverInput is the faculty annotation attached to a project for whoever
// picks up the next iteration
type HandoverInput struct {
	Note              string
	RecommendedPathID string
	ResourceLink      string // appended to sharedResources when present
}

// AttachHandover saves faculty handover guidance on a project
func (s *ProjectService) AttachHandover(projectID string, in HandoverInput) error {
	updates := map[string]any{
		"handoverNote":      in.Note,
		"recommendedPathId": in.RecommendedPathID,
	}
	if in.ResourceLink != "" {
		project, err := s.Find(projectID)
		if err != nil {
			return err
		}
		updates["sharedResources"] = append(project.SharedResources, in.ResourceLink)
	}
	return s.projects.Update(projectID, updates)
}

// AssignFaculty sets the reviewing faculty member
func (s *ProjectService) AssignFaculty(projectID, facultyID string) error {
	return s.projects.Update(projectID, map[string]any{"assignedFacultyId": facultyID})
}

// Messages returns a chatroom's messages in timestamp order. The chatroom id
// is a project id or an idea id.
func (s *ProjectService) Messages(institutionID, chatroomID string) ([]model.Message, error) {
	messages, err := s.messages.ReadAll()
	if err != nil {
		return nil, err
	}
	scoped := []model.Message{}
	for _, m := range messages {
		if m.InstitutionID == institutionID && m.ProjectID == chatroomID {
			scoped = append(scoped, m)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].Timestamp < scoped[j].Timestamp
	})
	return scoped, nil
}

// PostMessage appends a chat message
func (s *ProjectService) PostMessage(msg model.Message) (*model.Message, error) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	id, err := s.messages.Add(msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return &msg, nil
}
