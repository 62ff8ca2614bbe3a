package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services/gemini"
)

// IdeaService handles the ideation board: posting ideas, applying to join
// and approving applicants into the team.
type IdeaService struct {
	store    *database.Store
	ai       *gemini.Client
	ideas    database.Collection[model.Idea]
	messages database.Collection[model.Message]
}

// NewIdeaService creates a new idea service
func NewIdeaService(store *database.Store, ai *gemini.Client) *IdeaService {
	return &IdeaService{
		store:    store,
		ai:       ai,
		ideas:    database.NewCollection[model.Idea](store, database.Ideas),
		messages: database.NewCollection[model.Message](store, database.Messages),
	}
}

// CreateInput describes a new idea post
type CreateInput struct {
	InstitutionID string
	Title         string
	Description   string
	AuthorID      string
	AuthorName    string
}

// Create analyzes the description for required skills and open roles, then
// posts the idea with the author as first team member. A failed AI analysis
// fails the whole action; no idea is written.
func (s *IdeaService) Create(ctx context.Context, in CreateInput) (*model.Idea, error) {
	analysis := &gemini.IdeaAnalysis{Skills: []string{}, Roles: []string{}}
	if s.ai.Configured() {
		var err error
		analysis, err = s.ai.AnalyzeIdeaSkills(ctx, in.Description)
		if err != nil {
			return nil, fmt.Errorf("idea analysis: %w", err)
		}
	}

	title := in.Title
	if title == "" {
		title = "New Project Idea"
	}

	idea := model.Idea{
		InstitutionID:  in.InstitutionID,
		Title:          title,
		Description:    in.Description,
		RequiredSkills: analysis.Skills,
		OpenRoles:      analysis.Roles,
		Applicants:     []string{},
		Team:           []string{in.AuthorID}, // Owner is first team member
		Status:         model.IdeaOpen,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		AuthorID:       in.AuthorID,
		AuthorName:     in.AuthorName,
	}

	id, err := s.ideas.Add(idea)
	if err != nil {
		return nil, err
	}
	idea.ID = id
	return &idea, nil
}

// ListByInstitution returns the institution's ideas
func (s *IdeaService) ListByInstitution(institutionID string) ([]model.Idea, error) {
	ideas, err := s.ideas.ReadAll()
	if err != nil {
		return nil, err
	}
	scoped := []model.Idea{}
	for _, i := range ideas {
		if i.InstitutionID == institutionID {
			scoped = append(scoped, i)
		}
	}
	return scoped, nil
}

// Find returns one idea by id
func (s *IdeaService) Find(ideaID string) (*model.Idea, error) {
	ideas, err := s.ideas.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, i := range ideas {
		if i.ID == ideaID {
			return &i, nil
		}
	}
	return nil, fmt.Errorf("idea (ID: %s): %w", ideaID, database.ErrNotFound)
}

// Apply adds the user to the idea's applicants. Users already applying or
// already on the team are left untouched, keeping the invariant that a user
// id appears in at most one of the two lists.
func (s *IdeaService) Apply(ideaID, userID string) (*model.Idea, error) {
	idea, err := s.Find(ideaID)
	if err != nil {
		return nil, err
	}

	if contains(idea.Applicants, userID) || contains(idea.Team, userID) {
		return idea, nil
	}

	idea.Applicants = append(idea.Applicants, userID)
	if err := s.ideas.Update(ideaID, map[string]any{"applicants": idea.Applicants}); err != nil {
		return nil, err
	}
	return idea, nil
}

// Approve moves an applicant onto the team and announces it in the team
// chat. This is the only transition; once approved there is no removal path.
func (s *IdeaService) Approve(ideaID, applicantID, applicantName string) (*model.Idea, error) {
	idea, err := s.Find(ideaID)
	if err != nil {
		return nil, err
	}

	if !contains(idea.Applicants, applicantID) {
		return nil, fmt.Errorf("applicant %s on idea %s: %w", applicantID, ideaID, database.ErrNotFound)
	}

	applicants := []string{}
	for _, id := range idea.Applicants {
		if id != applicantID {
			applicants = append(applicants, id)
		}
	}
	team := append(idea.Team, applicantID)

	if err := s.ideas.Update(ideaID, map[string]any{"applicants": applicants, "team": team}); err != nil {
		return nil, err
	}
	idea.Applicants = applicants
	idea.Team = team

	if _, err := s.messages.Add(model.Message{
		InstitutionID: idea.InstitutionID,
		ProjectID:     idea.ID,
		SenderID:      model.SystemSender,
		SenderName:    "System",
		Text:          fmt.Sprintf("%s has joined the team!", applicantName),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("[Ideas] Failed to post join notice for %s: %v", idea.ID, err)
	}

	return idea, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
