package services

import (
	"context"
	"fmt"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services/gemini"
)

// TalentService exposes the candidate pool and AI bio generation
type TalentService struct {
	ai         *gemini.Client
	candidates database.Collection[model.Candidate]
}

// NewTalentService creates a new talent service
func NewTalentService(store *database.Store, ai *gemini.Client) *TalentService {
	return &TalentService{
		ai:         ai,
		candidates: database.NewCollection[model.Candidate](store, database.Candidates),
	}
}

// Candidates returns the institution's talent pool
func (s *TalentService) Candidates(institutionID string) ([]model.Candidate, error) {
	all, err := s.candidates.ReadAll()
	if err != nil {
		return nil, err
	}
	pool := []model.Candidate{}
	for _, c := range all {
		if c.InstitutionID == institutionID {
			pool = append(pool, c)
		}
	}
	return pool, nil
}

// Find returns a single candidate by ID
func (s *TalentService) Find(institutionID, id string) (*model.Candidate, error) {
	all, err := s.candidates.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ID == id && c.InstitutionID == institutionID {
			return &c, nil
		}
	}
	return nil, database.ErrNotFound
}

// GenerateBio produces and persists an AI-written bio for the candidate.
// The stored record is untouched when generation fails.
func (s *TalentService) GenerateBio(ctx context.Context, institutionID, id string) (*model.Candidate, error) {
	candidate, err := s.Find(institutionID, id)
	if err != nil {
		return nil, err
	}

	bio, err := s.ai.GenerateCandidateBio(ctx, candidate.Name, candidate.Skills)
	if err != nil {
		return nil, fmt.Errorf("bio generation: %w", err)
	}

	if err := s.candidates.Update(id, map[string]any{"bio": bio}); err != nil {
		return nil, err
	}
	candidate.Bio = bio
	return candidate, nil
}
