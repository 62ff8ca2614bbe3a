package services

import (
	"context"
	"fmt"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services/gemini"
)

// LearningService generates and lists AI curricula
type LearningService struct {
	ai    *gemini.Client
	paths database.Collection[model.LearningPath]
}

// NewLearningService creates a new learning service
func NewLearningService(store *database.Store, ai *gemini.Client) *LearningService {
	return &LearningService{
		ai:    ai,
		paths: database.NewCollection[model.LearningPath](store, database.Learning),
	}
}

// Generate asks the AI for a curriculum and persists it. Nothing is written
// when generation fails. An empty institutionID makes the path global.
func (s *LearningService) Generate(ctx context.Context, goal, author, institutionID string) (*model.LearningPath, error) {
	steps, err := s.ai.GenerateCurriculum(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("curriculum generation: %w", err)
	}

	path := model.LearningPath{
		InstitutionID: institutionID,
		Goal:          goal,
		Author:        author,
		Steps:         steps,
	}

	id, err := s.paths.Add(path)
	if err != nil {
		return nil, err
	}
	path.ID = id
	return &path, nil
}

// List returns the institution's paths plus global paths (no institutionId)
func (s *LearningService) List(institutionID string) ([]model.LearningPath, error) {
	paths, err := s.paths.ReadAll()
	if err != nil {
		return nil, err
	}
	visible := []model.LearningPath{}
	for _, p := range paths {
		if p.InstitutionID == "" || p.InstitutionID == institutionID {
			visible = append(visible, p)
		}
	}
	return visible, nil
}
