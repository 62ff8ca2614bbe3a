package model

// LearningPath is an AI-generated curriculum. An empty InstitutionID means
// the path is global and visible across all tenants.
type LearningPath struct {
	ID            string             `json:"id"`
	InstitutionID string             `json:"institutionId,omitempty"`
	Goal          string             `json:"goal"`
	Author        string             `json:"author,omitempty"`
	Steps         []LearningPathStep `json:"steps"`
}

// LearningPathStep is one step of a curriculum.
type LearningPathStep struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	EstimatedHours int    `json:"estimatedHours"`
}
