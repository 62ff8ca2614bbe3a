package model

// Project statuses
const (
	ProjectPending    = "Pending"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
)

// Project represents one uploaded iteration of a student project.
// ParentID links an iteration to the version it was built on; projects with
// no parent (or a parent that no longer resolves) are lineage roots.
type Project struct {
	ID            string   `json:"id"`
	InstitutionID string   `json:"institutionId"`
	ParentID      string   `json:"parentId,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Complexity    int      `json:"complexity"` // 0-100
	Tags          []string `json:"tags"`
	Filename      string   `json:"filename"`
	SizeBytes     int64    `json:"sizeBytes"`
	UploadedAt    string   `json:"uploadedAt"` // RFC 3339
	AuthorID      string   `json:"authorId"`
	AuthorName    string   `json:"authorName"`
	Status        string   `json:"status"`

	Critique          *ProjectCritique `json:"critique,omitempty"`
	HandoverNote      string           `json:"handoverNote,omitempty"` // Faculty note for the next iteration
	RecommendedPathID string           `json:"recommendedPathId,omitempty"`
	AssignedFacultyID string           `json:"assignedFacultyId,omitempty"`
	SharedResources   []string         `json:"sharedResources,omitempty"` // Links to external folders/drives
}

// ProjectCritique is the AI-generated deep review of a project.
type ProjectCritique struct {
	Summary                string                  `json:"summary"`
	Weaknesses             []string                `json:"weaknesses"`
	NextSteps              string                  `json:"nextSteps"`
	RefactoringSuggestions []RefactoringSuggestion `json:"refactoringSuggestions"`
	RevisedComplexity      int                     `json:"revisedComplexity"`
}

// RefactoringSuggestion is one concrete fix proposed by the critique.
type RefactoringSuggestion struct {
	File          string `json:"file"`
	Issue         string `json:"issue"`
	SuggestedCode string `json:"suggestedCode"`
}
