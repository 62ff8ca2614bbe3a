package model

// Idea statuses
const (
	IdeaOpen       = "Open"
	IdeaClosed     = "Closed"
	IdeaInProgress = "In Progress"
)

// Idea is a team-formation post on the ideation board. A user id appears in
// at most one of Applicants/Team; approval moves it from Applicants to Team
// and there is no removal path once approved.
type Idea struct {
	ID             string   `json:"id"`
	InstitutionID  string   `json:"institutionId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	OpenRoles      []string `json:"openRoles"`
	Applicants     []string `json:"applicants"` // User IDs
	Team           []string `json:"team"`       // User IDs of accepted members
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	AuthorID       string   `json:"authorId"`
	AuthorName     string   `json:"authorName"`
}
