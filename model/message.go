package model

// SystemSender is the sentinel sender id for automated notices
// (project ingestion announcements, team-join messages).
const SystemSender = "system"

// Message is one chat message in a project or idea chatroom. Append-only.
type Message struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institutionId"`
	ProjectID     string `json:"projectId"` // project OR idea id
	SenderID      string `json:"senderId"`
	SenderName    string `json:"senderName"`
	Text          string `json:"text"`
	Timestamp     string `json:"timestamp"`
}

// Resource is a faculty-posted note on the notes board. Append-only.
type Resource struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institutionId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link,omitempty"`
	AuthorName    string `json:"authorName"`
	PostedAt      string `json:"postedAt"`
}
