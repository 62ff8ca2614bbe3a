package model

// User roles
const (
	RoleAdmin   = "Admin"
	RoleFaculty = "Faculty"
	RoleStudent = "Student"
)

// UserProfile represents a registered user in the system.
// The ID doubles as the login credential, so it is generated short and
// role-prefixed (e.g. stu_4821) for easier manual handout.
type UserProfile struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institutionId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"` // Admin, Faculty, Student
	Avatar        string `json:"avatar"`

	// Academic details
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Batch       string   `json:"batch,omitempty"`  // e.g. 2024-2028
	Course      string   `json:"course,omitempty"` // e.g. B.Tech CS
	Year        string   `json:"year,omitempty"`   // e.g. 2nd Year
	Subjects    []string `json:"subjects,omitempty"` // For Faculty: subjects taught
}

// Candidate is the talent-pool projection of a Student user. It shares the
// user's ID and is created in lockstep when a Student profile is created.
type Candidate struct {
	ID            string   `json:"id"`
	InstitutionID string   `json:"institutionId"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Skills        []string `json:"skills"`
	ProjectCount  int      `json:"projectCount"`
	AvgScore      int      `json:"avgScore"`
	Bio           string   `json:"bio,omitempty"`
}
