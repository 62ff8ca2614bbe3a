package services

import (
	"strings"

	"github.com/educhanakya/campus-api/model"
)

// RosterRow is one parsed line of a bulk-import roster
type RosterRow struct {
	Name        string
	Role        string
	Email       string
	Batch       string
	Course      string
	Year        string
	PhoneNumber string
	Subjects    []string
}

// ParseRoster parses a comma-delimited roster blob into partial profiles.
// Expected columns: Name, Role, Email, Batch|Subjects, Course/Dept, Year, Phone.
// Column 4 is role-dependent: Faculty rows carry a semicolon-separated
// subject list, Student rows carry the batch. Rows are never rejected here;
// rows missing name or role are skipped later by BulkCreateUsers.
func ParseRoster(text string) []RosterRow {
	rows := []RosterRow{}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, ",")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		row := RosterRow{
			Name:        col(cols, 0),
			Role:        normalizeRole(col(cols, 1)),
			Email:       col(cols, 2),
			Course:      col(cols, 4),
			Year:        col(cols, 5),
			PhoneNumber: col(cols, 6),
		}

		if row.Role == model.RoleFaculty {
			row.Subjects = splitSubjects(col(cols, 3))
		} else {
			row.Batch = col(cols, 3)
		}

		rows = append(rows, row)
	}

	return rows
}

// normalizeRole fuzzy-matches free-text roles; anything unrecognized
// defaults to Student
func normalizeRole(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "admin"):
		return model.RoleAdmin
	case strings.Contains(lower, "fac"), strings.Contains(lower, "teach"):
		return model.RoleFaculty
	case raw == "":
		return ""
	}
	return model.RoleStudent
}

func splitSubjects(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func col(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}
