package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
)

// ErrUserNotFound is returned by Login when no user in the institution
// matches the given id or name.
var ErrUserNotFound = errors.New("user not found")

// DirectoryService handles institution and user lifecycle plus login
// resolution. Login is a trust-the-client id/name lookup with no credential
// check; this is a documented weakness of the platform, not to be hardened.
type DirectoryService struct {
	store        *database.Store
	institutions database.Collection[model.Institution]
	users        database.Collection[model.UserProfile]
	candidates   database.Collection[model.Candidate]
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store *database.Store) *DirectoryService {
	return &DirectoryService{
		store:        store,
		institutions: database.NewCollection[model.Institution](store, database.Institutions),
		users:        database.NewCollection[model.UserProfile](store, database.Users),
		candidates:   database.NewCollection[model.Candidate](store, database.Candidates),
	}
}

// Institutions returns all registered institutions
func (s *DirectoryService) Institutions() ([]model.Institution, error) {
	s.store.Audit().Log("API", "Fetched Institution list")
	return s.institutions.ReadAll()
}

// RegisterInstitution creates and persists a new tenant. The id anchors
// every other record's tenant scope, so it is drawn from a 36^5 space and
// checked against the existing tenants before persisting.
func (s *DirectoryService) RegisterInstitution(name, domain string) (*model.Institution, error) {
	existing, err := s.institutions.ReadAll()
	if err != nil {
		return nil, err
	}
	used := make(map[string]bool, len(existing))
	for _, i := range existing {
		used[i.ID] = true
	}

	id := newInstitutionID()
	for used[id] {
		id = newInstitutionID()
	}

	inst := model.Institution{
		ID:     id,
		Name:   name,
		Domain: domain,
	}
	if _, err := s.institutions.Add(inst); err != nil {
		return nil, err
	}
	s.store.Audit().Log("AUTH", fmt.Sprintf("Registered new institution: %s", name))
	return &inst, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newInstitutionID returns "inst_" plus five base36 characters
func newInstitutionID() string {
	b := make([]byte, 5)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return "inst_" + string(b)
}

// CreateUser generates a short role-prefixed id that doubles as the login
// credential, derives the avatar from the name, and for Students creates the
// companion Candidate record with the same id.
func (s *DirectoryService) CreateUser(user model.UserProfile) (*model.UserProfile, error) {
	prefix := "stu"
	switch user.Role {
	case model.RoleAdmin:
		prefix = "admin"
	case model.RoleFaculty:
		prefix = "fac"
	}

	user.ID = fmt.Sprintf("%s_%d", prefix, rand.IntN(9000)+1000)
	user.Avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(user.Name)

	if _, err := s.users.Add(user); err != nil {
		return nil, err
	}

	if user.Role == model.RoleStudent {
		candidateRole := user.Course
		if candidateRole == "" {
			candidateRole = "Student"
		}
		candidate := model.Candidate{
			ID:            user.ID,
			InstitutionID: user.InstitutionID,
			Name:          user.Name,
			Role:          candidateRole,
			Skills:        []string{},
		}
		if _, err := s.candidates.Add(candidate); err != nil {
			// Keep user+candidate creation atomic from the caller's view
			if rmErr := s.users.Remove(user.ID); rmErr != nil {
				log.Printf("[Directory] Failed to roll back user %s: %v", user.ID, rmErr)
			}
			return nil, err
		}
	}

	s.store.Audit().Log("AUTH", fmt.Sprintf("Created new user: %s (ID: %s)", user.Name, user.ID))
	return &user, nil
}

// BulkResult reports the outcome of a roster import. Created may be shorter
// than Submitted; callers must surface partial success distinctly from
// total failure.
type BulkResult struct {
	Created   []model.UserProfile `json:"created"`
	Submitted int                 `json:"submitted"`
	Skipped   int                 `json:"skipped"`
}

// BulkCreateUsers creates users from parsed roster rows. Rows lacking name
// or role are skipped; a failing row is logged and does not abort the batch.
func (s *DirectoryService) BulkCreateUsers(institutionID string, rows []RosterRow) (*BulkResult, error) {
	result := &BulkResult{Submitted: len(rows)}

	for i, row := range rows {
		if row.Name == "" || row.Role == "" {
			result.Skipped++
			continue
		}

		email := row.Email
		if email == "" {
			email = strings.ToLower(strings.ReplaceAll(row.Name, " ", ".")) + "@inst.edu"
		}

		user, err := s.CreateUser(model.UserProfile{
			InstitutionID: institutionID,
			Name:          row.Name,
			Email:         email,
			Role:          row.Role,
			Batch:         row.Batch,
			Course:        row.Course,
			Year:          row.Year,
			PhoneNumber:   row.PhoneNumber,
			Subjects:      row.Subjects,
		})
		if err != nil {
			log.Printf("[Directory] Bulk import row %d (%s) failed: %v", i+1, row.Name, err)
			result.Skipped++
			continue
		}
		result.Created = append(result.Created, *user)
	}

	return result, nil
}

// Login resolves a user by id OR name (both case-insensitive), scoped to the
// institution. Names are not unique; first match wins. Both outcomes are
// audited.
func (s *DirectoryService) Login(institutionID, loginIDOrName string) (*model.UserProfile, error) {
	s.store.Audit().Log("AUTH", fmt.Sprintf("Login attempt: %s @ %s", loginIDOrName, institutionID))

	users, err := s.users.ReadAll()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.InstitutionID != institutionID {
			continue
		}
		if strings.EqualFold(u.ID, loginIDOrName) || strings.EqualFold(u.Name, loginIDOrName) {
			s.store.Audit().Log("AUTH", fmt.Sprintf("Login SUCCESS: %s (%s)", u.Name, u.Role))
			return &u, nil
		}
	}

	s.store.Audit().Log("AUTH", "Login FAILED: User not found")
	return nil, ErrUserNotFound
}

// GetUsersByInstitution lists all users of one institution
func (s *DirectoryService) GetUsersByInstitution(institutionID string) ([]model.UserProfile, error) {
	users, err := s.users.ReadAll()
	if err != nil {
		return nil, err
	}
	scoped := []model.UserProfile{}
	for _, u := range users {
		if u.InstitutionID == institutionID {
			scoped = append(scoped, u)
		}
	}
	return scoped, nil
}

// FindUser looks up a user profile by id
func (s *DirectoryService) FindUser(userID string) (*model.UserProfile, error) {
	users, err := s.users.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// DeleteUser removes a user and, if present, its companion Candidate
func (s *DirectoryService) DeleteUser(userID string) error {
	if err := s.users.Remove(userID); err != nil {
		return err
	}
	if err := s.candidates.Remove(userID); err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	return nil
}

// AppendSkills unions tags into the candidate's skills (set semantics).
// Candidates keep their existing skill order; new tags append in input order.
func (s *DirectoryService) AppendSkills(userID string, tags []string) error {
	candidates, err := s.candidates.ReadAll()
	if err != nil {
		return err
	}

	for _, c := range candidates {
		if c.ID != userID {
			continue
		}
		seen := make(map[string]bool, len(c.Skills))
		merged := append([]string{}, c.Skills...)
		for _, skill := range c.Skills {
			seen[skill] = true
		}
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				merged = append(merged, tag)
			}
		}
		return s.candidates.Update(c.ID, map[string]any{"skills": merged})
	}

	return fmt.Errorf("append skills (ID: %s): %w", userID, database.ErrNotFound)
}
