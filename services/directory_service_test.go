package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
)

func newTestDirectory(t *testing.T) *DirectoryService {
	t.Helper()
	db, err := database.StartBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := database.NewStore(db, database.NewAuditLog())
	return NewDirectoryService(store)
}

func TestRegisterInstitutionIDsNeverCollide(t *testing.T) {
	dir := newTestDirectory(t)

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		inst, err := dir.RegisterInstitution("College", "college.edu")
		if err != nil {
			t.Fatalf("RegisterInstitution failed on round %d: %v", i, err)
		}
		if !strings.HasPrefix(inst.ID, "inst_") || len(inst.ID) != len("inst_")+5 {
			t.Fatalf("unexpected id shape: %s", inst.ID)
		}
		if seen[inst.ID] {
			t.Fatalf("id %s issued twice after %d registrations", inst.ID, i+1)
		}
		seen[inst.ID] = true
	}
}

func TestCreateUserGeneratesRolePrefixedID(t *testing.T) {
	dir := newTestDirectory(t)

	cases := []struct {
		role   string
		prefix string
	}{
		{model.RoleAdmin, "admin_"},
		{model.RoleFaculty, "fac_"},
		{model.RoleStudent, "stu_"},
	}

	for _, tc := range cases {
		user, err := dir.CreateUser(model.UserProfile{
			InstitutionID: "inst_1",
			Name:          "Test " + tc.role,
			Email:         "t@x.com",
			Role:          tc.role,
		})
		if err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", tc.role, err)
		}
		if !strings.HasPrefix(user.ID, tc.prefix) {
			t.Errorf("expected %s id prefix %q, got %s", tc.role, tc.prefix, user.ID)
		}
		if user.Avatar == "" {
			t.Errorf("expected avatar to be derived for %s", tc.role)
		}
	}
}

func TestCreateStudentCreatesCandidateInLockstep(t *testing.T) {
	dir := newTestDirectory(t)

	user, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Aarav Sharma",
		Email:         "aarav@x.com",
		Role:          model.RoleStudent,
		Course:        "B.Tech CS",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	candidates, err := dir.candidates.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll candidates failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.ID != user.ID {
		t.Errorf("candidate id %s does not match user id %s", c.ID, user.ID)
	}
	if c.Role != "B.Tech CS" {
		t.Errorf("candidate role should carry the course, got %q", c.Role)
	}
	if c.Skills == nil || len(c.Skills) != 0 {
		t.Errorf("candidate should start with empty skills, got %v", c.Skills)
	}
}

func TestCreateFacultyHasNoCandidate(t *testing.T) {
	dir := newTestDirectory(t)

	if _, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Prof Gupta",
		Email:         "g@x.com",
		Role:          model.RoleFaculty,
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	candidates, err := dir.candidates.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll candidates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("faculty must not enter the talent pool, got %d candidates", len(candidates))
	}
}

func TestLoginByIDAndCaseInsensitiveName(t *testing.T) {
	dir := newTestDirectory(t)

	if _, err := dir.RegisterInstitution("IIT Bombay", "iitb.ac.in"); err != nil {
		t.Fatalf("RegisterInstitution failed: %v", err)
	}
	user, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Alice",
		Email:         "alice@x.com",
		Role:          model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := dir.Login("inst_1", user.ID)
	if err != nil {
		t.Fatalf("login by id failed: %v", err)
	}
	byName, err := dir.Login("inst_1", "alice")
	if err != nil {
		t.Fatalf("login by lowercase name failed: %v", err)
	}
	if byID.ID != user.ID || byName.ID != user.ID {
		t.Errorf("logins resolved different users: %s vs %s", byID.ID, byName.ID)
	}

	if _, err := dir.Login("inst_1", "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginIsTenantScoped(t *testing.T) {
	dir := newTestDirectory(t)

	if _, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Alice",
		Email:         "alice@x.com",
		Role:          model.RoleStudent,
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := dir.Login("inst_2", "Alice"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("cross-tenant login should fail, got %v", err)
	}
}

func TestAppendSkillsIsSetUnion(t *testing.T) {
	dir := newTestDirectory(t)

	user, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Priya",
		Email:         "p@x.com",
		Role:          model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := dir.AppendSkills(user.ID, []string{"React"}); err != nil {
		t.Fatalf("AppendSkills failed: %v", err)
	}
	if err := dir.AppendSkills(user.ID, []string{"React", "Go"}); err != nil {
		t.Fatalf("AppendSkills failed: %v", err)
	}

	candidates, err := dir.candidates.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll candidates failed: %v", err)
	}
	var skills []string
	for _, c := range candidates {
		if c.ID == user.ID {
			skills = c.Skills
		}
	}
	if len(skills) != 2 || skills[0] != "React" || skills[1] != "Go" {
		t.Errorf("expected [React Go], got %v", skills)
	}
}

func TestAppendSkillsUnknownCandidate(t *testing.T) {
	dir := newTestDirectory(t)
	if err := dir.AppendSkills("missing", []string{"Go"}); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBulkCreateUsersSkipsIncompleteRows(t *testing.T) {
	dir := newTestDirectory(t)

	rows := ParseRoster("Alice,Student,a@x.com,2024,CS,1,111\n" +
		",Student,missing@x.com\n" + // no name
		"NoRole,,x@x.com\n" + // no role
		"Bob,Faculty,b@x.com,Algo;DS,CS Dept,,222")

	result, err := dir.BulkCreateUsers("inst_1", rows)
	if err != nil {
		t.Fatalf("BulkCreateUsers failed: %v", err)
	}

	if result.Submitted != 4 {
		t.Errorf("expected 4 submitted, got %d", result.Submitted)
	}
	if result.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", result.Skipped)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(result.Created))
	}

	alice, bob := result.Created[0], result.Created[1]
	if alice.Batch != "2024" || alice.Course != "CS" || len(alice.Subjects) != 0 {
		t.Errorf("unexpected alice profile: %+v", alice)
	}
	if len(bob.Subjects) != 2 || bob.Subjects[0] != "Algo" || bob.Subjects[1] != "DS" {
		t.Errorf("unexpected bob subjects: %v", bob.Subjects)
	}
}

func TestBulkCreateUsersDerivesMissingEmail(t *testing.T) {
	dir := newTestDirectory(t)

	result, err := dir.BulkCreateUsers("inst_1", []RosterRow{
		{Name: "Rahul Kumar Verma", Role: model.RoleStudent},
	})
	if err != nil {
		t.Fatalf("BulkCreateUsers failed: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected 1 created, got %d", len(result.Created))
	}
	if got := result.Created[0].Email; got != "rahul.kumar.verma@inst.edu" {
		t.Errorf("expected derived email, got %q", got)
	}
}

func TestDeleteUserRemovesCandidate(t *testing.T) {
	dir := newTestDirectory(t)

	user, err := dir.CreateUser(model.UserProfile{
		InstitutionID: "inst_1",
		Name:          "Aarav",
		Email:         "a@x.com",
		Role:          model.RoleStudent,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := dir.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := dir.FindUser(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("user still resolvable after delete: %v", err)
	}
	candidates, err := dir.candidates.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll candidates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidate should be removed with the user, got %d", len(candidates))
	}
}
