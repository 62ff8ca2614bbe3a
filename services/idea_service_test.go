package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/services/gemini"
)

func newTestIdeas(t *testing.T) (*IdeaService, *database.Store) {
	t.Helper()
	db, err := database.StartBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store := database.NewStore(db, database.NewAuditLog())
	// Unconfigured client: Create falls back to empty skills/roles
	return NewIdeaService(store, gemini.NewClient(gemini.Config{})), store
}

func TestCreateIdeaDefaults(t *testing.T) {
	svc, _ := newTestIdeas(t)

	idea, err := svc.Create(context.Background(), CreateInput{
		InstitutionID: "inst_1",
		Description:   "Build a drone swarm for campus deliveries",
		AuthorID:      "stu_1000",
		AuthorName:    "Aarav",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if idea.Title != "New Project Idea" {
		t.Errorf("expected default title, got %q", idea.Title)
	}
	if idea.Status != model.IdeaOpen {
		t.Errorf("expected Open status, got %q", idea.Status)
	}
	if len(idea.Team) != 1 || idea.Team[0] != "stu_1000" {
		t.Errorf("author must be first team member, got %v", idea.Team)
	}
	if len(idea.Applicants) != 0 {
		t.Errorf("new idea must have no applicants, got %v", idea.Applicants)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	svc, _ := newTestIdeas(t)

	idea, err := svc.Create(context.Background(), CreateInput{
		InstitutionID: "inst_1",
		Description:   "AI tutor for first-year math",
		AuthorID:      "stu_1000",
		AuthorName:    "Aarav",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Apply(idea.ID, "stu_2000"); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}

	got, err := svc.Find(idea.ID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got.Applicants) != 1 {
		t.Errorf("applying twice must not duplicate, got %v", got.Applicants)
	}

	// Team members cannot re-enter the applicant list
	if _, err := svc.Apply(idea.ID, "stu_1000"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	got, _ = svc.Find(idea.ID)
	if len(got.Applicants) != 1 {
		t.Errorf("author must not become an applicant, got %v", got.Applicants)
	}
}

func TestApproveMovesApplicantToTeam(t *testing.T) {
	svc, store := newTestIdeas(t)

	idea, err := svc.Create(context.Background(), CreateInput{
		InstitutionID: "inst_1",
		Description:   "Solar-powered vending machines",
		AuthorID:      "stu_1000",
		AuthorName:    "Aarav",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Apply(idea.ID, "stu_2000"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := svc.Approve(idea.ID, "stu_2000", "Priya")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if len(got.Applicants) != 0 {
		t.Errorf("approved applicant still listed: %v", got.Applicants)
	}
	if len(got.Team) != 2 || got.Team[1] != "stu_2000" {
		t.Errorf("expected team [stu_1000 stu_2000], got %v", got.Team)
	}

	// Approval announces itself in the team chat
	messages, err := store.ReadAll(database.Messages)
	if err != nil {
		t.Fatalf("ReadAll messages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 system message, got %d", len(messages))
	}
	if !strings.Contains(string(messages[0]), "Priya has joined the team!") {
		t.Errorf("unexpected join notice: %s", messages[0])
	}
}

func TestApproveRequiresPendingApplication(t *testing.T) {
	svc, _ := newTestIdeas(t)

	idea, err := svc.Create(context.Background(), CreateInput{
		InstitutionID: "inst_1",
		Description:   "Peer mentoring marketplace idea",
		AuthorID:      "stu_1000",
		AuthorName:    "Aarav",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Approve(idea.ID, "stu_9999", "Ghost"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-applicant, got %v", err)
	}
}
