package database

import (
	"fmt"
	"log"
	"time"

	"github.com/educhanakya/campus-api/model"
)

// Seeder populates empty collections with the demo campus so a fresh
// install is usable immediately. Collections that already hold records are
// left alone, so reseeding on every boot is safe.
type Seeder struct {
	store *Store
}

// NewSeeder creates a new seeder instance
func NewSeeder(store *Store) *Seeder {
	return &Seeder{store: store}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Seeding demo campus...")

	if err := s.seed(Institutions, seedInstitutions()); err != nil {
		return fmt.Errorf("failed to seed institutions: %w", err)
	}
	if err := s.seed(Users, seedUsers()); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seed(Candidates, seedCandidates()); err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}
	if err := s.seed(Ideas, seedIdeas()); err != nil {
		return fmt.Errorf("failed to seed ideas: %w", err)
	}
	if err := s.seed(Resources, seedResources()); err != nil {
		return fmt.Errorf("failed to seed resources: %w", err)
	}

	s.store.Audit().Log("DB", "Seed data integrity check complete")
	log.Println("✅ Seeding completed successfully!")
	return nil
}

// seed writes records only if the collection is missing or empty
func (s *Seeder) seed(collection string, records any) error {
	current, err := s.store.ReadAll(collection)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		log.Printf("⏭️  Collection %s already has records, skipping...", collection)
		return nil
	}

	if err := s.store.WriteAll(collection, records); err != nil {
		return err
	}

	count := recordCount(records)
	s.store.Audit().Log("DB", fmt.Sprintf("Seeded collection %s with %d records", collection, count))
	return nil
}

func recordCount(records any) int {
	switch v := records.(type) {
	case []model.Institution:
		return len(v)
	case []model.UserProfile:
		return len(v)
	case []model.Candidate:
		return len(v)
	case []model.Idea:
		return len(v)
	case []model.Resource:
		return len(v)
	}
	return 0
}

func seedInstitutions() []model.Institution {
	return []model.Institution{
		{ID: "inst_1", Name: "Indian Institute of Technology, Bombay (Virtual)", Domain: "iitb.ac.in"},
	}
}

func seedUsers() []model.UserProfile {
	return []model.UserProfile{
		{
			ID:            "u_admin",
			InstitutionID: "inst_1",
			Name:          "Dr. R. K. Director",
			Email:         "director@iitb.ac.in",
			Role:          model.RoleAdmin,
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=Director",
			PhoneNumber:   "+91-9876543210",
		},
		{
			ID:            "u1",
			InstitutionID: "inst_1",
			Name:          "Aarav Patel",
			Email:         "aarav@iitb.ac.in",
			Role:          model.RoleStudent,
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=Aarav",
			Batch:         "2022-2026",
			Course:        "B.Tech CS",
			Year:          "3rd Year",
			PhoneNumber:   "+91-9988776655",
		},
		{
			ID:            "u2",
			InstitutionID: "inst_1",
			Name:          "Dr. S. Gupta",
			Email:         "gupta@iitb.ac.in",
			Role:          model.RoleFaculty,
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=Gupta",
			PhoneNumber:   "+91-8877665544",
			Subjects:      []string{"Data Structures", "Algorithms"},
		},
		{
			ID:            "u3",
			InstitutionID: "inst_1",
			Name:          "Priya Singh",
			Email:         "priya@iitb.ac.in",
			Role:          model.RoleStudent,
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=Priya",
			Batch:         "2023-2027",
			Course:        "B.Tech IT",
			Year:          "2nd Year",
			PhoneNumber:   "+91-7766554433",
		},
	}
}

func seedCandidates() []model.Candidate {
	return []model.Candidate{
		{ID: "u1", InstitutionID: "inst_1", Name: "Aarav Patel", Role: "Frontend Dev", Skills: []string{"React", "TypeScript"}, ProjectCount: 5, AvgScore: 88},
		{ID: "u3", InstitutionID: "inst_1", Name: "Priya Singh", Role: "Data Scientist", Skills: []string{"Python", "TensorFlow"}, ProjectCount: 3, AvgScore: 92},
	}
}

func seedIdeas() []model.Idea {
	return []model.Idea{
		{
			ID:             "idea_1",
			InstitutionID:  "inst_1",
			Title:          "Campus Food Delivery Drone",
			Description:    "Autonomous drones to deliver food from canteen to hostels.",
			RequiredSkills: []string{"Robotics", "Python", "Computer Vision"},
			OpenRoles:      []string{"Drone Pilot", "AI Engineer"},
			Applicants:     []string{"u3"},
			Team:           []string{"u1"},
			Status:         model.IdeaOpen,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339),
			AuthorID:       "u1",
			AuthorName:     "Aarav Patel",
		},
	}
}

func seedResources() []model.Resource {
	return []model.Resource{
		{
			ID:            "res_1",
			InstitutionID: "inst_1",
			Title:         "Advanced Algorithms Lecture Notes",
			Description:   "PDF notes for Graph Theory and Dynamic Programming.",
			AuthorName:    "Dr. S. Gupta",
			PostedAt:      time.Now().UTC().Format(time.RFC3339),
		},
	}
}
