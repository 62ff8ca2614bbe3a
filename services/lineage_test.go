package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/educhanakya/campus-api/model"
)

func proj(id, parentID string, uploadedAt time.Time) model.Project {
	return model.Project{
		ID:         id,
		ParentID:   parentID,
		Title:      "Project " + id,
		UploadedAt: uploadedAt.Format(time.RFC3339),
	}
}

func lineageIDs(groups [][]model.Project) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, p := range g {
			out[i] = append(out[i], p.ID)
		}
	}
	return out
}

func TestGroupLineagesChainsVersions(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	projects := []model.Project{
		proj("v3", "v2", base.Add(2*time.Hour)),
		proj("v1", "", base),
		proj("v2", "v1", base.Add(time.Hour)),
		proj("solo", "", base.Add(30*time.Minute)),
	}

	groups := GroupLineages(projects)
	if len(groups) != 2 {
		t.Fatalf("expected 2 lineages, got %d: %v", len(groups), lineageIDs(groups))
	}

	// Lineage with the most recent member comes first
	chain := groups[0]
	if len(chain) != 3 {
		t.Fatalf("expected chain of 3, got %v", lineageIDs(groups))
	}
	for i, want := range []string{"v1", "v2", "v3"} {
		if chain[i].ID != want {
			t.Errorf("chain position %d: expected %s, got %s", i, want, chain[i].ID)
		}
	}
	if groups[1][0].ID != "solo" {
		t.Errorf("expected solo lineage second, got %v", lineageIDs(groups))
	}
}

func TestGroupLineagesDanglingParentIsRoot(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	projects := []model.Project{
		proj("orphan", "deleted-parent", base),
		proj("child", "orphan", base.Add(time.Hour)),
	}

	groups := GroupLineages(projects)
	if len(groups) != 1 {
		t.Fatalf("expected 1 lineage, got %v", lineageIDs(groups))
	}
	if groups[0][0].ID != "orphan" || groups[0][1].ID != "child" {
		t.Errorf("unexpected lineage: %v", lineageIDs(groups))
	}
}

func TestGroupLineagesPartitionIsTotal(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Mixed set: normal chain, dangling parent, and a pure parent cycle
	projects := []model.Project{
		proj("a1", "", base),
		proj("a2", "a1", base.Add(time.Minute)),
		proj("dangling", "gone", base.Add(2*time.Minute)),
		proj("cycleA", "cycleB", base.Add(3*time.Minute)),
		proj("cycleB", "cycleA", base.Add(4*time.Minute)),
	}

	groups := GroupLineages(projects)

	seen := map[string]int{}
	for _, g := range groups {
		for _, p := range g {
			seen[p.ID]++
		}
	}
	for _, p := range projects {
		if seen[p.ID] != 1 {
			t.Errorf("project %s appears %d times in partition", p.ID, seen[p.ID])
		}
	}
	if total := len(seen); total != len(projects) {
		t.Errorf("partition covers %d of %d projects", total, len(projects))
	}
}

func TestGroupLineagesOrdersByNewestMember(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	var projects []model.Project
	// Three singleton lineages with increasing upload times
	for i := 0; i < 3; i++ {
		projects = append(projects, proj(fmt.Sprintf("p%d", i), "", base.Add(time.Duration(i)*time.Hour)))
	}

	groups := GroupLineages(projects)
	if len(groups) != 3 {
		t.Fatalf("expected 3 lineages, got %d", len(groups))
	}
	for i, want := range []string{"p2", "p1", "p0"} {
		if groups[i][0].ID != want {
			t.Errorf("group %d: expected %s, got %s", i, want, groups[i][0].ID)
		}
	}
}

func TestGroupLineagesEmptyInput(t *testing.T) {
	groups := GroupLineages(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no lineages, got %d", len(groups))
	}
}
