package services

import (
	"sort"
	"time"

	"github.com/educhanakya/campus-api/model"
)

// GroupLineages partitions a flat, institution-scoped project set into
// version lineages. A project is a root when it has no parentId or its
// parentId does not resolve inside the set; descendants are collected
// breadth-first. Every input project lands in exactly one lineage exactly
// once, even when parentId values are dangling or cyclic.
func GroupLineages(projects []model.Project) [][]model.Project {
	byID := make(map[string]bool, len(projects))
	for _, p := range projects {
		byID[p.ID] = true
	}

	visited := make(map[string]bool, len(projects))
	groups := [][]model.Project{}

	collect := func(root model.Project) {
		lineage := []model.Project{root}
		visited[root.ID] = true

		queue := []model.Project{root}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, p := range projects {
				if p.ParentID != curr.ID || visited[p.ID] {
					continue
				}
				visited[p.ID] = true
				lineage = append(lineage, p)
				queue = append(queue, p)
			}
		}

		// Creation order = version order
		sort.SliceStable(lineage, func(i, j int) bool {
			return uploadTime(lineage[i]).Before(uploadTime(lineage[j]))
		})
		groups = append(groups, lineage)
	}

	for _, p := range projects {
		if p.ParentID != "" && byID[p.ParentID] {
			continue // not a root
		}
		if visited[p.ID] {
			continue
		}
		collect(p)
	}

	// A cycle of parent references has no root; sweep up whatever the root
	// pass could not reach so the partition stays total.
	for _, p := range projects {
		if !visited[p.ID] {
			collect(p)
		}
	}

	// Most recently active lineage first
	sort.SliceStable(groups, func(i, j int) bool {
		lastI := uploadTime(groups[i][len(groups[i])-1])
		lastJ := uploadTime(groups[j][len(groups[j])-1])
		return lastJ.Before(lastI)
	})

	return groups
}

func uploadTime(p model.Project) time.Time {
	t, err := time.Parse(time.RFC3339, p.UploadedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
