package naming

import "sort"

// Collision reports an output path claimed by more than one target.
type Collision struct {
	Path    string
	Targets []Target
}

// FindCollisions returns every candidate output shared by two or more targets,
// sorted by path. Targets that share an input path are still reported since
// the second conversion would overwrite the first.
func FindCollisions(layout Layout, targets []Target) []Collision {
	owners := make(map[string][]Target)
	for _, target := range targets {
		for _, path := range layout.Candidates(target) {
			owners[path] = append(owners[path], target)
		}
	}
	var collisions []Collision
	for path, claimed := range owners {
		if len(claimed) > 1 {
			collisions = append(collisions, Collision{Path: path, Targets: claimed})
		}
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].Path < collisions[j].Path })
	return collisions
}
