// Package reconcile flattens a resolved dependency graph into the final
// conflict-free artifact set: one winning version per (groupId,
// artifactId), chosen by "newest wins globally" with first-seen BFS order
// breaking ties, per spec §4.7.
package reconcile

import (
	"depresolve/internal/mavenversion"
	"depresolve/internal/model"
)

// Reconcile walks the already-resolved graph reachable from roots
// breadth-first and returns one artifact per distinct (groupId,
// artifactId), keeping the highest version seen. When two occurrences
// carry equal versions, the one encountered first in BFS order wins,
// unless it was never resolved (nil Dependencies) and a later one was,
// matching spec §8's "GA uniqueness" and "newest wins" properties.
func Reconcile(roots []*model.Artifact) []*model.Artifact {
	winners := map[model.Coordinate]*model.Artifact{}
	order := []model.Coordinate{}

	// seen maps an identity to the pointer already expanded for it. Two
	// distinct *model.Artifact pointers can share an identity when the
	// same GA+version is reached through separate parents (a diamond);
	// whichever pointer the walker actually resolved (Dependencies !=
	// nil) must win so its transitive subtree isn't dropped.
	seen := map[string]*model.Artifact{}
	queue := append([]*model.Artifact{}, roots...)

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		id := a.Identity()
		if prior, ok := seen[id]; ok {
			if !(prior.Dependencies == nil && a.Dependencies != nil) {
				continue
			}
			// The previously-seen pointer for this identity was never
			// resolved while this one was: supersede it.
		}
		seen[id] = a

		ga := a.GA()
		if existing, ok := winners[ga]; ok {
			switch {
			case mavenversion.IsHigherThan(a.Version, existing.Version):
				winners[ga] = a
			case existing.Version == a.Version && existing.Dependencies == nil && a.Dependencies != nil:
				winners[ga] = a
			}
		} else {
			winners[ga] = a
			order = append(order, ga)
		}

		queue = append(queue, a.Dependencies...)
	}

	out := make([]*model.Artifact, 0, len(order))
	for _, ga := range order {
		out = append(out, winners[ga])
	}
	return out
}
