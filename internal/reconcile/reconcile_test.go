package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depresolve/internal/model"
)

func leaf(groupID, artifactID, version string) *model.Artifact {
	a := model.NewArtifact(groupID, artifactID, model.WithVersion(version))
	a.Dependencies = []*model.Artifact{}
	return a
}

func TestNewestWinsAcrossBranches(t *testing.T) {
	// root -> a -> lib@1.0
	// root -> b -> lib@2.0
	libOld := leaf("g", "lib", "1.0")
	libNew := leaf("g", "lib", "2.0")

	a := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	a.Dependencies = []*model.Artifact{libOld}
	b := model.NewArtifact("g", "b", model.WithVersion("1.0"))
	b.Dependencies = []*model.Artifact{libNew}

	winners := Reconcile([]*model.Artifact{a, b})

	var gotLib *model.Artifact
	for _, w := range winners {
		if w.ArtifactID == "lib" {
			gotLib = w
		}
	}
	require.NotNil(t, gotLib, "expected g:lib to be present in the reconciled set")
	assert.Equal(t, "2.0", gotLib.Version, "expected newest-wins to select version 2.0")
}

func TestGAUniqueness(t *testing.T) {
	lib1 := leaf("g", "lib", "1.0")
	lib2 := leaf("g", "lib", "1.0")

	a := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	a.Dependencies = []*model.Artifact{lib1}
	b := model.NewArtifact("g", "b", model.WithVersion("1.0"))
	b.Dependencies = []*model.Artifact{lib2}

	winners := Reconcile([]*model.Artifact{a, b})

	count := 0
	for _, w := range winners {
		if w.GA() == (model.Coordinate{GroupID: "g", ArtifactID: "lib"}) {
			count++
		}
	}
	assert.Equal(t, 1, count, "expected exactly one winner per GA")
}

func TestFirstSeenBreaksTies(t *testing.T) {
	first := leaf("g", "lib", "1.0")
	second := leaf("g", "lib", "1.0")

	a := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	a.Dependencies = []*model.Artifact{first}
	b := model.NewArtifact("g", "b", model.WithVersion("1.0"))
	b.Dependencies = []*model.Artifact{second}

	winners := Reconcile([]*model.Artifact{a, b})

	for _, w := range winners {
		if w.ArtifactID == "lib" {
			assert.Same(t, first, w, "expected the first-seen occurrence to win the tie")
		}
	}
}

// TestUnresolvedDuplicatePointerDoesNotShadowResolvedOne reproduces a
// diamond where the BFS order would otherwise pick the unresolved sibling
// pointer as the GA winner, discarding the resolved sibling's grandchild
// subtree entirely.
func TestUnresolvedDuplicatePointerDoesNotShadowResolvedOne(t *testing.T) {
	grandchild := leaf("g", "grandchild", "1.0")

	libResolved := model.NewArtifact("g", "lib", model.WithVersion("1.0"))
	libResolved.Dependencies = []*model.Artifact{grandchild}

	libUnresolved := model.NewArtifact("g", "lib", model.WithVersion("1.0"))
	// Dependencies left nil: this pointer was never independently fetched.

	a := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	a.Dependencies = []*model.Artifact{libUnresolved}
	b := model.NewArtifact("g", "b", model.WithVersion("1.0"))
	b.Dependencies = []*model.Artifact{libResolved}

	winners := Reconcile([]*model.Artifact{a, b})

	var gotLib *model.Artifact
	for _, w := range winners {
		if w.ArtifactID == "lib" {
			gotLib = w
		}
	}
	require.NotNil(t, gotLib)
	assert.Same(t, libResolved, gotLib, "expected the resolved pointer to win over the unresolved duplicate")

	var gotGrandchild bool
	for _, w := range winners {
		if w.ArtifactID == "grandchild" {
			gotGrandchild = true
		}
	}
	assert.True(t, gotGrandchild, "expected lib's grandchild to survive reconciliation")
}
