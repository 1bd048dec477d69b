package walker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depresolve/internal/cache"
	"depresolve/internal/events"
	"depresolve/internal/model"
	"depresolve/internal/pom"
	"depresolve/internal/registry"
)

func newWalkServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestWalker(t *testing.T, routes map[string]string, sink events.Sink) (*Walker, *httptest.Server) {
	srv := newWalkServer(t, routes)
	reg := registry.New(http.DefaultClient, &model.Repository{Name: "test", BaseURL: srv.URL})
	resolver := pom.NewResolver(http.DefaultClient, reg)
	return New(resolver, cache.New(), sink, 4), srv
}

// TestCycleTerminates reproduces a direct A -> B -> A cycle; the walk must
// terminate and flag the cycle rather than recursing forever.
func TestCycleTerminates(t *testing.T) {
	aXML := `<project>
  <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>b</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	bXML := `<project>
  <groupId>g</groupId><artifactId>b</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>a</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`

	sink := events.NewCountingSink()
	w, _ := newTestWalker(t, map[string]string{
		"/g/a/1.0/a-1.0.pom": aXML,
		"/g/b/1.0/b-1.0.pom": bXML,
	}, sink)

	root := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	require.NoError(t, w.Walk(context.Background(), []*model.Artifact{root}))

	assert.Greater(t, sink.Cycles, 0, "expected at least one cycle to be detected")
	assert.NotNil(t, root.Dependencies, "expected root dependencies to be resolved")
}

// TestNewestWins exercises two direct dependencies pulling different
// versions of the same (groupId, artifactId); the cache must retain the
// higher version as the published winner.
func TestNewestWins(t *testing.T) {
	libOldXML := `<project>
  <groupId>g</groupId><artifactId>lib</artifactId><version>1.0</version>
</project>`
	libNewXML := `<project>
  <groupId>g</groupId><artifactId>lib</artifactId><version>2.0</version>
</project>`

	sink := events.NewCountingSink()
	w, _ := newTestWalker(t, map[string]string{
		"/g/lib/1.0/lib-1.0.pom": libOldXML,
		"/g/lib/2.0/lib-2.0.pom": libNewXML,
	}, sink)

	older := model.NewArtifact("g", "lib", model.WithVersion("1.0"))
	newer := model.NewArtifact("g", "lib", model.WithVersion("2.0"))

	require.NoError(t, w.Walk(context.Background(), []*model.Artifact{older, newer}))

	entry, ok := w.cache.Get(model.Coordinate{GroupID: "g", ArtifactID: "lib"})
	require.True(t, ok, "expected a published cache entry for g:lib")
	assert.Equal(t, "2.0", entry.Winner.Version, "expected newest-wins to publish version 2.0")
}

// TestExclusionPropagation checks that an exclusion declared on a direct
// dependency removes the excluded GA from that dependency's children and
// that the excluded GA is never resolved.
func TestExclusionPropagation(t *testing.T) {
	appXML := `<project>
  <groupId>g</groupId><artifactId>mid</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>leaf</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	leafXML := `<project>
  <groupId>g</groupId><artifactId>leaf</artifactId><version>1.0</version>
</project>`

	sink := events.NewCountingSink()
	w, _ := newTestWalker(t, map[string]string{
		"/g/mid/1.0/mid-1.0.pom":   appXML,
		"/g/leaf/1.0/leaf-1.0.pom": leafXML,
	}, sink)

	root := model.NewArtifact("g", "mid", model.WithVersion("1.0"), model.WithExclusions([]model.Coordinate{
		{GroupID: "g", ArtifactID: "leaf"},
	}))

	require.NoError(t, w.Walk(context.Background(), []*model.Artifact{root}))

	assert.Empty(t, root.Dependencies, "expected leaf to be excluded")
	_, ok := w.cache.Get(model.Coordinate{GroupID: "g", ArtifactID: "leaf"})
	assert.False(t, ok, "excluded dependency should never have been resolved")
}

// TestLeafChildResolvesToEmptySlice verifies that a child with no
// dependencies of its own ends the walk resolved to an empty, non-nil
// Dependencies slice.
func TestLeafChildResolvesToEmptySlice(t *testing.T) {
	rootXML := `<project>
  <groupId>g</groupId><artifactId>root</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>shared</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	sharedXML := `<project>
  <groupId>g</groupId><artifactId>shared</artifactId><version>1.0</version>
</project>`

	sink := events.NewCountingSink()
	w, _ := newTestWalker(t, map[string]string{
		"/g/root/1.0/root-1.0.pom":     rootXML,
		"/g/shared/1.0/shared-1.0.pom": sharedXML,
	}, sink)

	root := model.NewArtifact("g", "root", model.WithVersion("1.0"))
	require.NoError(t, w.Walk(context.Background(), []*model.Artifact{root}))

	require.Len(t, root.Dependencies, 1)
	assert.NotNil(t, root.Dependencies[0].Dependencies, "expected shared dependency to be resolved (even if to an empty slice)")
}

// TestDiamondDependencyResolvesBothOccurrences reproduces a real diamond:
// two distinct parent POMs (a and b) each declare their own dependency
// entry for g:lib:1.0 (two separate *model.Artifact pointers, same GA and
// version), and lib itself has a further grandchild. Both pointers must
// end up resolved, and neither may lose lib's grandchild subtree.
func TestDiamondDependencyResolvesBothOccurrences(t *testing.T) {
	aXML := `<project>
  <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>lib</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	bXML := `<project>
  <groupId>g</groupId><artifactId>b</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>lib</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	libXML := `<project>
  <groupId>g</groupId><artifactId>lib</artifactId><version>1.0</version>
  <dependencies>
    <dependency><groupId>g</groupId><artifactId>grandchild</artifactId><version>1.0</version></dependency>
  </dependencies>
</project>`
	grandchildXML := `<project>
  <groupId>g</groupId><artifactId>grandchild</artifactId><version>1.0</version>
</project>`

	sink := events.NewCountingSink()
	w, _ := newTestWalker(t, map[string]string{
		"/g/a/1.0/a-1.0.pom":                   aXML,
		"/g/b/1.0/b-1.0.pom":                   bXML,
		"/g/lib/1.0/lib-1.0.pom":               libXML,
		"/g/grandchild/1.0/grandchild-1.0.pom": grandchildXML,
	}, sink)

	rootA := model.NewArtifact("g", "a", model.WithVersion("1.0"))
	rootB := model.NewArtifact("g", "b", model.WithVersion("1.0"))
	require.NoError(t, w.Walk(context.Background(), []*model.Artifact{rootA, rootB}))

	require.Len(t, rootA.Dependencies, 1)
	require.Len(t, rootB.Dependencies, 1)

	libFromA := rootA.Dependencies[0]
	libFromB := rootB.Dependencies[0]

	require.NotNil(t, libFromA.Dependencies, "expected lib reached via a to be resolved")
	require.NotNil(t, libFromB.Dependencies, "expected lib reached via b to be resolved")
	assert.Len(t, libFromA.Dependencies, 1, "expected lib's grandchild to survive via a's path")
	assert.Len(t, libFromB.Dependencies, 1, "expected lib's grandchild to survive via b's path")
}
