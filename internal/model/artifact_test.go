package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactURLConstruction(t *testing.T) {
	a := NewArtifact("com.x", "y", WithVersion("1.0"), WithClassifier("sources"), WithExtension("jar"))
	repo := &Repository{Name: "r", BaseURL: "https://r"}

	got := repo.ArtifactURL(a)
	assert.Equal(t, "https://r/com/x/y/1.0/y-1.0-sources.jar", got)
}

func TestArtifactFileName(t *testing.T) {
	a := NewArtifact("g", "a", WithVersion("2.0"))
	assert.Equal(t, "a-2.0.jar", a.FileName())

	a.Classifier = "tests"
	assert.Equal(t, "a-2.0-tests.jar", a.FileName())
}

func TestArtifactGAExcludesClassifier(t *testing.T) {
	a1 := NewArtifact("g", "a", WithVersion("1.0"), WithClassifier("sources"))
	a2 := NewArtifact("g", "a", WithVersion("1.0"))
	assert.Equal(t, a2.GA(), a1.GA(), "expected GA key to ignore classifier")
	assert.NotEqual(t, a2.Identity(), a1.Identity(), "expected full identity to include classifier")
}

func TestExcludes(t *testing.T) {
	a := NewArtifact("g", "a", WithExclusions([]Coordinate{{GroupID: "ex", ArtifactID: "x"}}))
	assert.True(t, a.Excludes(Coordinate{GroupID: "ex", ArtifactID: "x"}), "expected exclusion to match")
	assert.False(t, a.Excludes(Coordinate{GroupID: "other", ArtifactID: "y"}), "expected non-excluded coordinate to not match")
}
