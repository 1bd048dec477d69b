// Package model holds the coordinate, artifact, and repository value types
// shared across the resolution pipeline.
package model

import (
	"fmt"
	"strings"
)

// Coordinate is the (groupId, artifactId) pair used as the cache key and
// the conflict-resolution key. Classifier deliberately does not
// participate: different classifiers of the same GA share transitive
// dependencies and reconcile as one.
type Coordinate struct {
	GroupID    string
	ArtifactID string
}

// String renders the coordinate as "groupId:artifactId".
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// Artifact is a uniquely identified binary or POM at a Maven coordinate.
// Identity is the full (groupId, artifactId, version, classifier) tuple;
// GA() returns the coarser cache/reconciliation key.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	Extension  string
	Packaging  string
	Scope      string

	// Repository is bound by host discovery once a repository claims this
	// coordinate. Empty until then.
	Repository *Repository

	// Exclusions are the (groupId, artifactId) pairs this artifact's
	// introducing dependency entry excludes; they propagate to every
	// dependency reached beneath this artifact.
	Exclusions []Coordinate

	// Dependencies is filled exactly once by the graph walker: nil means
	// "not yet resolved", an empty non-nil slice means "resolved to no
	// kept dependencies".
	Dependencies []*Artifact
}

// ArtifactOption configures optional Artifact fields at construction time.
type ArtifactOption func(*Artifact)

// WithVersion sets the artifact's version.
func WithVersion(v string) ArtifactOption { return func(a *Artifact) { a.Version = v } }

// WithClassifier sets the artifact's classifier.
func WithClassifier(c string) ArtifactOption { return func(a *Artifact) { a.Classifier = c } }

// WithExtension overrides the default "jar" extension.
func WithExtension(e string) ArtifactOption { return func(a *Artifact) { a.Extension = e } }

// WithScope records the scope the dependency entry declared.
func WithScope(s string) ArtifactOption { return func(a *Artifact) { a.Scope = s } }

// WithExclusions attaches propagated exclusions.
func WithExclusions(ex []Coordinate) ArtifactOption {
	return func(a *Artifact) { a.Exclusions = ex }
}

// NewArtifact constructs an Artifact with the public-facade defaults:
// extension "jar" unless overridden.
func NewArtifact(groupID, artifactID string, opts ...ArtifactOption) *Artifact {
	a := &Artifact{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Extension:  "jar",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GA returns the (groupId, artifactId) cache/reconciliation key.
func (a *Artifact) GA() Coordinate {
	return Coordinate{GroupID: a.GroupID, ArtifactID: a.ArtifactID}
}

// Identity returns a string uniquely identifying the full coordinate
// tuple, including classifier.
func (a *Artifact) Identity() string {
	return fmt.Sprintf("%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Version, a.Classifier)
}

// String renders the artifact as "groupId:artifactId:version[:classifier]".
func (a *Artifact) String() string {
	if a.Classifier == "" {
		return fmt.Sprintf("%s:%s:%s", a.GroupID, a.ArtifactID, a.Version)
	}
	return fmt.Sprintf("%s:%s:%s:%s", a.GroupID, a.ArtifactID, a.Version, a.Classifier)
}

// Excludes reports whether ga is excluded by this artifact's exclusion set.
func (a *Artifact) Excludes(ga Coordinate) bool {
	for _, ex := range a.Exclusions {
		if ex == ga {
			return true
		}
	}
	return false
}

// FileName computes the download file name:
// artifactId-version[-classifier].extension.
func (a *Artifact) FileName() string {
	ext := a.Extension
	if ext == "" {
		ext = "jar"
	}
	if a.Classifier == "" {
		return fmt.Sprintf("%s-%s.%s", a.ArtifactID, a.Version, ext)
	}
	return fmt.Sprintf("%s-%s-%s.%s", a.ArtifactID, a.Version, a.Classifier, ext)
}

// GroupPath returns the groupId with '.' replaced by '/', used in both POM
// and artifact URL construction.
func (a *Artifact) GroupPath() string {
	return strings.ReplaceAll(a.GroupID, ".", "/")
}
