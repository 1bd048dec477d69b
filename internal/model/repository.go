package model

import "fmt"

// Repository is a remote Maven-layout endpoint.
type Repository struct {
	Name    string
	BaseURL string
}

// ArtifactURL builds the canonical download URL for a (possibly
// classified) artifact:
// baseUrl/group/artifact/version/artifact-version[-classifier].extension.
func (r *Repository) ArtifactURL(a *Artifact) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", r.BaseURL, a.GroupPath(), a.ArtifactID, a.Version, a.FileName())
}

// POMURL builds the URL of the POM describing a coordinate, regardless of
// the artifact's own extension/classifier.
func (r *Repository) POMURL(a *Artifact) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom", r.BaseURL, a.GroupPath(), a.ArtifactID, a.Version, a.ArtifactID, a.Version)
}

// MetadataURL builds the maven-metadata.xml URL for a coordinate,
// used to resolve LATEST/RELEASE/range version markers.
func (r *Repository) MetadataURL(groupID, artifactID string) string {
	return fmt.Sprintf("%s/%s/%s/maven-metadata.xml", r.BaseURL, groupPath(groupID), artifactID)
}

func groupPath(groupID string) string {
	out := make([]byte, 0, len(groupID))
	for i := 0; i < len(groupID); i++ {
		if groupID[i] == '.' {
			out = append(out, '/')
		} else {
			out = append(out, groupID[i])
		}
	}
	return string(out)
}

// DefaultRepositories returns the default resolution order: Maven Central,
// Google Maven, Jitpack.
func DefaultRepositories() []*Repository {
	return []*Repository{
		{Name: "central", BaseURL: "https://repo1.maven.org/maven2"},
		{Name: "google", BaseURL: "https://maven.google.com"},
		{Name: "jitpack", BaseURL: "https://jitpack.io"},
	}
}
