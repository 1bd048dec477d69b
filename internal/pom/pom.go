// Package pom fetches and parses Maven POM files into effective POMs:
// parent-chain merged, property-interpolated, dependencyManagement-applied.
package pom

import (
	"encoding/xml"
	"strings"
)

// POM is a parsed Project Object Model, before parent merge or
// interpolation. Fields mirror the 4.0.0 subset this resolver needs:
// parent, properties, dependencies, dependencyManagement, packaging,
// exclusions, optional, scope, repositories.
type POM struct {
	XMLName              xml.Name             `xml:"project"`
	GroupID              string               `xml:"groupId"`
	ArtifactID           string               `xml:"artifactId"`
	Version              string               `xml:"version"`
	Packaging            string               `xml:"packaging"`
	Parent               *Parent              `xml:"parent"`
	Properties           PropertyMap          `xml:"properties"`
	Dependencies         []Dependency         `xml:"dependencies>dependency"`
	DependencyManagement DependencyManagement `xml:"dependencyManagement"`
	Repositories         []RepositoryRef      `xml:"repositories>repository"`
}

// Parent references the POM this project inherits from.
type Parent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

// Dependency is one <dependency> entry, in either <dependencies> or
// <dependencyManagement><dependencies>.
type Dependency struct {
	GroupID    string         `xml:"groupId"`
	ArtifactID string         `xml:"artifactId"`
	Version    string         `xml:"version"`
	Classifier string         `xml:"classifier"`
	Type       string         `xml:"type"`
	Scope      string         `xml:"scope"`
	Optional   string         `xml:"optional"`
	Exclusions []ExclusionRef `xml:"exclusions>exclusion"`
}

// IsOptional reports the parsed truthiness of <optional>.
func (d Dependency) IsOptional() bool {
	return strings.EqualFold(strings.TrimSpace(d.Optional), "true")
}

// IsBOMImport reports whether this dependencyManagement entry imports
// another POM's dependencyManagement (scope=import, type=pom).
func (d Dependency) IsBOMImport() bool {
	return strings.EqualFold(d.Scope, "import") && strings.EqualFold(d.Type, "pom")
}

// EffectiveScope returns the declared scope, defaulting to "compile".
func (d Dependency) EffectiveScope() string {
	if d.Scope == "" {
		return "compile"
	}
	return d.Scope
}

// ExclusionRef is a <exclusion> entry under a dependency.
type ExclusionRef struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// DependencyManagement is the <dependencyManagement> block.
type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

// RepositoryRef is a <repository> entry under <repositories>.
type RepositoryRef struct {
	ID     string `xml:"id"`
	URL    string `xml:"url"`
	Layout string `xml:"layout"`
}

// PropertyMap decodes the arbitrarily-named children of <properties> into
// a plain map, since encoding/xml cannot express "any element name" with
// a struct tag.
type PropertyMap map[string]string

// UnmarshalXML implements xml.Unmarshaler for PropertyMap.
func (p *PropertyMap) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m := PropertyMap{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			m[t.Name.Local] = value
		case xml.EndElement:
			if t.Name == start.Name {
				*p = m
				return nil
			}
		}
	}
}

// managementVersion looks up the pinned version for a GA in a
// DependencyManagement block.
func (dm DependencyManagement) managementVersion(groupID, artifactID string) (string, bool) {
	for _, d := range dm.Dependencies {
		if d.GroupID == groupID && d.ArtifactID == artifactID {
			return d.Version, d.Version != ""
		}
	}
	return "", false
}
