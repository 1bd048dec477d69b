package pom

import "regexp"

var propertyRefPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

const maxInterpolationPasses = 10

// buildPropertyTable seeds the built-in properties first (so that an
// explicit <properties> entry with the same key wins, per last-writer
// wins) then layers the merged <properties> block on top.
func buildPropertyTable(p *POM) map[string]string {
	table := map[string]string{
		"project.version":    p.Version,
		"project.groupId":    p.GroupID,
		"project.artifactId": p.ArtifactID,
		"pom.version":        p.Version,
		"pom.groupId":        p.GroupID,
		"pom.artifactId":     p.ArtifactID,
	}
	if p.Parent != nil {
		table["project.parent.version"] = p.Parent.Version
		table["project.parent.groupId"] = p.Parent.GroupID
		table["project.parent.artifactId"] = p.Parent.ArtifactID
	}
	for k, v := range p.Properties {
		table[k] = v
	}
	return table
}

// resolvePropertyReferences iterates property-to-property substitution to
// a fixed point or maxInterpolationPasses, whichever comes first.
func resolvePropertyReferences(table map[string]string) {
	for i := 0; i < maxInterpolationPasses; i++ {
		changed := false
		for k, v := range table {
			nv := interpolateString(v, table)
			if nv != v {
				table[k] = nv
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// interpolateString substitutes every ${prop} reference found in props;
// references with no match are left as-is.
func interpolateString(s string, props map[string]string) string {
	return propertyRefPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := match[2 : len(match)-1]
		if v, ok := props[key]; ok {
			return v
		}
		return match
	})
}

// interpolate applies the resolved property table to every interpolatable
// field of the merged POM: its own identity, every dependency (including
// dependencyManagement entries), and repository URLs.
func interpolate(p *POM) {
	table := buildPropertyTable(p)
	resolvePropertyReferences(table)

	p.Version = interpolateString(p.Version, table)
	p.GroupID = interpolateString(p.GroupID, table)
	p.ArtifactID = interpolateString(p.ArtifactID, table)
	p.Packaging = interpolateString(p.Packaging, table)

	for i := range p.Dependencies {
		interpolateDependency(&p.Dependencies[i], table)
	}
	for i := range p.DependencyManagement.Dependencies {
		interpolateDependency(&p.DependencyManagement.Dependencies[i], table)
	}
	for i := range p.Repositories {
		p.Repositories[i].URL = interpolateString(p.Repositories[i].URL, table)
	}
}

func interpolateDependency(d *Dependency, table map[string]string) {
	d.GroupID = interpolateString(d.GroupID, table)
	d.ArtifactID = interpolateString(d.ArtifactID, table)
	d.Version = interpolateString(d.Version, table)
	d.Classifier = interpolateString(d.Classifier, table)
	d.Scope = interpolateString(d.Scope, table)
}
