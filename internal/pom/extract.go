package pom

import "depresolve/internal/model"

// ExtractDependencies produces the direct dependencies of an effective
// POM after scope/optional filtering and dependencyManagement version
// pinning, per spec §4.4.
func ExtractDependencies(eff *Effective) []*model.Artifact {
	var out []*model.Artifact

	for _, d := range eff.POM.Dependencies {
		if d.IsOptional() {
			continue
		}
		scope := d.EffectiveScope()
		switch scope {
		case "test", "provided", "system":
			continue
		case "compile", "runtime":
			// kept
		default:
			continue
		}

		version := d.Version
		if version == "" {
			if pinned, ok := eff.Management[model.Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID}]; ok {
				version = pinned
			}
		}

		exclusions := make([]model.Coordinate, 0, len(d.Exclusions))
		for _, ex := range d.Exclusions {
			exclusions = append(exclusions, model.Coordinate{GroupID: ex.GroupID, ArtifactID: ex.ArtifactID})
		}

		opts := []model.ArtifactOption{
			model.WithVersion(version),
			model.WithScope(scope),
			model.WithExclusions(exclusions),
		}
		if d.Classifier != "" {
			opts = append(opts, model.WithClassifier(d.Classifier))
		}
		if d.Type != "" && d.Type != "jar" {
			opts = append(opts, model.WithExtension(d.Type))
		}

		out = append(out, model.NewArtifact(d.GroupID, d.ArtifactID, opts...))
	}

	return out
}
