package pom

// mergeParent applies child-overrides-parent for scalar fields and unions
// the dependencies / dependencyManagement / repositories lists, per
// spec §4.3: child wins on everything except those three list fields.
func mergeParent(child *POM, parent *POM) {
	if child.GroupID == "" {
		child.GroupID = parent.GroupID
	}
	if child.Version == "" {
		child.Version = parent.Version
	}
	if child.Packaging == "" {
		child.Packaging = parent.Packaging
	}

	for k, v := range parent.Properties {
		if child.Properties == nil {
			child.Properties = PropertyMap{}
		}
		if _, exists := child.Properties[k]; !exists {
			child.Properties[k] = v
		}
	}

	child.Dependencies = append(child.Dependencies, parent.Dependencies...)
	child.DependencyManagement.Dependencies = append(child.DependencyManagement.Dependencies, parent.DependencyManagement.Dependencies...)
	child.Repositories = append(child.Repositories, parent.Repositories...)
}
