package gradleparse

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"depresolve/internal/model"
)

// Declaration is one dependency line from a Gradle build script, before
// version-catalog resolution.
type Declaration struct {
	Configuration string // implementation, api, compileOnly, runtimeOnly, testImplementation...
	Group         string
	Name          string
	Version       string
	Classifier    string
	Extension     string
	IsProject     bool   // true for project(":module") dependencies
	CatalogRef    string // set instead of Group/Name for libs.xyz.abc references
}

var (
	dependencyLineRe = regexp.MustCompile(`^\s*(implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly|annotationProcessor|kapt)\s*\(\s*(.+?)\s*\)\s*$`)
	projectRefRe     = regexp.MustCompile(`project\s*\(\s*["']([^"']+)["']\s*\)`)
	quotedStringRe   = regexp.MustCompile(`^["']([^"']+)["']$`)
	catalogRefRe     = regexp.MustCompile(`^libs\.([A-Za-z0-9_.]+)$`)
)

// ParseBuildScript scans a build.gradle or build.gradle.kts file for
// dependency declarations. It is a line-oriented scanner, not a full
// Groovy/Kotlin-DSL parser: it recognizes the handful of call shapes
// real build scripts use for declaring external coordinates.
func ParseBuildScript(path string) ([]Declaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseBuildScript(f)
}

func parseBuildScript(f *os.File) ([]Declaration, error) {
	var decls []Declaration
	inDependenciesBlock := false
	depth := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.Contains(line, "dependencies {") || strings.HasPrefix(line, "dependencies{") {
			inDependenciesBlock = true
			depth = 1
			continue
		}
		if inDependenciesBlock {
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			if depth <= 0 {
				inDependenciesBlock = false
				continue
			}
		}
		if !inDependenciesBlock {
			continue
		}

		matches := dependencyLineRe.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		decl, ok := parseDependencyArg(matches[1], matches[2])
		if ok {
			decls = append(decls, decl)
		}
	}
	return decls, scanner.Err()
}

func parseDependencyArg(configuration, arg string) (Declaration, bool) {
	decl := Declaration{Configuration: configuration}

	if ref := projectRefRe.FindStringSubmatch(arg); ref != nil {
		decl.IsProject = true
		decl.Name = ref[1]
		return decl, true
	}

	if catalogRefRe.MatchString(arg) {
		decl.CatalogRef = strings.TrimPrefix(catalogRefRe.FindString(arg), "libs.")
		return decl, true
	}

	if m := quotedStringRe.FindStringSubmatch(arg); m != nil {
		return parseCoordinateString(decl, m[1])
	}

	return Declaration{}, false
}

// parseCoordinateString handles "group:name:version[:classifier][@ext]".
func parseCoordinateString(decl Declaration, coord string) (Declaration, bool) {
	ext := ""
	if at := strings.LastIndex(coord, "@"); at >= 0 {
		ext = coord[at+1:]
		coord = coord[:at]
	}
	parts := strings.Split(coord, ":")
	if len(parts) < 2 {
		return Declaration{}, false
	}
	decl.Group, decl.Name = parts[0], parts[1]
	if len(parts) >= 3 {
		decl.Version = parts[2]
	}
	if len(parts) >= 4 {
		decl.Classifier = parts[3]
	}
	decl.Extension = ext
	return decl, true
}

// Resolve expands CatalogRef declarations against the project's version
// catalog and converts every resolvable, non-project declaration into a
// direct dependency Artifact. Declarations this catalog cannot resolve
// are skipped rather than aborting the whole manifest.
func Resolve(decls []Declaration, catalog *Catalog) []*model.Artifact {
	var out []*model.Artifact
	for _, d := range decls {
		if d.IsProject {
			continue
		}
		group, name, version := d.Group, d.Name, d.Version
		if d.CatalogRef != "" {
			if catalog == nil {
				continue
			}
			lib, ok := catalog.Resolve(d.CatalogRef)
			if !ok || lib.Group == "" || lib.Name == "" {
				continue
			}
			group, name, version = lib.Group, lib.Name, lib.Version
		}
		if group == "" || name == "" {
			continue
		}

		opts := []model.ArtifactOption{model.WithVersion(version)}
		if d.Classifier != "" {
			opts = append(opts, model.WithClassifier(d.Classifier))
		}
		if d.Extension != "" {
			opts = append(opts, model.WithExtension(d.Extension))
		}
		opts = append(opts, model.WithScope(configurationScope(d.Configuration)))

		out = append(out, model.NewArtifact(group, name, opts...))
	}
	return out
}

// configurationScope maps a Gradle configuration name onto the scope
// vocabulary the rest of the pipeline already understands, so Gradle and
// Maven manifests feed the same walker uniformly.
func configurationScope(configuration string) string {
	switch configuration {
	case "testImplementation", "testRuntimeOnly":
		return "test"
	case "compileOnly", "annotationProcessor", "kapt":
		return "provided"
	case "runtimeOnly":
		return "runtime"
	default:
		return "compile"
	}
}
