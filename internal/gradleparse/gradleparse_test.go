package gradleparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseBuildScriptBasicCoordinates(t *testing.T) {
	path := writeTemp(t, "build.gradle.kts", `
plugins {
    id("org.jetbrains.kotlin.jvm")
}

dependencies {
    implementation("com.squareup.okhttp3:okhttp:4.12.0")
    testImplementation("junit:junit:4.13.2")
    compileOnly("org.projectlombok:lombok:1.18.30")
    implementation(project(":core"))
}
`)

	decls, err := ParseBuildScript(path)
	require.NoError(t, err)

	var external, project int
	for _, d := range decls {
		if d.IsProject {
			project++
			continue
		}
		external++
	}
	assert.Equal(t, 3, external, "expected 3 external dependencies")
	assert.Equal(t, 1, project, "expected 1 project dependency")
}

func TestParseBuildScriptCatalogReference(t *testing.T) {
	path := writeTemp(t, "build.gradle.kts", `
dependencies {
    implementation(libs.okhttp)
}
`)
	decls, err := ParseBuildScript(path)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "okhttp", decls[0].CatalogRef)
}

func TestParseCatalogStringForm(t *testing.T) {
	toml := `
[versions]
okhttp = "4.12.0"

[libraries]
okhttp = { module = "com.squareup.okhttp3:okhttp", version.ref = "okhttp" }
junit = "junit:junit:4.13.2"
`
	cat, err := ParseCatalogBytes([]byte(toml))
	require.NoError(t, err)

	lib, ok := cat.Resolve("okhttp")
	require.True(t, ok, "expected okhttp to resolve")
	assert.Equal(t, "com.squareup.okhttp3", lib.Group)
	assert.Equal(t, "okhttp", lib.Name)
	assert.Equal(t, "4.12.0", lib.Version)

	junit, ok := cat.Resolve("junit")
	require.True(t, ok, "expected junit to resolve from short string form")
	assert.Equal(t, "4.13.2", junit.Version)
}

func TestResolveCombinesCatalogAndDirect(t *testing.T) {
	decls := []Declaration{
		{Configuration: "implementation", Group: "com.google.guava", Name: "guava", Version: "33.0.0-jre"},
		{Configuration: "implementation", CatalogRef: "okhttp"},
		{Configuration: "testImplementation", Group: "junit", Name: "junit", Version: "4.13.2"},
	}
	cat := &Catalog{
		Versions: map[string]string{},
		Libraries: map[string]Library{
			"okhttp": {Group: "com.squareup.okhttp3", Name: "okhttp", Version: "4.12.0"},
		},
	}

	artifacts := Resolve(decls, cat)
	require.Len(t, artifacts, 3)

	byName := map[string]string{}
	for _, a := range artifacts {
		byName[a.ArtifactID] = a.Scope
	}
	assert.Equal(t, "compile", byName["guava"], "expected guava to default to compile scope")
	assert.Equal(t, "test", byName["junit"], "expected junit to map to test scope")
	assert.Equal(t, "compile", byName["okhttp"], "expected catalog-resolved okhttp to carry compile scope")
}
