// Package errs defines the sentinel error taxonomy shared by every
// resolution component, so callers can classify a failure with errors.Is
// regardless of which package produced it.
package errs

import "errors"

var (
	// ErrInvalidManifest means the project's pom.xml or build.gradle(.kts)
	// could not be parsed at all. Only this error aborts Resolve.
	ErrInvalidManifest = errors.New("invalid project manifest")

	// ErrRepositoryUnresolved means host discovery failed to bind a
	// coordinate to any configured repository.
	ErrRepositoryUnresolved = errors.New("no repository claims coordinate")

	// ErrVersionNotFound means a POM fetch returned a non-2xx status or a
	// transport-level failure.
	ErrVersionNotFound = errors.New("version not found")

	// ErrInvalidPOM means a POM was fetched but failed to parse, or the
	// body stream failed mid-read.
	ErrInvalidPOM = errors.New("invalid POM")

	// ErrDependenciesNotFound is informational: a POM parsed cleanly but
	// yielded zero dependencies after scope/optional filtering.
	ErrDependenciesNotFound = errors.New("no dependencies after filtering")

	// ErrCycleDetected marks a dependency edge dropped because it closes a
	// cycle back onto the current resolution path.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrDownloadFailed is a per-artifact download failure; it never
	// aborts a Download batch.
	ErrDownloadFailed = errors.New("artifact download failed")
)
