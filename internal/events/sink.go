// Package events defines the abstract observer the resolver reports
// lifecycle events to, plus a zerolog-backed default implementation.
// Implementations must be safe for concurrent use: the graph walker
// invokes them from multiple in-flight resolves at once.
package events

import "depresolve/internal/model"

// Sink receives lifecycle events from the resolver and downloader.
type Sink interface {
	SkippingResolution(a *model.Artifact, reason string)
	ResolutionComplete(a *model.Artifact)
	DependenciesNotFound(a *model.Artifact)
	InvalidPOM(a *model.Artifact, err error)
	VersionNotFound(a *model.Artifact, err error)
	CycleDetected(a *model.Artifact, onStack model.Coordinate)
	RepositoryUnresolved(a *model.Artifact)

	DownloadStart(a *model.Artifact)
	DownloadEnd(a *model.Artifact, path string)
	DownloadError(a *model.Artifact, err error)

	Info(msg string, kv ...any)
	Warning(msg string, kv ...any)
	Error(msg string, err error, kv ...any)
}
