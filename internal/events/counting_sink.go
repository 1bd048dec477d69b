package events

import (
	"sync"

	"depresolve/internal/model"
)

// CountingSink is a thread-safe Sink used by tests to assert how many
// times each lifecycle event fired, mirroring the mutex-guarded counter
// pattern the build runner uses for its own concurrent task bookkeeping.
type CountingSink struct {
	mu sync.Mutex

	Skipped               int
	Completed             int
	DepsNotFound          int
	InvalidPOMs           []string
	VersionsNotFound      []string
	Cycles                int
	RepositoriesUnresolved int
	DownloadStarts        int
	DownloadEnds          int
	DownloadErrors        int
	InfoLogs              int
	WarningLogs           int
	ErrorLogs             int
}

func NewCountingSink() *CountingSink { return &CountingSink{} }

func (s *CountingSink) SkippingResolution(a *model.Artifact, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

func (s *CountingSink) ResolutionComplete(a *model.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed++
}

func (s *CountingSink) DependenciesNotFound(a *model.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DepsNotFound++
}

func (s *CountingSink) InvalidPOM(a *model.Artifact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InvalidPOMs = append(s.InvalidPOMs, a.String())
}

func (s *CountingSink) VersionNotFound(a *model.Artifact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.VersionsNotFound = append(s.VersionsNotFound, a.String())
}

func (s *CountingSink) CycleDetected(a *model.Artifact, onStack model.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cycles++
}

func (s *CountingSink) RepositoryUnresolved(a *model.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RepositoriesUnresolved++
}

func (s *CountingSink) DownloadStart(a *model.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DownloadStarts++
}

func (s *CountingSink) DownloadEnd(a *model.Artifact, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DownloadEnds++
}

func (s *CountingSink) DownloadError(a *model.Artifact, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DownloadErrors++
}

func (s *CountingSink) Info(msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InfoLogs++
}

func (s *CountingSink) Warning(msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WarningLogs++
}

func (s *CountingSink) Error(msg string, err error, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ErrorLogs++
}
