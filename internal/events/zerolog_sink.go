package events

import (
	"os"

	"github.com/rs/zerolog"

	"depresolve/internal/model"
)

// ZerologSink is the default Sink, logging every event as a structured
// record. Safe for concurrent use: zerolog.Logger writes are
// goroutine-safe by design.
type ZerologSink struct {
	log zerolog.Logger
}

// NewZerologSink builds a sink writing human-readable console output to
// stderr. Callers embedding this in a CLI typically swap the writer for
// os.Stdout or a file.
func NewZerologSink() *ZerologSink {
	return &ZerologSink{log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()}
}

// NewZerologSinkWithLogger wraps an already-configured logger, useful when
// the host CLI wants JSON output or a shared writer.
func NewZerologSinkWithLogger(l zerolog.Logger) *ZerologSink {
	return &ZerologSink{log: l}
}

func (s *ZerologSink) SkippingResolution(a *model.Artifact, reason string) {
	s.log.Debug().Str("artifact", a.String()).Str("reason", reason).Msg("skipping resolution")
}

func (s *ZerologSink) ResolutionComplete(a *model.Artifact) {
	s.log.Debug().Str("artifact", a.String()).Int("deps", len(a.Dependencies)).Msg("resolution complete")
}

func (s *ZerologSink) DependenciesNotFound(a *model.Artifact) {
	s.log.Info().Str("artifact", a.String()).Msg("no dependencies after filtering")
}

func (s *ZerologSink) InvalidPOM(a *model.Artifact, err error) {
	s.log.Warn().Str("artifact", a.String()).Err(err).Msg("invalid POM")
}

func (s *ZerologSink) VersionNotFound(a *model.Artifact, err error) {
	s.log.Warn().Str("artifact", a.String()).Err(err).Msg("version not found")
}

func (s *ZerologSink) CycleDetected(a *model.Artifact, onStack model.Coordinate) {
	s.log.Warn().Str("artifact", a.String()).Str("cycle_with", onStack.String()).Msg("cycle detected, dropping edge")
}

func (s *ZerologSink) RepositoryUnresolved(a *model.Artifact) {
	s.log.Warn().Str("artifact", a.String()).Msg("no repository claims coordinate")
}

func (s *ZerologSink) DownloadStart(a *model.Artifact) {
	s.log.Debug().Str("artifact", a.String()).Msg("download start")
}

func (s *ZerologSink) DownloadEnd(a *model.Artifact, path string) {
	s.log.Info().Str("artifact", a.String()).Str("path", path).Msg("download complete")
}

func (s *ZerologSink) DownloadError(a *model.Artifact, err error) {
	s.log.Error().Str("artifact", a.String()).Err(err).Msg("download failed")
}

func (s *ZerologSink) Info(msg string, kv ...any) {
	s.log.Info().Fields(kvToMap(kv)).Msg(msg)
}

func (s *ZerologSink) Warning(msg string, kv ...any) {
	s.log.Warn().Fields(kvToMap(kv)).Msg(msg)
}

func (s *ZerologSink) Error(msg string, err error, kv ...any) {
	s.log.Error().Err(err).Fields(kvToMap(kv)).Msg(msg)
}

func kvToMap(kv []any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			m[key] = kv[i+1]
		}
	}
	return m
}
