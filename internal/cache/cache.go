// Package cache implements the resolver's process-scoped memoization: a
// concurrent map keyed by (groupId, artifactId) holding the winning
// artifact and its direct dependencies, with single-flight semantics so
// concurrent walker tasks resolving the same coordinate share one
// in-flight computation.
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"depresolve/internal/mavenversion"
	"depresolve/internal/model"
)

// Entry is a published cache record: the winning artifact at this GA and
// its already-resolved direct dependencies. A known-unresolvable
// coordinate is published with an empty Deps slice, the same as one that
// resolved to no kept dependencies, so it isn't retried.
type Entry struct {
	Winner *model.Artifact
	Deps   []*model.Artifact
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[model.Coordinate]Entry
	group   singleflight.Group
}

// New builds an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[model.Coordinate]Entry)}
}

// Get returns the published entry for ga, if any.
func (c *Cache) Get(ga model.Coordinate) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[ga]
	return e, ok
}

// PutIfNewer publishes (winner, deps) for ga unless an existing entry
// already carries an equal-or-newer version, implementing the
// "newest wins on collision" rule. Returns whether the put took effect.
func (c *Cache) PutIfNewer(ga model.Coordinate, winner *model.Artifact, deps []*model.Artifact) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.entries[ga]
	if ok && !mavenversion.IsHigherThan(winner.Version, existing.Winner.Version) {
		return false
	}
	c.entries[ga] = Entry{Winner: winner, Deps: deps}
	return true
}

// Resolve runs fn at most once per ga among concurrent callers: while one
// caller's fn is in flight, others for the same key block on its result
// instead of duplicating the fetch. No lock is held across fn, which does
// its own I/O.
func (c *Cache) Resolve(ga model.Coordinate, fn func() (Entry, error)) (Entry, error, bool) {
	v, err, shared := c.group.Do(ga.String(), func() (any, error) {
		e, err := fn()
		if err != nil {
			return Entry{}, err
		}
		c.PutIfNewer(ga, e.Winner, e.Deps)
		return e, nil
	})
	if err != nil {
		return Entry{}, err, shared
	}
	return v.(Entry), nil, shared
}
