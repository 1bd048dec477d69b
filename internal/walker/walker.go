// Package walker implements the concurrent, level-synchronous BFS over the
// transitive dependency graph: cache-consulting, cycle-breaking, and
// bounded-fanout per level.
package walker

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"depresolve/internal/cache"
	"depresolve/internal/errs"
	"depresolve/internal/events"
	"depresolve/internal/mavenversion"
	"depresolve/internal/model"
	"depresolve/internal/pom"
)

// DefaultConcurrency is the per-level fan-out bound when the caller
// doesn't override it.
const DefaultConcurrency = 8

// Walker performs the graph walk described in spec §4.6: one invocation
// processes a set of root direct dependencies, level by level, consulting
// the shared cache and publishing winners as it goes.
type Walker struct {
	resolver    *pom.Resolver
	cache       *cache.Cache
	sink        events.Sink
	concurrency int
}

// New builds a Walker with the given concurrency bound (0 uses
// DefaultConcurrency).
func New(resolver *pom.Resolver, c *cache.Cache, sink events.Sink, concurrency int) *Walker {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Walker{resolver: resolver, cache: c, sink: sink, concurrency: concurrency}
}

// node is one pending artifact plus the ancestor-GA path that reached it,
// used for per-path cycle detection.
type node struct {
	artifact *model.Artifact
	path     []model.Coordinate
}

// Walk resolves the transitive closure reachable from roots, mutating
// each artifact's Dependencies field in place. It returns an error only
// for context cancellation; every other failure degrades the affected
// node to "no dependencies" and the walk continues, per spec §7.
func (w *Walker) Walk(ctx context.Context, roots []*model.Artifact) error {
	level := make([]node, 0, len(roots))
	for _, r := range roots {
		level = append(level, node{artifact: r})
	}

	for len(level) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var nextMu sync.Mutex
		var next []node

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.concurrency)

		for _, n := range level {
			n := n

			g.Go(func() error {
				children, err := w.resolveOne(gctx, n)
				if err != nil {
					return err
				}
				if len(children) == 0 {
					return nil
				}
				nextMu.Lock()
				for _, child := range children {
					next = append(next, node{artifact: child, path: append(append([]model.Coordinate{}, n.path...), n.artifact.GA())})
				}
				nextMu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		level = next
	}

	return nil
}

// resolveOne resolves a single node against the cache contract and
// returns its children for the next BFS level.
func (w *Walker) resolveOne(ctx context.Context, n node) ([]*model.Artifact, error) {
	a := n.artifact
	ga := a.GA()

	if a.Dependencies != nil {
		w.sink.SkippingResolution(a, "already resolved")
		// A resolved pointer reached again along a path through its own GA
		// closes a cycle: stop here without clearing its dependencies.
		for _, ancestor := range n.path {
			if ancestor == ga {
				return nil, nil
			}
		}
		return a.Dependencies, nil
	}

	for _, ancestor := range n.path {
		if ancestor == ga {
			w.sink.CycleDetected(a, ancestor)
			a.Dependencies = []*model.Artifact{}
			return nil, nil
		}
	}

	if entry, ok := w.cache.Get(ga); ok {
		switch c := mavenversion.Compare(entry.Winner.Version, a.Version); {
		case c == 0:
			a.Dependencies = entry.Deps
			a.Packaging = entry.Winner.Packaging
			w.sink.SkippingResolution(a, "cached at same version")
			return entry.Deps, nil
		case c > 0:
			a.Dependencies = []*model.Artifact{}
			w.sink.SkippingResolution(a, "dominated by newer cached version")
			return nil, nil
		}
		// This artifact's version is strictly higher than the cached
		// winner: fall through and resolve, overwriting the cache.
	}

	entry, err, _ := w.cache.Resolve(ga, func() (cache.Entry, error) {
		return w.doResolve(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	// The call may have shared a flight started for another version of
	// this GA: a newer winner dominates a, an older one leaves a to
	// resolve its own version and overwrite the cache.
	switch c := mavenversion.Compare(entry.Winner.Version, a.Version); {
	case c == 0:
		a.Packaging = entry.Winner.Packaging
	case c > 0:
		a.Dependencies = []*model.Artifact{}
		w.sink.SkippingResolution(a, "dominated by newer cached version")
		return nil, nil
	default:
		entry, err = w.doResolve(ctx, a)
		if err != nil {
			return nil, err
		}
		w.cache.PutIfNewer(ga, entry.Winner, entry.Deps)
	}

	a.Dependencies = entry.Deps
	return entry.Deps, nil
}

// doResolve fetches the effective POM for a, extracts and exclusion-filters
// its direct dependencies, and reports the outcome. It never returns an
// error except context cancellation: every resolution failure is recorded
// as an event and degrades a to "no dependencies".
func (w *Walker) doResolve(ctx context.Context, a *model.Artifact) (cache.Entry, error) {
	eff, err := w.resolver.EffectivePOM(ctx, a)
	if err != nil {
		if ctx.Err() != nil {
			return cache.Entry{}, ctx.Err()
		}
		w.report(a, err)
		return cache.Entry{Winner: a, Deps: []*model.Artifact{}}, nil
	}

	a.Packaging = eff.POM.Packaging

	direct := pom.ExtractDependencies(eff)
	kept := make([]*model.Artifact, 0, len(direct))
	for _, d := range direct {
		if a.Excludes(d.GA()) {
			continue
		}
		d.Exclusions = unionCoordinates(a.Exclusions, d.Exclusions)
		kept = append(kept, d)
	}

	if len(kept) == 0 {
		w.sink.DependenciesNotFound(a)
	} else {
		w.sink.ResolutionComplete(a)
	}

	return cache.Entry{Winner: a, Deps: kept}, nil
}

func (w *Walker) report(a *model.Artifact, err error) {
	switch {
	case errors.Is(err, errs.ErrRepositoryUnresolved):
		w.sink.RepositoryUnresolved(a)
	case errors.Is(err, errs.ErrVersionNotFound):
		w.sink.VersionNotFound(a, err)
	case errors.Is(err, errs.ErrInvalidPOM):
		w.sink.InvalidPOM(a, err)
	default:
		w.sink.Error("unexpected resolution failure", err, "artifact", a.String())
	}
}

func unionCoordinates(a, b []model.Coordinate) []model.Coordinate {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	seen := make(map[model.Coordinate]bool, len(a)+len(b))
	out := make([]model.Coordinate, 0, len(a)+len(b))
	for _, c := range append(append([]model.Coordinate{}, a...), b...) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
