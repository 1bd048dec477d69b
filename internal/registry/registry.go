// Package registry holds the ordered list of remote Maven repositories and
// the host-discovery helper that binds a coordinate to its origin.
package registry

import (
	"context"
	"net/http"
	"sync"

	"depresolve/internal/errs"
	"depresolve/internal/metadata"
	"depresolve/internal/model"
)

// Registry is read-mostly: the default list is seeded once, and POM-declared
// <repositories> are appended as they are discovered during the walk.
// Additions are append-only and guarded by a mutex so concurrent walker
// tasks can safely discover new repositories mid-traversal.
type Registry struct {
	mu     sync.Mutex
	repos  []*model.Repository
	client *http.Client
}

// New creates a Registry seeded with the given repositories, tried in
// order during host discovery.
func New(client *http.Client, repos ...*model.Repository) *Registry {
	return &Registry{client: client, repos: append([]*model.Repository{}, repos...)}
}

// Add appends a repository discovered from a POM's <repositories> section,
// if not already present by base URL.
func (r *Registry) Add(repo *model.Repository) {
	if repo == nil || repo.BaseURL == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.repos {
		if existing.BaseURL == repo.BaseURL {
			return
		}
	}
	r.repos = append(r.repos, repo)
}

// Repositories returns a snapshot of the current repository list.
func (r *Registry) Repositories() []*model.Repository {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Repository, len(r.repos))
	copy(out, r.repos)
	return out
}

// Bind probes each repository in order, issuing a HEAD against the
// artifact's POM URL (falling back to a ranged GET when a repository
// rejects HEAD); the first 2xx response binds artifact.Repository.
// Probing is sequential per artifact; callers resolving many artifacts
// concurrently get cross-artifact parallelism for free since each call
// operates on its own goroutine.
func (r *Registry) Bind(ctx context.Context, a *model.Artifact) error {
	if a.Repository != nil {
		return nil
	}
	for _, repo := range r.Repositories() {
		if r.probe(ctx, repo, a) {
			a.Repository = repo
			return nil
		}
	}
	return errs.ErrRepositoryUnresolved
}

func (r *Registry) probe(ctx context.Context, repo *model.Repository, a *model.Artifact) bool {
	url := repo.POMURL(a)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return true
		}
		// Some repositories (Jitpack in particular) don't answer HEAD
		// reliably; fall back to a ranged GET before giving up on it.
		if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
			return r.probeRangedGet(ctx, url)
		}
		return false
	}
	return r.probeRangedGet(ctx, url)
}

// ResolveFloatingVersion turns a LATEST/RELEASE marker or version range
// into a concrete version by consulting maven-metadata.xml across every
// registered repository in order, returning the first repository's
// resolution that succeeds.
func (r *Registry) ResolveFloatingVersion(ctx context.Context, groupID, artifactID, marker string) (string, error) {
	var lastErr error
	for _, repo := range r.Repositories() {
		md, err := metadata.Fetch(ctx, r.client, repo, groupID, artifactID)
		if err != nil {
			lastErr = err
			continue
		}
		v, err := metadata.Resolve(md, marker)
		if err != nil {
			lastErr = err
			continue
		}
		return v, nil
	}
	if lastErr == nil {
		lastErr = errs.ErrVersionNotFound
	}
	return "", lastErr
}

func (r *Registry) probeRangedGet(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Range", "bytes=0-0")
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
