package pom

import (
	"context"
	"fmt"
	"net/http"

	"depresolve/internal/metadata"
	"depresolve/internal/model"
	"depresolve/internal/registry"
)

const maxParentDepth = 20

// Effective is a POM after parent merge and property interpolation, with
// its dependencyManagement fully flattened (BOM imports expanded) into a
// lookup index.
type Effective struct {
	POM
	Management map[model.Coordinate]string
}

// Resolver fetches effective POMs: it chases <parent> chains, interpolates
// properties, and expands dependencyManagement BOM imports.
type Resolver struct {
	client   *http.Client
	registry *registry.Registry
}

// NewResolver builds a Resolver sharing the given HTTP client and registry
// with the rest of the pipeline.
func NewResolver(client *http.Client, reg *registry.Registry) *Resolver {
	return &Resolver{client: client, registry: reg}
}

// EffectivePOM binds, fetches, merges, and interpolates the POM for a,
// returning the fully effective result with BOM imports expanded.
func (r *Resolver) EffectivePOM(ctx context.Context, a *model.Artifact) (*Effective, error) {
	return r.effectivePOM(ctx, a, map[string]bool{})
}

func (r *Resolver) effectivePOM(ctx context.Context, a *model.Artifact, bomVisited map[string]bool) (*Effective, error) {
	if metadata.IsFloating(a.Version) {
		resolved, err := r.registry.ResolveFloatingVersion(ctx, a.GroupID, a.ArtifactID, a.Version)
		if err != nil {
			return nil, err
		}
		a.Version = resolved
	}

	if err := r.registry.Bind(ctx, a); err != nil {
		return nil, err
	}

	base, err := Fetch(ctx, r.client, a.Repository, a)
	if err != nil {
		return nil, err
	}

	return r.effectiveFromParsed(ctx, base, bomVisited)
}

// EffectivePOMFromDocument computes the effective POM for an
// already-parsed document — a project's own pom.xml read from local disk
// — rather than one fetched from a repository.
func (r *Resolver) EffectivePOMFromDocument(ctx context.Context, root *POM) (*Effective, error) {
	return r.effectiveFromParsed(ctx, root, map[string]bool{})
}

func (r *Resolver) effectiveFromParsed(ctx context.Context, base *POM, bomVisited map[string]bool) (*Effective, error) {
	merged, err := r.mergeParentChain(ctx, base)
	if err != nil {
		return nil, err
	}

	for _, repoRef := range merged.Repositories {
		r.registry.Add(&model.Repository{Name: repoRef.ID, BaseURL: repoRef.URL})
	}

	interpolate(merged)

	management, err := r.resolveManagement(ctx, merged.DependencyManagement, bomVisited)
	if err != nil {
		return nil, err
	}

	return &Effective{POM: *merged, Management: management}, nil
}

// mergeParentChain follows <parent> up to maxParentDepth, merging each
// ancestor into the running effective POM. A parent that fails to fetch
// stops the chain but does not fail the overall resolution: the POM is
// kept as merged so far, per the best-effort propagation policy.
func (r *Resolver) mergeParentChain(ctx context.Context, base *POM) (*POM, error) {
	merged := *base
	current := base

	for depth := 0; depth < maxParentDepth && current.Parent != nil; depth++ {
		p := current.Parent
		if p.GroupID == "" || p.ArtifactID == "" || p.Version == "" {
			break
		}

		parentArtifact := model.NewArtifact(p.GroupID, p.ArtifactID, model.WithVersion(p.Version))
		if err := r.registry.Bind(ctx, parentArtifact); err != nil {
			break
		}

		parentPOM, err := Fetch(ctx, r.client, parentArtifact.Repository, parentArtifact)
		if err != nil {
			break
		}

		mergeParent(&merged, parentPOM)
		current = parentPOM
	}

	return &merged, nil
}

// resolveManagement flattens a dependencyManagement block into a
// (groupId, artifactId) -> version index, expanding any scope=import,
// type=pom BOM entries recursively. Explicit entries take precedence over
// imported ones, matching Maven's own resolution order.
func (r *Resolver) resolveManagement(ctx context.Context, dm DependencyManagement, bomVisited map[string]bool) (map[model.Coordinate]string, error) {
	index := map[model.Coordinate]string{}

	for _, d := range dm.Dependencies {
		if d.IsBOMImport() {
			continue
		}
		key := model.Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
		if _, exists := index[key]; !exists && d.Version != "" {
			index[key] = d.Version
		}
	}

	for _, d := range dm.Dependencies {
		if !d.IsBOMImport() {
			continue
		}
		bomID := fmt.Sprintf("%s:%s:%s", d.GroupID, d.ArtifactID, d.Version)
		if bomVisited[bomID] {
			continue
		}
		bomVisited[bomID] = true

		bomArtifact := model.NewArtifact(d.GroupID, d.ArtifactID, model.WithVersion(d.Version), model.WithExtension("pom"))
		bomEffective, err := r.effectivePOM(ctx, bomArtifact, bomVisited)
		if err != nil {
			// A missing BOM degrades to "no additional pins", per the
			// no-partial-failure-aborts-the-walk policy.
			continue
		}
		for k, v := range bomEffective.Management {
			if _, exists := index[k]; !exists {
				index[k] = v
			}
		}
	}

	return index, nil
}
