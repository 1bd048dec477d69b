// Package depresolve resolves a project's transitive Maven/Gradle
// dependency closure against remote repositories and materializes the
// resulting artifacts on local disk.
package depresolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"depresolve/internal/cache"
	"depresolve/internal/errs"
	"depresolve/internal/events"
	"depresolve/internal/gradleparse"
	"depresolve/internal/httpclient"
	"depresolve/internal/model"
	"depresolve/internal/pom"
	"depresolve/internal/reconcile"
	"depresolve/internal/registry"
	"depresolve/internal/walker"
)

// Re-exported so callers only need to import this package for the common
// path: constructing a root coordinate and resolving/downloading it.
type (
	Artifact       = model.Artifact
	Coordinate     = model.Coordinate
	Repository     = model.Repository
	ArtifactOption = model.ArtifactOption
)

var (
	WithVersion    = model.WithVersion
	WithClassifier = model.WithClassifier
	WithExtension  = model.WithExtension
	WithScope      = model.WithScope
	WithExclusions = model.WithExclusions
	NewArtifact    = model.NewArtifact
)

// Options configures a Resolver's shared infrastructure. The zero value is
// usable: it builds a default HTTP client, the default repository list,
// and a zerolog-backed Event Sink.
type Options struct {
	Client       *http.Client
	Repositories []*model.Repository
	Sink         events.Sink
	Concurrency  int
}

// Resolver is the public façade: one Resolver instance owns the shared
// HTTP client, repository registry, and resolver cache that every Resolve
// call reuses, following the teacher's pattern of amortizing expensive
// shared infrastructure across requests.
type Resolver struct {
	client      *http.Client
	registry    *registry.Registry
	sink        events.Sink
	walker      *walker.Walker
	pomResolver *pom.Resolver
}

// New builds a Resolver from Options, applying defaults for any zero field.
func New(opts Options) *Resolver {
	client := opts.Client
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	repos := opts.Repositories
	if len(repos) == 0 {
		repos = model.DefaultRepositories()
	}
	sink := opts.Sink
	if sink == nil {
		sink = events.NewZerologSink()
	}

	reg := registry.New(client, repos...)
	pomResolver := pom.NewResolver(client, reg)
	c := cache.New()
	w := walker.New(pomResolver, c, sink, opts.Concurrency)

	return &Resolver{client: client, registry: reg, sink: sink, walker: w, pomResolver: pomResolver}
}

// Resolve discovers a project's direct dependencies (Maven or Gradle,
// whichever manifest is present), walks the transitive graph, reconciles
// version conflicts, and returns the deduplicated artifact list. A
// project with neither manifest returns an empty list, not an error; a
// malformed root POM surfaces as a wrapped ErrInvalidManifest.
func (r *Resolver) Resolve(ctx context.Context, projectDir string) ([]*model.Artifact, error) {
	pomPath := filepath.Join(projectDir, "pom.xml")
	if _, err := os.Stat(pomPath); err == nil {
		return r.resolveMaven(ctx, projectDir, pomPath)
	}

	for _, name := range []string{"build.gradle.kts", "build.gradle"} {
		buildPath := filepath.Join(projectDir, name)
		if _, err := os.Stat(buildPath); err == nil {
			return r.resolveGradle(ctx, projectDir, buildPath)
		}
	}

	return []*model.Artifact{}, nil
}

func (r *Resolver) resolveMaven(ctx context.Context, projectDir, pomPath string) ([]*model.Artifact, error) {
	data, err := os.ReadFile(pomPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrInvalidManifest, pomPath, err)
	}

	root, err := pom.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidManifest, pomPath, err)
	}

	eff, err := r.pomResolver.EffectivePOMFromDocument(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidManifest, err)
	}

	direct := pom.ExtractDependencies(eff)
	return r.walkAndReconcile(ctx, direct)
}

func (r *Resolver) resolveGradle(ctx context.Context, projectDir, buildPath string) ([]*model.Artifact, error) {
	decls, err := gradleparse.ParseBuildScript(buildPath)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidManifest, buildPath, err)
	}

	var catalog *gradleparse.Catalog
	catalogPath := filepath.Join(projectDir, "gradle", "libs.versions.toml")
	if _, err := os.Stat(catalogPath); err == nil {
		catalog, err = gradleparse.ParseCatalog(catalogPath)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidManifest, catalogPath, err)
		}
	}

	// Gradle declarations mapped to test or provided scope are dropped, as
	// the Maven extractor drops those scopes.
	direct := make([]*model.Artifact, 0, len(decls))
	for _, a := range gradleparse.Resolve(decls, catalog) {
		if a.Scope == "test" || a.Scope == "provided" {
			continue
		}
		direct = append(direct, a)
	}
	return r.walkAndReconcile(ctx, direct)
}

func (r *Resolver) walkAndReconcile(ctx context.Context, direct []*model.Artifact) ([]*model.Artifact, error) {
	if len(direct) == 0 {
		return []*model.Artifact{}, nil
	}
	if err := r.walker.Walk(ctx, direct); err != nil {
		return nil, err
	}
	return reconcile.Reconcile(direct), nil
}

// Download streams every artifact's binary to outputDir, skipping files
// that already exist and skipping pom-packaged artifacts (BOMs and parent
// POMs resolve as graph nodes but have no jar to fetch). A download
// failure for one artifact is recorded via the Event Sink and does not
// abort the rest of the batch.
func (r *Resolver) Download(ctx context.Context, outputDir string, artifacts []*model.Artifact) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, a := range artifacts {
		if a.Packaging == "pom" {
			continue
		}
		if a.Repository == nil {
			r.sink.DownloadError(a, errs.ErrRepositoryUnresolved)
			continue
		}
		dest := filepath.Join(outputDir, a.FileName())
		if _, err := os.Stat(dest); err == nil {
			continue
		}

		r.sink.DownloadStart(a)
		if err := r.downloadOne(ctx, a, dest); err != nil {
			r.sink.DownloadError(a, err)
			continue
		}
		r.sink.DownloadEnd(a, dest)
	}
	return nil
}

func (r *Resolver) downloadOne(ctx context.Context, a *model.Artifact, dest string) error {
	url := a.Repository.ArtifactURL(a)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d for %s", errs.ErrDownloadFailed, resp.StatusCode, url)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", errs.ErrDownloadFailed, tmp, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", errs.ErrDownloadFailed, dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: closing %s: %v", errs.ErrDownloadFailed, dest, err)
	}
	return os.Rename(tmp, dest)
}
