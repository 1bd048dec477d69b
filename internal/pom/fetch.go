package pom

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"depresolve/internal/errs"
	"depresolve/internal/model"
)

// Fetch issues a GET against the artifact's POM URL on the given
// repository and decodes the body as XML. A non-2xx status or transport
// failure surfaces errs.ErrVersionNotFound; malformed XML or a mid-stream
// read failure surfaces errs.ErrInvalidPOM.
func Fetch(ctx context.Context, client *http.Client, repo *model.Repository, a *model.Artifact) (*POM, error) {
	url := repo.POMURL(a)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", errs.ErrVersionNotFound, url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrVersionNotFound, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: HTTP %d", errs.ErrVersionNotFound, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrInvalidPOM, url, err)
	}

	var parsed POM
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidPOM, url, err)
	}

	if parsed.GroupID == "" {
		parsed.GroupID = a.GroupID
	}
	if parsed.ArtifactID == "" {
		parsed.ArtifactID = a.ArtifactID
	}
	if parsed.Version == "" {
		parsed.Version = a.Version
	}

	return &parsed, nil
}

// ParseBytes decodes an already-read pom.xml document, used for a
// project's own root manifest which is read from local disk rather than
// fetched from a repository.
func ParseBytes(data []byte) (*POM, error) {
	var parsed POM
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPOM, err)
	}
	return &parsed, nil
}
