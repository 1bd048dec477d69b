// Package httpclient builds the shared, internally thread-safe HTTP
// client every fetch in the resolution pipeline issues requests through.
package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Options configures the shared client.
type Options struct {
	// RetryMax is the maximum number of retries for a transient failure.
	// Zero uses the package default of 3.
	RetryMax int
	// Timeout bounds each HTTP attempt; every retry gets its own timeout.
	// Zero uses 30s.
	Timeout time.Duration
}

// New builds a *http.Client wrapping retryablehttp's retry/backoff policy.
// The returned client is safe for concurrent use by every walker task and
// the downloader alike, sharing one connection pool.
func New(opts Options) *http.Client {
	retryMax := opts.RetryMax
	if retryMax == 0 {
		retryMax = 3
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil // the Event Sink is the single logging surface
	rc.HTTPClient.Timeout = timeout

	return rc.StandardClient()
}
