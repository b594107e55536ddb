package demonchart

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// blogs; the default implementation issues a plain HTTP request.
type Fetcher interface {
	// Fetch retrieves the document at url. A non-success response status is
	// a transport error: extraction aborts and nothing is returned.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RefreshLimiter throttles refresh fetches per domain.
type RefreshLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
