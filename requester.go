package linkid

import "context"

// Requester performs the outbound network calls the extractor depends on.
// Implementations must be safe for concurrent use.
type Requester interface {
	// FetchFollowingRedirects requests url, follows redirects, and returns
	// the final URL. An empty proxy means a direct connection.
	FetchFollowingRedirects(ctx context.Context, url, proxy string) (string, error)

	// FetchText requests url and returns the response body.
	FetchText(ctx context.Context, url, proxy string) (string, error)
}

// HostLimiter provides per-host rate limiting of outbound requests.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
