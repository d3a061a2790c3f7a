package extract

import (
	"context"
	"time"

	"github.com/fwojciec/linkid"
)

// DefaultRetryDelays returns the backoff delays for page fetch retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

var _ linkid.Requester = (*RetryRequester)(nil)

// RetryRequester retries page fetches that failed with a timeout or a
// connection error. Redirect resolution is never retried, so each short link
// costs exactly one request.
type RetryRequester struct {
	Requester linkid.Requester

	// Delays holds the wait before each retry. Nil means no retries.
	Delays []time.Duration
}

// FetchFollowingRedirects delegates to the wrapped requester once.
func (r *RetryRequester) FetchFollowingRedirects(ctx context.Context, url, proxy string) (string, error) {
	return r.Requester.FetchFollowingRedirects(ctx, url, proxy)
}

// FetchText fetches url, retrying transient failures after each delay.
func (r *RetryRequester) FetchText(ctx context.Context, url, proxy string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(r.Delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.Delays[attempt-1]):
			}
		}

		body, err := r.Requester.FetchText(ctx, url, proxy)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !transient(err) {
			break
		}
	}
	return "", lastErr
}

// transient reports whether err may succeed on a later attempt.
func transient(err error) bool {
	switch linkid.ErrorCode(err) {
	case linkid.ETIMEOUT, linkid.EUNAVAILABLE:
		return true
	}
	return false
}
