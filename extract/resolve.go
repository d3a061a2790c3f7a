package extract

import (
	"context"

	"github.com/fwojciec/linkid"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves short links through a Requester. Failures are returned
// as outcomes and never abort the caller.
type Resolver struct {
	Requester linkid.Requester
	Limiter   linkid.HostLimiter
}

// Resolve performs one redirect-following request for rawURL.
func (r *Resolver) Resolve(ctx context.Context, rawURL, proxy string) linkid.Outcome {
	outcome := linkid.Outcome{URL: rawURL}
	if err := waitHost(ctx, r.Limiter, rawURL); err != nil {
		outcome.Err = err
		return outcome
	}
	resolved, err := r.Requester.FetchFollowingRedirects(ctx, rawURL, proxy)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Resolved = resolved
	return outcome
}

// ResolveAll resolves urls and returns outcomes in the order of urls.
// With concurrency <= 1 the links are resolved one at a time.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string, proxy string, concurrency int) []linkid.Outcome {
	return ordered(ctx, len(urls), concurrency, func(ctx context.Context, i int) linkid.Outcome {
		return r.Resolve(ctx, urls[i], proxy)
	})
}

// ordered calls fn for every index in [0, n) with at most limit calls in
// flight and returns the results by index.
func ordered[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) T) []T {
	results := make([]T, n)
	if limit <= 1 || n <= 1 {
		for i := range n {
			results[i] = fn(ctx, i)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range n {
		g.Go(func() error {
			results[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
