package mock

import (
	"context"

	"github.com/fwojciec/linkid"
)

var _ linkid.Requester = (*Requester)(nil)

// Requester is a mock implementation of linkid.Requester.
type Requester struct {
	FetchFollowingRedirectsFn func(ctx context.Context, url, proxy string) (string, error)
	FetchTextFn               func(ctx context.Context, url, proxy string) (string, error)
}

func (r *Requester) FetchFollowingRedirects(ctx context.Context, url, proxy string) (string, error) {
	return r.FetchFollowingRedirectsFn(ctx, url, proxy)
}

func (r *Requester) FetchText(ctx context.Context, url, proxy string) (string, error) {
	return r.FetchTextFn(ctx, url, proxy)
}

var _ linkid.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of linkid.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
