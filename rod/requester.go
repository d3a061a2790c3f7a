// Package rod provides a headless-browser implementation of linkid.Requester
// for pages that only render their state with JavaScript.
package rod

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/linkid"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for a page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Requester implements linkid.Requester at compile time.
var _ linkid.Requester = (*Requester)(nil)

// Requester loads pages in Chrome. Browsers are launched lazily, one per
// proxy, on the first request that uses the proxy.
// Requester is safe for concurrent use by multiple goroutines.
type Requester struct {
	timeout  time.Duration
	maxPages int
	pool     *browserPool
}

// Option configures a Requester.
type Option func(*Requester)

// WithTimeout sets the timeout for a page load.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) {
		r.timeout = d
	}
}

// WithBrowserMaxPages sets the number of pages after which a browser is recycled.
func WithBrowserMaxPages(n int) Option {
	return func(r *Requester) {
		r.maxPages = n
	}
}

// NewRequester creates a new Requester. No browser is launched until the
// first request. Close must be called when the Requester is no longer needed.
func NewRequester(opts ...Option) *Requester {
	r := &Requester{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pool = newBrowserPool(r.maxPages)
	return r
}

// FetchFollowingRedirects loads url and returns the URL the page settled on
// after server and script redirects.
func (r *Requester) FetchFollowingRedirects(ctx context.Context, url, proxy string) (string, error) {
	var final string
	err := r.withPage(ctx, url, proxy, func(page *rod.Page) error {
		info, err := page.Info()
		if err != nil {
			return err
		}
		final = info.URL
		return nil
	})
	if err != nil {
		return "", err
	}
	return final, nil
}

// FetchText loads url and returns the rendered HTML.
func (r *Requester) FetchText(ctx context.Context, url, proxy string) (string, error) {
	var html string
	err := r.withPage(ctx, url, proxy, func(page *rod.Page) error {
		var err error
		html, err = page.HTML()
		return err
	})
	if err != nil {
		return "", err
	}
	return html, nil
}

// Close releases every launched browser. Close is safe to call multiple
// times.
func (r *Requester) Close() error {
	return r.pool.close()
}

// withPage opens url in a fresh page, waits for it to load and calls fn.
func (r *Requester) withPage(ctx context.Context, url, proxy string, fn func(*rod.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	browser, release, err := r.pool.acquire(proxy)
	if err != nil {
		return err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return linkid.Errorf(linkid.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(r.timeout)

	if err := page.Navigate(url); err != nil {
		return classify(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return classify(url, err)
	}
	if err := fn(page); err != nil {
		return classify(url, err)
	}
	return nil
}

// classify maps browser errors onto application error codes. Caller
// cancellation is returned unchanged.
func classify(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return linkid.Errorf(linkid.ETIMEOUT, "loading %s timed out", url)
	}
	var navErr *rod.NavigationError
	if errors.As(err, &navErr) {
		return linkid.Errorf(linkid.EUNAVAILABLE, "loading %s: %s", url, navErr.Reason)
	}
	return linkid.Errorf(linkid.EINTERNAL, "loading %s: %v", url, err)
}
