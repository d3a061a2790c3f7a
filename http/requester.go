// Package http provides the net/http implementation of linkid.Requester
// used to resolve short links and fetch pages for id mining.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/linkid"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxRedirects bounds the redirect chain of a single request.
const DefaultMaxRedirects = 10

// DefaultUserAgent is sent when no user agent is configured. Both platforms
// serve their share redirects to desktop browsers.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// MaxBodySize caps the number of bytes read from a page body.
const MaxBodySize = 10 << 20

var errTooManyRedirects = errors.New("too many redirects")

// Ensure Requester implements linkid.Requester at compile time.
var _ linkid.Requester = (*Requester)(nil)

// Requester performs redirect resolution and page fetches over HTTP.
// It keeps one client per proxy URL and shares a cookie jar between them.
// Requester is safe for concurrent use by multiple goroutines.
type Requester struct {
	timeout      time.Duration
	userAgent    string
	headers      http.Header
	hostHeaders  map[string]http.Header
	maxRedirects int
	jar          http.CookieJar

	mu      sync.Mutex
	clients map[string]*http.Client
}

// Option configures a Requester.
type Option func(*Requester)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Requester) {
		r.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(r *Requester) {
		r.userAgent = ua
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(r *Requester) {
		for k, v := range headers {
			r.headers.Set(k, v)
		}
	}
}

// WithHostHeaders adds headers sent only to hosts under the registrable
// domain, such as a platform's cookie.
func WithHostHeaders(domain string, headers map[string]string) Option {
	return func(r *Requester) {
		domain = strings.ToLower(domain)
		h, ok := r.hostHeaders[domain]
		if !ok {
			h = make(http.Header)
			r.hostHeaders[domain] = h
		}
		for k, v := range headers {
			h.Set(k, v)
		}
	}
}

// WithMaxRedirects sets the maximum number of redirects followed.
func WithMaxRedirects(n int) Option {
	return func(r *Requester) {
		r.maxRedirects = n
	}
}

// NewRequester creates a new HTTP-based Requester.
func NewRequester(opts ...Option) *Requester {
	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	r := &Requester{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		headers:      make(http.Header),
		hostHeaders:  make(map[string]http.Header),
		maxRedirects: DefaultMaxRedirects,
		jar:          jar,
		clients:      make(map[string]*http.Client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchFollowingRedirects requests rawURL with HEAD, follows redirects and
// returns the final URL. Servers that reject HEAD are retried with GET.
func (r *Requester) FetchFollowingRedirects(ctx context.Context, rawURL, proxy string) (string, error) {
	resp, err := r.do(ctx, http.MethodHead, rawURL, proxy)
	if err == nil && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented) {
		resp.Body.Close()
		resp, err = r.do(ctx, http.MethodGet, rawURL, proxy)
	}
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, rawURL); err != nil {
		return "", err
	}
	return resp.Request.URL.String(), nil
}

// FetchText requests rawURL with GET and returns the response body.
func (r *Requester) FetchText(ctx context.Context, rawURL, proxy string) (string, error) {
	resp, err := r.do(ctx, http.MethodGet, rawURL, proxy)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, rawURL); err != nil {
		return "", err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", classify(rawURL, err)
	}
	return string(body), nil
}

// Close releases idle connections held by every client.
func (r *Requester) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		c.CloseIdleConnections()
	}
	return nil
}

func (r *Requester) do(ctx context.Context, method, rawURL, proxy string) (*http.Response, error) {
	client, err := r.client(proxy)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, linkid.Errorf(linkid.EINVALID, "invalid url %q", rawURL)
	}
	r.decorate(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	return resp, nil
}

// decorate sets the configured headers on req.
func (r *Requester) decorate(req *http.Request) {
	req.Header.Set("User-Agent", r.userAgent)
	for k, v := range r.headers {
		req.Header[k] = v
	}
	if len(r.hostHeaders) == 0 {
		return
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(req.URL.Hostname()))
	if err != nil {
		return
	}
	for k, v := range r.hostHeaders[domain] {
		req.Header[k] = v
	}
}

// client returns the client for proxy, creating it on first use.
// An empty proxy means a direct connection; the environment is ignored.
func (r *Requester) client(proxy string) (*http.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[proxy]; ok {
		return c, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, linkid.Errorf(linkid.EINVALID, "invalid proxy %q", proxy)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	c := &http.Client{
		Transport: transport,
		Timeout:   r.timeout,
		Jar:       r.jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= r.maxRedirects {
				return errTooManyRedirects
			}
			r.decorate(req)
			return nil
		},
	}
	r.clients[proxy] = c
	return c, nil
}

func checkStatus(resp *http.Response, rawURL string) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return linkid.Errorf(linkid.EUPSTREAM, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return nil
}

// classify maps transport errors onto application error codes. Context
// cancellation is returned unchanged so callers can detect it.
func classify(rawURL string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, errTooManyRedirects) {
		return linkid.Errorf(linkid.EUPSTREAM, "too many redirects for %s", rawURL)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return linkid.Errorf(linkid.ETIMEOUT, "request to %s timed out", rawURL)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return linkid.Errorf(linkid.ETIMEOUT, "request to %s timed out", rawURL)
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return linkid.Errorf(linkid.EUNAVAILABLE, "cannot reach %s", rawURL)
	}
	return fmt.Errorf("request %s: %w", rawURL, err)
}
