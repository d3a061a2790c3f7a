package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/linkid"
	linkidhttp "github.com/fwojciec/linkid/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequester_FetchFollowingRedirects(t *testing.T) {
	t.Parallel()

	t.Run("follows redirect chain to final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/s/abc", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/mid", http.StatusFound)
		})
		mux.HandleFunc("/mid", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/video/7123456789012345678?from=share", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/video/", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(http.StatusOK)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		final, err := requester.FetchFollowingRedirects(context.Background(), server.URL+"/s/abc", "")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/video/7123456789012345678?from=share", final)
	})

	t.Run("falls back to GET when HEAD is rejected", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			methods = append(methods, r.Method+" "+r.URL.Path)
			mu.Unlock()
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if r.URL.Path == "/s" {
				http.Redirect(w, r, "/final", http.StatusFound)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		final, err := requester.FetchFollowingRedirects(context.Background(), server.URL+"/s", "")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/final", final)
		assert.Equal(t, []string{"HEAD /s", "GET /s", "GET /final"}, methods)
	})

	t.Run("stops after maximum redirects", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/loop", http.StatusFound)
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester(linkidhttp.WithMaxRedirects(3))
		defer requester.Close()

		_, err := requester.FetchFollowingRedirects(context.Background(), server.URL, "")

		require.Error(t, err)
		assert.Equal(t, linkid.EUPSTREAM, linkid.ErrorCode(err))
	})

	t.Run("returns upstream error for non-2xx final status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		_, err := requester.FetchFollowingRedirects(context.Background(), server.URL, "")

		require.Error(t, err)
		assert.Equal(t, linkid.EUPSTREAM, linkid.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("carries cookies across redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/s", func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "ttwid", Value: "abc", Path: "/"})
			http.Redirect(w, r, "/final", http.StatusFound)
		})
		mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie("ttwid")
			if err != nil || c.Value != "abc" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		final, err := requester.FetchFollowingRedirects(context.Background(), server.URL+"/s", "")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/final", final)
	})
}

func TestRequester_FetchText(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<script>{"roomId":"123"}</script>`))
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		body, err := requester.FetchText(context.Background(), server.URL, "")

		require.NoError(t, err)
		assert.Equal(t, `<script>{"roomId":"123"}</script>`, body)
	})

	t.Run("sends configured user agent and headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "linkid-test", r.Header.Get("User-Agent"))
			assert.Equal(t, "https://www.douyin.com/", r.Header.Get("Referer"))
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester(
			linkidhttp.WithUserAgent("linkid-test"),
			linkidhttp.WithHeaders(map[string]string{"Referer": "https://www.douyin.com/"}),
		)
		defer requester.Close()

		_, err := requester.FetchText(context.Background(), server.URL, "")
		require.NoError(t, err)
	})

	t.Run("routes requests through proxy", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		seen := map[string]string{}
		proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			seen[r.URL.Host] = r.Header.Get("Cookie")
			mu.Unlock()
			_, _ = w.Write([]byte("proxied " + r.URL.Host))
		}))
		defer proxy.Close()

		requester := linkidhttp.NewRequester(
			linkidhttp.WithHostHeaders("douyin.com", map[string]string{"Cookie": "sessionid=1"}),
		)
		defer requester.Close()

		body, err := requester.FetchText(context.Background(), "http://www.douyin.com/user/x", proxy.URL)
		require.NoError(t, err)
		assert.Equal(t, "proxied www.douyin.com", body)

		_, err = requester.FetchText(context.Background(), "http://www.tiktok.com/@x", proxy.URL)
		require.NoError(t, err)

		assert.Equal(t, "sessionid=1", seen["www.douyin.com"])
		assert.Empty(t, seen["www.tiktok.com"])
	})

	t.Run("rejects invalid proxy", func(t *testing.T) {
		t.Parallel()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		_, err := requester.FetchText(context.Background(), "http://example.com", "::not a proxy")

		require.Error(t, err)
		assert.Equal(t, linkid.EINVALID, linkid.ErrorCode(err))
	})

	t.Run("returns timeout error when server is slow", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester(linkidhttp.WithTimeout(10 * time.Millisecond))
		defer requester.Close()

		_, err := requester.FetchText(context.Background(), server.URL, "")

		require.Error(t, err)
		assert.Equal(t, linkid.ETIMEOUT, linkid.ErrorCode(err))
	})

	t.Run("returns canceled context unchanged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := requester.FetchText(ctx, server.URL, "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("returns unavailable error when connection is refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := server.URL
		server.Close()

		requester := linkidhttp.NewRequester()
		defer requester.Close()

		_, err := requester.FetchText(context.Background(), addr, "")

		require.Error(t, err)
		assert.Equal(t, linkid.EUNAVAILABLE, linkid.ErrorCode(err))
	})
}

// Compile-time verification that Requester implements linkid.Requester
var _ linkid.Requester = (*linkidhttp.Requester)(nil)
