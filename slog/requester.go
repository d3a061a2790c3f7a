// Package slog provides logging decorators for the linkid services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkid"
)

// Ensure LoggingRequester implements linkid.Requester.
var _ linkid.Requester = (*LoggingRequester)(nil)

// LoggingRequester wraps a Requester with logging. Successful calls are
// logged at debug level, failures at warn level.
type LoggingRequester struct {
	next   linkid.Requester
	logger *slog.Logger
}

// NewLoggingRequester creates a new LoggingRequester.
func NewLoggingRequester(next linkid.Requester, logger *slog.Logger) *LoggingRequester {
	return &LoggingRequester{next: next, logger: logger}
}

// FetchFollowingRedirects delegates to the wrapped requester and logs the result.
func (r *LoggingRequester) FetchFollowingRedirects(ctx context.Context, url, proxy string) (resolved string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("resolve failed",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		r.logger.Debug("resolve",
			"url", url,
			"resolved", resolved,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.FetchFollowingRedirects(ctx, url, proxy)
}

// FetchText delegates to the wrapped requester and logs the result.
func (r *LoggingRequester) FetchText(ctx context.Context, url, proxy string) (body string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("fetch failed",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		r.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.FetchText(ctx, url, proxy)
}
