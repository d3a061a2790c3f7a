package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkid"
	"github.com/google/uuid"
)

// Ensure LoggingExtractor implements linkid.Extractor.
var _ linkid.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Each call is tagged
// with a fresh request id.
type LoggingExtractor struct {
	next   linkid.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkid.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs a summary along with
// every short link or page that could not be fetched.
func (e *LoggingExtractor) Extract(ctx context.Context, req linkid.Request) (result *linkid.Result, err error) {
	logger := e.logger.With("request_id", uuid.NewString())
	defer func(begin time.Time) {
		if result != nil {
			for _, f := range result.Failures {
				logger.Warn("unresolved link",
					"url", f.URL,
					"reason", string(f.Reason()),
					"err", f.Err,
				)
			}
		}
		platform := req.Platform
		if result != nil {
			platform = result.Platform
		}
		attrs := []any{
			"platform", string(platform),
			"category", string(req.Category),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"ids", len(result.IDs),
				"failures", len(result.Failures),
			)
			if result.Mix != nil {
				attrs = append(attrs, "mix", result.Mix.Flag.String())
			}
		}
		attrs = append(attrs, "err", err)
		logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, req)
}
