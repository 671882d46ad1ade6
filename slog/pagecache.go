package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/goldcard"
)

// Ensure LoggingPageCache implements goldcard.PageCache.
var _ goldcard.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging of hits, misses
// and writes.
type LoggingPageCache struct {
	next   goldcard.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next goldcard.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

// Load delegates to the wrapped cache. A miss is not logged as an error.
func (c *LoggingPageCache) Load(ctx context.Context, goldstamp string) (html string, err error) {
	defer func(begin time.Time) {
		switch {
		case err == nil:
			c.logger.Debug("cache hit",
				"goldstamp", goldstamp,
				"bytes", len(html),
				"duration", time.Since(begin),
			)
		case goldcard.ErrorCode(err) == goldcard.ENOTFOUND:
			c.logger.Debug("cache miss", "goldstamp", goldstamp)
		default:
			c.logger.Error("cache load",
				"goldstamp", goldstamp,
				"err", err,
			)
		}
	}(time.Now())

	return c.next.Load(ctx, goldstamp)
}

// Store delegates to the wrapped cache. Failures are left to the caller
// to report.
func (c *LoggingPageCache) Store(ctx context.Context, goldstamp, html string) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			return
		}
		c.logger.Debug("cache store",
			"goldstamp", goldstamp,
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return c.next.Store(ctx, goldstamp, html)
}
