package harvest

import (
	"context"
	"log/slog"

	"github.com/fwojciec/goldcard"
)

// Ensure Source implements goldcard.PageSource at compile time.
var _ goldcard.PageSource = (*Source)(nil)

// Source returns GOLD cards from the page cache, fetching and caching the
// ones it does not have yet.
type Source struct {
	Cache   goldcard.PageCache
	Fetcher goldcard.Fetcher

	// Formatter normalizes fetched HTML before it is cached.
	// Optional; the fetched HTML is cached unchanged when nil.
	Formatter goldcard.Formatter

	// Endpoint is the card endpoint. Defaults to goldcard.DefaultEndpoint.
	Endpoint string

	// Logger receives cache write failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Page returns the card for goldstamp. A cached card is returned without a
// network request. Fetch errors are returned as is; a failure to cache the
// fetched card is logged and does not fail the call.
func (s *Source) Page(ctx context.Context, goldstamp string) (*goldcard.Page, error) {
	html, err := s.Cache.Load(ctx, goldstamp)
	if err == nil {
		return &goldcard.Page{Goldstamp: goldstamp, HTML: html, Cached: true}, nil
	}
	if goldcard.ErrorCode(err) != goldcard.ENOTFOUND {
		return nil, err
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = goldcard.DefaultEndpoint
	}
	url, err := goldcard.CardURL(endpoint, goldstamp)
	if err != nil {
		return nil, err
	}

	html, err = s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	s.store(ctx, goldstamp, html)

	return &goldcard.Page{Goldstamp: goldstamp, HTML: html}, nil
}

// store caches the fetched card, logging rather than returning failures.
func (s *Source) store(ctx context.Context, goldstamp, html string) {
	content := html
	if s.Formatter != nil {
		content = s.Formatter.Format(html)
	}

	if err := s.Cache.Store(ctx, goldstamp, content); err != nil {
		s.logger().Warn("failed to cache page",
			"goldstamp", goldstamp,
			"err", err,
		)
	}
}

func (s *Source) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
