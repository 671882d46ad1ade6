package mock

import (
	"context"

	"github.com/fwojciec/goldcard"
)

var _ goldcard.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of goldcard.PageCache.
type PageCache struct {
	LoadFn  func(ctx context.Context, goldstamp string) (string, error)
	StoreFn func(ctx context.Context, goldstamp, html string) error
}

func (c *PageCache) Load(ctx context.Context, goldstamp string) (string, error) {
	return c.LoadFn(ctx, goldstamp)
}

func (c *PageCache) Store(ctx context.Context, goldstamp, html string) error {
	return c.StoreFn(ctx, goldstamp, html)
}

var _ goldcard.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of goldcard.PageSource.
type PageSource struct {
	PageFn func(ctx context.Context, goldstamp string) (*goldcard.Page, error)
}

func (s *PageSource) Page(ctx context.Context, goldstamp string) (*goldcard.Page, error) {
	return s.PageFn(ctx, goldstamp)
}
