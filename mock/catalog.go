package mock

import (
	"context"

	"github.com/fwojciec/goldcard"
)

var _ goldcard.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of goldcard.Catalog.
type Catalog struct {
	EntriesFn func(ctx context.Context, skip int) ([]goldcard.CatalogEntry, error)
}

func (c *Catalog) Entries(ctx context.Context, skip int) ([]goldcard.CatalogEntry, error) {
	return c.EntriesFn(ctx, skip)
}
