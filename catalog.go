package goldcard

import "context"

// CatalogEntry is one data line of the GOLD catalog.
type CatalogEntry struct {
	// Goldstamp identifies the card, e.g. Gi0046999.
	Goldstamp string

	// Line is the 1-based line number in the catalog file.
	Line int
}

// Catalog lists the goldstamps to harvest.
type Catalog interface {
	// Entries returns the catalog's data lines in order, after discarding
	// the header line and then skip further lines.
	Entries(ctx context.Context, skip int) ([]CatalogEntry, error)
}
