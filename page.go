package goldcard

import "context"

// Page is the HTML card for a goldstamp.
type Page struct {
	Goldstamp string
	HTML      string

	// Cached reports whether the page was served from the page cache
	// without a network request.
	Cached bool
}

// PageCache stores fetched cards on local storage. A cached page is
// trusted forever; there is no expiry.
type PageCache interface {
	// Load returns the cached HTML for a goldstamp.
	// Returns ENOTFOUND if the page has not been cached.
	Load(ctx context.Context, goldstamp string) (string, error)

	// Store saves the HTML for a goldstamp.
	Store(ctx context.Context, goldstamp, html string) error
}

// PageSource returns the card for a goldstamp, from the cache when
// possible and from the network otherwise.
type PageSource interface {
	Page(ctx context.Context, goldstamp string) (*Page, error)
}
