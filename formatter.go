package goldcard

// Formatter normalizes HTML before it is written to the page cache.
type Formatter interface {
	Format(html string) string
}
