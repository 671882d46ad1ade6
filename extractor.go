package goldcard

// Extractor turns a GOLD card into a record.
type Extractor interface {
	// Extract reads the label/value pairs from the table headers of the
	// HTML. Missing structure yields None values rather than errors.
	Extract(goldstamp, html string) (*Record, error)
}
