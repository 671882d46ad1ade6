package goldcard

// HarvestProgress reports a harvested record.
type HarvestProgress struct {
	// Skip is the number of catalog lines discarded after the header.
	Skip int

	// Index is the zero-based position of the entry after the skipped lines.
	Index int

	Goldstamp string
	Cached    bool
	Record    *Record
}

// HarvestProgressFunc is called after each record is written.
type HarvestProgressFunc func(HarvestProgress)
