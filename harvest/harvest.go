// Package harvest drives a GOLD card harvest: it walks the catalog, loads
// each card through a page source, extracts its record and hands the record
// to the configured writers.
package harvest

import (
	"context"
	"fmt"

	"github.com/fwojciec/goldcard"
)

// Harvester runs a single synchronous pass over the catalog.
type Harvester struct {
	Catalog   goldcard.Catalog
	Source    goldcard.PageSource
	Extractor goldcard.Extractor

	// Writers receive every record in order. The first writer error
	// aborts the run; rows already written stay written.
	Writers []goldcard.RecordWriter
}

// Options bound a harvest run.
type Options struct {
	// Limit stops the run once the entry index exceeds it, so Limit+1
	// entries are processed. Zero means no limit.
	Limit int

	// Skip is the number of catalog lines discarded after the header.
	Skip int

	// Progress is called after each record is written. Optional.
	Progress goldcard.HarvestProgressFunc
}

// Run harvests the catalog and returns the number of records written.
func (h *Harvester) Run(ctx context.Context, opts Options) (int, error) {
	entries, err := h.Catalog.Entries(ctx, opts.Skip)
	if err != nil {
		return 0, err
	}

	written := 0
	for i, entry := range entries {
		if opts.Limit > 0 && i > opts.Limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}

		page, err := h.Source.Page(ctx, entry.Goldstamp)
		if err != nil {
			return written, fmt.Errorf("fetching %s (catalog line %d): %w", entry.Goldstamp, entry.Line, err)
		}

		record, err := h.Extractor.Extract(entry.Goldstamp, page.HTML)
		if err != nil {
			return written, fmt.Errorf("extracting %s: %w", entry.Goldstamp, err)
		}

		for _, w := range h.Writers {
			if err := w.WriteRecord(ctx, record); err != nil {
				return written, fmt.Errorf("writing %s: %w", entry.Goldstamp, err)
			}
		}
		written++

		if opts.Progress != nil {
			opts.Progress(goldcard.HarvestProgress{
				Skip:      opts.Skip,
				Index:     i,
				Goldstamp: entry.Goldstamp,
				Cached:    page.Cached,
				Record:    record,
			})
		}
	}

	return written, nil
}
