package harvest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/goldcard"
	"github.com/fwojciec/goldcard/harvest"
	"github.com/fwojciec/goldcard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogOf returns a mock catalog holding n entries Gi01..Gin that honors skip.
func catalogOf(n int) *mock.Catalog {
	return &mock.Catalog{
		EntriesFn: func(_ context.Context, skip int) ([]goldcard.CatalogEntry, error) {
			var entries []goldcard.CatalogEntry
			for i := skip; i < n; i++ {
				entries = append(entries, goldcard.CatalogEntry{
					Goldstamp: fmt.Sprintf("Gi%02d", i+1),
					Line:      i + 2,
				})
			}
			return entries, nil
		},
	}
}

func pageSource() *mock.PageSource {
	return &mock.PageSource{
		PageFn: func(_ context.Context, goldstamp string) (*goldcard.Page, error) {
			return &goldcard.Page{Goldstamp: goldstamp, HTML: "<b>" + goldstamp + "</b>"}, nil
		},
	}
}

func stampExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(goldstamp, html string) (*goldcard.Record, error) {
			r := goldcard.NewRecord(goldstamp)
			r.Set("HTML", html)
			return r, nil
		},
	}
}

// collector records the goldstamps it is asked to write.
func collector(written *[]string) *mock.RecordWriter {
	return &mock.RecordWriter{
		WriteRecordFn: func(_ context.Context, record *goldcard.Record) error {
			*written = append(*written, record.Goldstamp)
			return nil
		},
	}
}

func TestHarvester_Run(t *testing.T) {
	t.Parallel()

	t.Run("unbounded run processes every entry", func(t *testing.T) {
		t.Parallel()

		var written []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(3),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&written)},
		}

		n, err := h.Run(context.Background(), harvest.Options{})

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"Gi01", "Gi02", "Gi03"}, written)
	})

	t.Run("skip is passed to the catalog", func(t *testing.T) {
		t.Parallel()

		var written []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(5),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&written)},
		}

		_, err := h.Run(context.Background(), harvest.Options{Skip: 2})

		require.NoError(t, err)
		assert.Equal(t, []string{"Gi03", "Gi04", "Gi05"}, written)
	})

	t.Run("limit admits one entry beyond its value", func(t *testing.T) {
		t.Parallel()

		var written []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(10),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&written)},
		}

		n, err := h.Run(context.Background(), harvest.Options{Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"Gi01", "Gi02", "Gi03"}, written)
	})

	t.Run("every writer receives every record in order", func(t *testing.T) {
		t.Parallel()

		var first, second []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(2),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&first), collector(&second)},
		}

		_, err := h.Run(context.Background(), harvest.Options{})

		require.NoError(t, err)
		assert.Equal(t, []string{"Gi01", "Gi02"}, first)
		assert.Equal(t, first, second)
	})

	t.Run("progress reports skip index and cache state", func(t *testing.T) {
		t.Parallel()

		source := &mock.PageSource{
			PageFn: func(_ context.Context, goldstamp string) (*goldcard.Page, error) {
				return &goldcard.Page{Goldstamp: goldstamp, Cached: goldstamp == "Gi03"}, nil
			},
		}
		var progress []goldcard.HarvestProgress
		h := &harvest.Harvester{
			Catalog:   catalogOf(4),
			Source:    source,
			Extractor: stampExtractor(),
		}

		_, err := h.Run(context.Background(), harvest.Options{
			Skip:     1,
			Progress: func(p goldcard.HarvestProgress) { progress = append(progress, p) },
		})

		require.NoError(t, err)
		require.Len(t, progress, 3)
		assert.Equal(t, 1, progress[0].Skip)
		assert.Equal(t, 0, progress[0].Index)
		assert.Equal(t, "Gi02", progress[0].Goldstamp)
		assert.False(t, progress[0].Cached)
		assert.True(t, progress[1].Cached)
		assert.Equal(t, "Gi03", progress[1].Record.Goldstamp)
		assert.Equal(t, 2, progress[2].Index)
	})

	t.Run("fetch error aborts run keeping earlier records", func(t *testing.T) {
		t.Parallel()

		source := &mock.PageSource{
			PageFn: func(_ context.Context, goldstamp string) (*goldcard.Page, error) {
				if goldstamp == "Gi02" {
					return nil, errors.New("connection reset")
				}
				return &goldcard.Page{Goldstamp: goldstamp}, nil
			},
		}
		var written []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(3),
			Source:    source,
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&written)},
		}

		n, err := h.Run(context.Background(), harvest.Options{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Gi02")
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"Gi01"}, written)
	})

	t.Run("writer error aborts run", func(t *testing.T) {
		t.Parallel()

		calls := 0
		h := &harvest.Harvester{
			Catalog:   catalogOf(3),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers: []goldcard.RecordWriter{&mock.RecordWriter{
				WriteRecordFn: func(context.Context, *goldcard.Record) error {
					calls++
					return errors.New("read-only file system")
				},
			}},
		}

		n, err := h.Run(context.Background(), harvest.Options{})

		require.Error(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, 1, calls)
	})

	t.Run("catalog error is returned", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Harvester{
			Catalog: &mock.Catalog{
				EntriesFn: func(context.Context, int) ([]goldcard.CatalogEntry, error) {
					return nil, errors.New("no such file")
				},
			},
		}

		_, err := h.Run(context.Background(), harvest.Options{})

		require.Error(t, err)
	})

	t.Run("canceled context stops before the next entry", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var written []string
		h := &harvest.Harvester{
			Catalog:   catalogOf(5),
			Source:    pageSource(),
			Extractor: stampExtractor(),
			Writers:   []goldcard.RecordWriter{collector(&written)},
		}

		n, err := h.Run(ctx, harvest.Options{
			Progress: func(goldcard.HarvestProgress) { cancel() },
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"Gi01"}, written)
	})
}
