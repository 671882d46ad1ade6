package mock

import (
	"context"

	"github.com/fwojciec/goldcard"
)

var _ goldcard.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of goldcard.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, record *goldcard.Record) error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, record *goldcard.Record) error {
	return w.WriteRecordFn(ctx, record)
}
