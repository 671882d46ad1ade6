// Package fs provides file-based storage for GOLD cards and harvested records.
package fs

import (
	"context"
	"os"
	"strings"

	"github.com/fwojciec/goldcard"
)

// Ensure TSVWriter implements goldcard.RecordWriter at compile time.
var _ goldcard.RecordWriter = (*TSVWriter)(nil)

// TSVWriter appends records to a tab-separated file. The file is opened
// and closed for every record so rows already written survive a crash.
//
// A header line with the record's labels is written only when the file
// does not exist yet. Later rows carry just their own values in their own
// label order, so rows of differently shaped records do not line up.
type TSVWriter struct {
	path string
}

// NewTSVWriter creates a new TSVWriter for the file at path.
func NewTSVWriter(path string) *TSVWriter {
	return &TSVWriter{path: path}
}

// WriteRecord appends the record's values, preceded by a header line if the
// output file did not exist.
func (w *TSVWriter) WriteRecord(ctx context.Context, record *goldcard.Record) error {
	_, err := os.Stat(w.path)
	exists := err == nil

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	var b strings.Builder
	if !exists {
		b.WriteString(strings.Join(record.Labels(), "\t"))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Join(record.Values(), "\t"))
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
