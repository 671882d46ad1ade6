package fs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/goldcard"
)

// maxLineSize bounds a single catalog line.
const maxLineSize = 1 << 20

// Ensure Catalog implements goldcard.Catalog at compile time.
var _ goldcard.Catalog = (*Catalog)(nil)

// Catalog reads goldstamps from a tab-separated catalog file whose first
// line is a header and whose first column is a quoted goldstamp.
type Catalog struct {
	path string
}

// NewCatalog creates a new Catalog for the file at path.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Entries discards the header line and then skip further lines, and returns
// the remaining entries. Skipping past the end of the file yields no entries.
// Blank lines are ignored.
func (c *Catalog) Entries(ctx context.Context, skip int) ([]goldcard.CatalogEntry, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return ReadCatalog(f, skip)
}

// ReadCatalog reads catalog entries from r. See Catalog.Entries.
func ReadCatalog(r io.Reader, skip int) ([]goldcard.CatalogEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	// Header plus skipped lines.
	discard := 1 + max(skip, 0)

	var entries []goldcard.CatalogEntry
	line := 0
	for scanner.Scan() {
		line++
		if line <= discard {
			continue
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		entries = append(entries, goldcard.CatalogEntry{
			Goldstamp: ParseGoldstamp(text),
			Line:      line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog line %d: %w", line+1, err)
	}

	return entries, nil
}

// ParseGoldstamp returns the first tab-separated column of a catalog line
// with exactly one leading and one trailing character removed.
// Example: "\"Gi0046999\"\tEscherichia coli" → Gi0046999
func ParseGoldstamp(line string) string {
	col, _, _ := strings.Cut(strings.TrimSpace(line), "\t")

	_, first := utf8.DecodeRuneInString(col)
	col = col[first:]
	_, last := utf8.DecodeLastRuneInString(col)
	return col[:len(col)-last]
}
