package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/goldcard"
)

// Ensure PageCache implements goldcard.PageCache at compile time.
var _ goldcard.PageCache = (*PageCache)(nil)

// PageCache implements goldcard.PageCache with one <goldstamp>.html file
// per card inside a directory. The presence of the file means the card has
// been fetched.
type PageCache struct {
	dir string
}

// NewPageCache creates a new PageCache rooted at dir.
// The directory is created on the first Store.
func NewPageCache(dir string) *PageCache {
	return &PageCache{dir: dir}
}

// Path returns the cache file path for a goldstamp.
func (c *PageCache) Path(goldstamp string) (string, error) {
	if goldstamp == "" || goldstamp == "." || goldstamp == ".." ||
		strings.ContainsAny(goldstamp, `/\`) || strings.ContainsRune(goldstamp, os.PathSeparator) {
		return "", goldcard.Errorf(goldcard.EINVALID, "invalid goldstamp %q", goldstamp)
	}
	return filepath.Join(c.dir, goldstamp+".html"), nil
}

// Load reads the cached card. Returns ENOTFOUND if no regular file exists
// for the goldstamp.
func (c *PageCache) Load(ctx context.Context, goldstamp string) (string, error) {
	path, err := c.Path(goldstamp)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", goldcard.Errorf(goldcard.ENOTFOUND, "page %s not cached", goldstamp)
	} else if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", goldcard.Errorf(goldcard.ENOTFOUND, "page %s not cached", goldstamp)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading cached page %s: %w", goldstamp, err)
	}
	return string(b), nil
}

// Store writes the card to a temporary file and renames it into place, so
// an interrupted write never leaves a partial page behind.
func (c *PageCache) Store(ctx context.Context, goldstamp, html string) error {
	path, err := c.Path(goldstamp)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, goldstamp+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
