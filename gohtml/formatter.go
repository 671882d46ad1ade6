// Package gohtml pretty-prints HTML with github.com/yosssi/gohtml.
package gohtml

import (
	"github.com/fwojciec/goldcard"
	"github.com/yosssi/gohtml"
)

// Ensure Formatter implements goldcard.Formatter at compile time.
var _ goldcard.Formatter = (*Formatter)(nil)

// Formatter indents HTML one element per line so cached cards are
// readable and diffable.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns the indented HTML.
func (f *Formatter) Format(html string) string {
	return gohtml.Format(html)
}
