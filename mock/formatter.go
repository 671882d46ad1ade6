package mock

import "github.com/fwojciec/goldcard"

var _ goldcard.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of goldcard.Formatter.
type Formatter struct {
	FormatFn func(html string) string
}

func (f *Formatter) Format(html string) string {
	return f.FormatFn(html)
}
