package mock

import "github.com/fwojciec/goldcard"

var _ goldcard.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of goldcard.Extractor.
type Extractor struct {
	ExtractFn func(goldstamp, html string) (*goldcard.Record, error)
}

func (e *Extractor) Extract(goldstamp, html string) (*goldcard.Record, error) {
	return e.ExtractFn(goldstamp, html)
}
