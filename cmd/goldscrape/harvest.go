package main

import (
	"fmt"

	"github.com/fwojciec/goldcard"
	"github.com/fwojciec/goldcard/harvest"
)

// HarvestCmd runs one harvest pass and reports progress on stdout.
type HarvestCmd struct {
	Limit int
	Skip  int
}

// Run executes the harvest.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "skipping %d lines\n", c.Skip)

	progress := func(p goldcard.HarvestProgress) {
		fmt.Fprintf(deps.Stdout, "%d goldstamp: %s\n", p.Index+c.Skip, p.Goldstamp)
		if p.Cached {
			fmt.Fprintf(deps.Stdout, "already have %s\n", p.Goldstamp)
		}
		fmt.Fprintln(deps.Stdout, p.Record)
	}

	n, err := deps.Harvester.Run(deps.Ctx, harvest.Options{
		Limit:    c.Limit,
		Skip:     c.Skip,
		Progress: progress,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Harvested %d records\n", n)
	return nil
}

// errorMessage prefers the message of an application error.
func errorMessage(err error) string {
	if goldcard.ErrorCode(err) == goldcard.EINTERNAL {
		return err.Error()
	}
	return goldcard.ErrorMessage(err)
}
