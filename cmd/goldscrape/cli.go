package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/goldcard/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Harvester *harvest.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output   string `arg:"" help:"Output TSV file; rows are appended"`
	CacheDir string `arg:"" name:"cache-dir" help:"Directory holding cached GOLD card pages"`
	Limit    int    `arg:"" help:"Stop once the row index exceeds this value (0 = no limit)"`
	Skip     int    `arg:"" help:"Catalog rows to skip after the header"`

	Catalog  string          `default:"gold_bacteria.csv" env:"GOLD_CATALOG" help:"Tab-separated catalog of quoted goldstamps"`
	Endpoint string          `default:"${endpoint}" env:"GOLD_ENDPOINT" help:"GOLD card endpoint"`
	Timeout  time.Duration   `default:"0s" env:"GOLD_TIMEOUT" help:"Per-request timeout (0 = none)"`
	Rate     float64         `default:"0" env:"GOLD_RATE" help:"Maximum requests per second (0 = unlimited)"`
	DB       string          `name:"db" env:"GOLD_DB" help:"Also index records in this SQLite database"`
	Verbose  bool            `short:"v" help:"Log fetches and cache activity"`
	Config   kong.ConfigFlag `help:"YAML file providing flag values"`
}
