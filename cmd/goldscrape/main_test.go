package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	main "github.com/fwojciec/goldcard/cmd/goldscrape"
	"github.com/fwojciec/goldcard/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: CLI Help and Validation
//
// goldscrape takes four positional arguments. Bad arguments abort before
// anything is read or fetched.

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with --help flag
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	// Then: help is displayed without error
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "goldscrape")
	assert.Contains(t, stdout.String(), "cache-dir")
}

func TestCLI_ShowsHelpWhenNoArgumentsProvided(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "goldscrape")
}

func TestCLI_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing skip", args: []string{"out.tsv", "cache", "0"}},
		{name: "non-numeric limit", args: []string{"out.tsv", "cache", "ten", "0"}},
		{name: "non-numeric skip", args: []string{"out.tsv", "cache", "0", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			args := append([]string{}, tt.args...)
			args[0] = filepath.Join(dir, args[0])

			var stdout, stderr bytes.Buffer
			err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)

			// Then: an error is returned and nothing is written
			require.Error(t, err)
			_, statErr := os.Stat(args[0])
			assert.True(t, os.IsNotExist(statErr))
			assert.NotContains(t, stdout.String(), "skipping")
		})
	}
}

// Story: Harvesting from the command line

type fixture struct {
	dir      string
	catalog  string
	output   string
	cache    string
	endpoint string
	requests *atomic.Int32
}

func newFixture(t *testing.T, rows int) *fixture {
	t.Helper()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprintf(w, `<table><tr><th><b>Name</b></th><td>%s</td></tr><tr><th><b>Label</b></th></tr></table>`,
			r.URL.Query().Get("goldstamp"))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("goldstamp\tname\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&b, "\"Gi%02d\"\torganism\n", i)
	}
	catalog := filepath.Join(dir, "gold_bacteria.csv")
	require.NoError(t, os.WriteFile(catalog, []byte(b.String()), 0644))

	return &fixture{
		dir:      dir,
		catalog:  catalog,
		output:   filepath.Join(dir, "out.tsv"),
		cache:    filepath.Join(dir, "cache"),
		endpoint: server.URL,
		requests: &requests,
	}
}

func (f *fixture) args(limit, skip string, extra ...string) []string {
	args := []string{f.output, f.cache, limit, skip, "--catalog", f.catalog, "--endpoint", f.endpoint}
	return append(args, extra...)
}

func TestCLI_HarvestsCatalog(t *testing.T) {
	t.Parallel()

	// Given: a catalog of three cards
	f := newFixture(t, 3)
	var stdout, stderr bytes.Buffer

	// When: harvesting without limit or skip
	err := main.NewMain().Run(context.Background(), f.args("0", "0"), &stdout, &stderr)

	// Then: every card is written below a header
	require.NoError(t, err)
	b, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, "Name\tLabel\nGi01\tNone\nGi02\tNone\nGi03\tNone\n", string(b))

	// And: progress is reported per record
	out := stdout.String()
	assert.Contains(t, out, "skipping 0 lines")
	assert.Contains(t, out, "0 goldstamp: Gi01")
	assert.Contains(t, out, "2 goldstamp: Gi03")
	assert.Contains(t, out, `{"Name": "Gi01", "Label": "None"}`)
	assert.Contains(t, out, "Harvested 3 records")
	assert.NotContains(t, out, "already have")
}

func TestCLI_SecondRunUsesCache(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 2)
	var stdout, stderr bytes.Buffer

	require.NoError(t, main.NewMain().Run(context.Background(), f.args("0", "0"), &stdout, &stderr))
	stdout.Reset()

	err := main.NewMain().Run(context.Background(), f.args("0", "0"), &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, int32(2), f.requests.Load())
	assert.Contains(t, stdout.String(), "already have Gi01")

	b, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(b), "\n"))
}

func TestCLI_LimitAndSkip(t *testing.T) {
	t.Parallel()

	// Given: a catalog of six cards
	f := newFixture(t, 6)
	var stdout, stderr bytes.Buffer

	// When: skipping one row with a limit of one
	err := main.NewMain().Run(context.Background(), f.args("1", "1"), &stdout, &stderr)

	// Then: rows at index 0 and 1 after the skipped row are harvested
	require.NoError(t, err)
	b, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, "Name\tLabel\nGi02\tNone\nGi03\tNone\n", string(b))
	assert.Contains(t, stdout.String(), "1 goldstamp: Gi02")
	assert.Contains(t, stdout.String(), "2 goldstamp: Gi03")
}

func TestCLI_FetchFailureAbortsRun(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newFixture(t, 2)
	var stdout, stderr bytes.Buffer

	args := []string{f.output, f.cache, "0", "0", "--catalog", f.catalog, "--endpoint", server.URL}
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, stderr.String(), "error:")
	_, statErr := os.Stat(f.output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	// Given: a YAML config naming the catalog and endpoint
	f := newFixture(t, 1)
	config := filepath.Join(f.dir, "goldscrape.yaml")
	content := fmt.Sprintf("catalog: %s\nendpoint: %s\nrate: 100\ntimeout: 5s\n", f.catalog, f.endpoint)
	require.NoError(t, os.WriteFile(config, []byte(content), 0644))

	var stdout, stderr bytes.Buffer

	// When: running with only positional arguments and --config
	args := []string{f.output, f.cache, "0", "0", "--config", config}
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)

	// Then: the configured catalog and endpoint are used
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.requests.Load())
	assert.Contains(t, stdout.String(), "0 goldstamp: Gi01")
}

func TestCLI_IndexesRecordsInDatabase(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 2)
	dbPath := filepath.Join(f.dir, "records.db")
	var stdout, stderr bytes.Buffer

	err := main.NewMain().Run(context.Background(), f.args("0", "0", "--db", dbPath), &stdout, &stderr)
	require.NoError(t, err)

	db := sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	defer db.Close()

	stored, err := sqlite.NewRecordService(db).FindRecords(context.Background(), sqlite.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Gi01", stored[0].Record.Goldstamp)
	assert.Equal(t, []string{"Name", "Label"}, stored[0].Record.Labels())
	assert.Equal(t, []string{"Gi01", "None"}, stored[0].Record.Values())
}
