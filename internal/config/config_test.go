package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("project", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("store", StoreMemory, "")
	flags.String("pg-dsn", "", "")
	flags.String("sqlite-path", "", "")
	flags.String("metrics-addr", "", "")
	flags.String("keywords", "", "")
	flags.Int("checkpoint-every", 500, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadProjectDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := LoadProject("", projectFlags(t, "--in", "events.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "events.jsonl", cfg.Input)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "project", cfg.StateName)
	assert.Equal(t, 500, cfg.CheckpointEvery)
	assert.Equal(t, "./data/fetch_queue.jsonl", cfg.FetchQueue)
}

func TestLoadProjectValidation(t *testing.T) {
	chdirTemp(t)
	cases := map[string][]string{
		"missing input":     {},
		"unknown store":     {"--in", "x", "--store", "redis"},
		"postgres no dsn":   {"--in", "x", "--store", "postgres"},
		"sqlite no path":    {"--in", "x", "--store", "sqlite"},
		"bad log level":     {"--in", "x", "--log-level", "loud"},
		"bad metrics addr":  {"--in", "x", "--metrics-addr", "nope"},
		"zero checkpointer": {"--in", "x", "--checkpoint-every", "0"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProject("", projectFlags(t, args...))
			assert.Error(t, err)
		})
	}

	cfg, err := LoadProject("", projectFlags(t, "--in", "x", "--store", "sqlite", "--sqlite-path", "graph.db", "--metrics-addr", "127.0.0.1:9100", "--keywords", "kw.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "graph.db", cfg.SQLitePath)
	assert.Equal(t, "kw.jsonl", cfg.Keywords)
}

func TestLoadProjectFromFileAndEnv(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "indexer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("in: typed.jsonl\nstore: postgres\npg-dsn: postgres://localhost/graph\n"), 0o644))
	t.Setenv("INDEXER_STATE_NAME", "replay")

	cfg, err := LoadProject(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "typed.jsonl", cfg.Input)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/graph", cfg.PGDSN)
	assert.Equal(t, "replay", cfg.StateName)
}

func TestLoadDecode(t *testing.T) {
	chdirTemp(t)
	flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("topic0-map", "", "")
	require.NoError(t, flags.Parse([]string{"--in", "raw.jsonl", "--topic0-map", "0xabc=ServiceCreated, bad ,=x"}))

	cfg, err := LoadDecode("", flags)
	require.NoError(t, err)
	assert.Equal(t, "./data/typed_events.jsonl", cfg.Out)
	assert.Equal(t, map[string]string{"0xabc": "ServiceCreated"}, cfg.Topic0Map)

	_, err = LoadDecode("", nil)
	assert.Error(t, err)
}

func TestLoadRun(t *testing.T) {
	chdirTemp(t)
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	flags.StringSlice("address", nil, "")
	flags.Uint64("from", 0, "")
	flags.Uint64("to", 0, "")
	require.NoError(t, flags.Parse([]string{"--rpc", "http://localhost:8545", "--address", "0x1, 0x2", "--from", "10"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x1", "0x2"}, cfg.Addresses)
	assert.Equal(t, uint64(2000), cfg.BatchSize)

	require.NoError(t, flags.Set("to", "5"))
	_, err = Load("", flags)
	assert.Error(t, err)
}
