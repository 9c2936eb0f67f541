package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"talentGraph/internal/chain"
	"talentGraph/internal/config"
	"talentGraph/internal/indexer"
	"talentGraph/internal/storage"
	"talentGraph/internal/storage/postgres"
	"talentGraph/internal/storage/sqlite"
)

func main() {
	root := &cobra.Command{
		Use:          "indexer",
		Short:        "Marketplace and escrow entity graph indexer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch raw marketplace logs into JSONL",
		RunE:  runIndexer,
	}

	runCmd.Flags().String("rpc", "", "RPC URL")
	runCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	runCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	runCmd.Flags().StringSlice("address", nil, "marketplace contract addresses (comma-separated)")
	runCmd.Flags().StringSlice("topic0", nil, "topic0 filter (comma-separated), defaults to every marketplace event")
	runCmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	runCmd.Flags().String("out", "./data/logs.jsonl", "output JSONL path")
	runCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	runCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	runCmd.Flags().String("pg-dsn", "", "keep the checkpoint in Postgres instead of a file")
	runCmd.Flags().String("sqlite-path", "", "keep the checkpoint in SQLite instead of a file")
	runCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode raw logs into typed marketplace events",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "", "input raw logs JSONL")
	decodeCmd.Flags().String("out", "./data/typed_events.jsonl", "output typed events JSONL")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().String("topic0-map", "", "extra topic0->event mappings (comma-separated key=value)")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project typed events into the entity graph",
		RunE:  runProject,
	}

	projectCmd.Flags().String("in", "", "input typed events JSONL, in ledger order")
	projectCmd.Flags().String("store", config.StoreMemory, "entity store (memory, postgres, sqlite)")
	projectCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	projectCmd.Flags().String("sqlite-path", "", "SQLite database file")
	projectCmd.Flags().String("state-file", "", "optional local cursor file, overrides the store cursor")
	projectCmd.Flags().String("state-name", "project", "cursor name in the store state table")
	projectCmd.Flags().Int("checkpoint-every", 500, "events between cursor saves")
	projectCmd.Flags().String("rpc", "", "RPC URL for token metadata")
	projectCmd.Flags().String("fetch-queue", "./data/fetch_queue.jsonl", "content fetch queue JSONL")
	projectCmd.Flags().String("keywords", "", "optional keywords JSONL from the content fetcher, indexed after the events")
	projectCmd.Flags().String("metrics-addr", "", "serve /metrics and /health on this address")
	projectCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(projectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIndexer(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addresses, err := indexer.ParseAddresses(cfg.Addresses)
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		return fmt.Errorf("address list is required")
	}

	topic0, err := indexer.ParseTopic0(cfg.Topic0)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	checkpoint, closeCheckpoint, err := openCheckpoint(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCheckpoint()

	runner := indexer.NewRunner(indexer.RunConfig{
		FromBlock:    cfg.FromBlock,
		ToBlock:      cfg.ToBlock,
		Addresses:    addresses,
		Topic0:       topic0,
		BatchSize:    cfg.BatchSize,
		Checkpoint:   checkpoint,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, storage.NewJsonlStorage(cfg.Out), logger)

	logger.Info("indexer start",
		zap.String("rpc", cfg.RPCURL),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Int("addresses", len(addresses)),
		zap.Int("topic0", len(topic0)),
		zap.Uint64("batch_size", cfg.BatchSize),
		zap.String("out", cfg.Out),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	return runner.Run(ctx)
}

// openCheckpoint picks the fetch checkpoint: a database state row when a
// store is configured, otherwise the checkpoint file.
func openCheckpoint(ctx context.Context, cfg config.Config) (indexer.Checkpointer, func(), error) {
	const name = "fetch"
	switch {
	case !cfg.CheckpointEnabled:
		return &indexer.FileCheckpoint{}, func() {}, nil
	case cfg.PGDSN != "":
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return &indexer.StateCheckpoint{Backend: store, Name: name}, store.Close, nil
	case cfg.SQLitePath != "":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return &indexer.StateCheckpoint{Backend: store, Name: name}, closeQuietly(store), nil
	default:
		return &indexer.FileCheckpoint{Path: cfg.Checkpoint}, func() {}, nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
