package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"talentGraph/internal/chain"
	"talentGraph/internal/config"
	"talentGraph/internal/entity"
	"talentGraph/internal/metrics"
	"talentGraph/internal/projection"
	"talentGraph/internal/storage"
	"talentGraph/internal/storage/postgres"
	"talentGraph/internal/storage/sqlite"
	"talentGraph/internal/tokenmeta"
)

func runProject(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadProject(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, backend, closeStore, err := openEntityStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var reader tokenmeta.Reader = tokenmeta.Unavailable{}
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
		reader = tokenmeta.NewChainReader(chainClient)
	} else {
		logger.Warn("no rpc configured, token metadata left at defaults")
	}

	opts := projection.Options{
		Resolver: tokenmeta.NewResolver(reader, logger),
		Logger:   logger,
	}
	if cfg.FetchQueue != "" {
		queue, err := storage.NewFetchQueue(cfg.FetchQueue)
		if err != nil {
			return fmt.Errorf("open fetch queue: %w", err)
		}
		defer queue.Close()
		opts.Registry = queue
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts.Recorder = metrics.NewRecorder(reg)
	if cfg.MetricsAddr != "" {
		router := metrics.NewRouter(reg, store, logger)
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, router, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	runnerCfg := projection.RunnerConfig{CheckpointEvery: cfg.CheckpointEvery}
	switch {
	case cfg.StateFile != "":
		runnerCfg.Cursor = &projection.FileCursorStore{Path: cfg.StateFile}
	case backend != nil:
		runnerCfg.Cursor = &projection.DBCursorStore{Backend: backend, Name: cfg.StateName}
	}

	logger.Info("project start",
		zap.String("input", cfg.Input),
		zap.String("store", cfg.Store),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.String("sqlite_path", cfg.SQLitePath),
		zap.String("state_file", cfg.StateFile),
		zap.String("fetch_queue", cfg.FetchQueue),
		zap.String("keywords", cfg.Keywords),
		zap.Bool("rpc", cfg.RPCURL != ""),
	)

	projector := projection.NewProjector(store, opts)
	if _, err := projection.NewRunner(projector, runnerCfg, logger).Run(ctx, cfg.Input); err != nil {
		return err
	}
	if cfg.Keywords == "" {
		return nil
	}
	indexed := 0
	err = storage.ReadKeywords(cfg.Keywords, func(rec storage.ContentKeywords) error {
		if err := projector.IndexKeywords(ctx, rec.Keywords); err != nil {
			return fmt.Errorf("index keywords of %s: %w", rec.CID, err)
		}
		indexed++
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("keywords indexed", zap.Int("documents", indexed))
	return nil
}

// openEntityStore opens the configured backend. backend is nil for the
// memory store, which keeps no cursor across runs.
func openEntityStore(ctx context.Context, cfg config.ProjectConfig) (entity.Store, projection.CursorBackend, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, closeQuietly(store), nil
	default:
		return entity.NewMemoryStore(), nil, func() {}, nil
	}
}

func closeQuietly(c io.Closer) func() {
	return func() { _ = c.Close() }
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
