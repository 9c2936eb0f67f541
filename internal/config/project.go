package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Entity store backends accepted by the project command.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// ProjectConfig holds configuration for projecting typed events into the entity graph.
type ProjectConfig struct {
	Input           string `validate:"required"`
	Store           string `validate:"oneof=memory postgres sqlite"`
	PGDSN           string `validate:"required_if=Store postgres"`
	SQLitePath      string `validate:"required_if=Store sqlite"`
	StateFile       string
	StateName       string `validate:"required"`
	CheckpointEvery int    `validate:"min=1"`
	RPCURL          string
	FetchQueue      string
	Keywords        string
	MetricsAddr     string `validate:"omitempty,hostname_port"`
	LogLevel        string `validate:"oneof=debug info warn error"`
}

// LoadProject merges config file, environment variables, and flags into ProjectConfig.
func LoadProject(cfgFile string, flags *pflag.FlagSet) (ProjectConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"store":            StoreMemory,
		"state-name":       "project",
		"checkpoint-every": 500,
		"fetch-queue":      "./data/fetch_queue.jsonl",
		"log-level":        "info",
	})
	if err != nil {
		return ProjectConfig{}, err
	}

	cfg := ProjectConfig{
		Input:           v.GetString("in"),
		Store:           v.GetString("store"),
		PGDSN:           v.GetString("pg-dsn"),
		SQLitePath:      v.GetString("sqlite-path"),
		StateFile:       v.GetString("state-file"),
		StateName:       v.GetString("state-name"),
		CheckpointEvery: v.GetInt("checkpoint-every"),
		RPCURL:          v.GetString("rpc"),
		FetchQueue:      v.GetString("fetch-queue"),
		Keywords:        v.GetString("keywords"),
		MetricsAddr:     v.GetString("metrics-addr"),
		LogLevel:        v.GetString("log-level"),
	}
	if err := validate.Struct(cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("invalid project config: %w", err)
	}
	return cfg, nil
}
