// Package config loads crewwatch configuration from an optional Pkl file
// with environment variable overrides.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/apple/pkl-go/pkl"
	"github.com/caarlos0/env/v11"
	"github.com/crewwatch-io/crewwatch/internal/spacefeed"
)

// SnapshotConfig selects the snapshot backend.
type SnapshotConfig struct {
	// Backend is "local" or "s3".
	Backend string `pkl:"backend" env:"CREWWATCH_SNAPSHOT_BACKEND"`
	// Path is the local snapshot file (local backend only).
	Path string `pkl:"path" env:"CREWWATCH_SNAPSHOT_PATH"`
	// Options holds backend-specific settings (bucket, key, region, ...).
	Options map[string]string `pkl:"options" env:"CREWWATCH_SNAPSHOT_OPTIONS"`
}

// Config is the full crewwatch configuration.
type Config struct {
	// FeedURL is the base URL of the astros feed.
	FeedURL string `pkl:"feedUrl" env:"CREWWATCH_FEED_URL"`
	// HTTPAddr is the listen address for the web view.
	HTTPAddr string `pkl:"httpAddr" env:"CREWWATCH_HTTP_ADDR"`
	// HistoryPath is the SQLite fetch journal path; empty disables the journal.
	HistoryPath string `pkl:"historyPath" env:"CREWWATCH_HISTORY_PATH"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `pkl:"logLevel" env:"CREWWATCH_LOG_LEVEL"`
	// Snapshot configures snapshot persistence.
	Snapshot SnapshotConfig `pkl:"snapshot"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FeedURL:  spacefeed.DefaultBaseURL,
		HTTPAddr: ":8080",
		LogLevel: "info",
		Snapshot: SnapshotConfig{Backend: "local"},
	}
}

// Load resolves the configuration: built-in defaults, then the Pkl file at
// path (if given), then environment overrides.
func Load(ctx context.Context, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		fileCfg, err := evaluateFile(ctx, path)
		if err != nil {
			return Config{}, err
		}
		cfg = overlay(cfg, fileCfg)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env overrides: %w", err)
	}

	return cfg, nil
}

// evaluateFile evaluates a Pkl module into a Config.
func evaluateFile(ctx context.Context, path string) (Config, error) {
	evaluator, err := pkl.NewEvaluator(ctx, pkl.PreconfiguredOptions)
	if err != nil {
		return Config{}, fmt.Errorf("create pkl evaluator: %w", err)
	}
	defer evaluator.Close()

	var cfg Config
	if err := evaluator.EvaluateModule(ctx, pkl.FileSource(path), &cfg); err != nil {
		return Config{}, fmt.Errorf("evaluate config %s: %w", path, err)
	}
	return cfg, nil
}

// overlay copies non-empty fields of over onto base.
func overlay(base, over Config) Config {
	if over.FeedURL != "" {
		base.FeedURL = over.FeedURL
	}
	if over.HTTPAddr != "" {
		base.HTTPAddr = over.HTTPAddr
	}
	if over.HistoryPath != "" {
		base.HistoryPath = over.HistoryPath
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.Snapshot.Backend != "" {
		base.Snapshot.Backend = over.Snapshot.Backend
	}
	if over.Snapshot.Path != "" {
		base.Snapshot.Path = over.Snapshot.Path
	}
	if len(over.Snapshot.Options) > 0 {
		base.Snapshot.Options = over.Snapshot.Options
	}
	return base
}
