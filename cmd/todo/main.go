package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"listo/internal/config"
	"listo/internal/logging"
	"listo/internal/session"
	"listo/internal/storage"
	"listo/internal/ui"
)

func main() {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to config.toml")
	logLevel := flag.String("log-level", "", "override log_level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		if err := cfg.SetLogLevel(*logLevel); err != nil {
			fmt.Printf("invalid -log-level: %v\n", err)
			os.Exit(1)
		}
	}

	logger := logging.New(os.Stderr, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	var saved session.Snapshotter = session.NewMemorySnapshot()
	if cfg.Snapshot == config.SnapshotSQLite {
		store, err := storage.Open(cfg.SQLiteName)
		if err != nil {
			fmt.Printf("failed to open snapshot store: %v\n", err)
			os.Exit(1)
		}
		saved = store
	}
	logger.Debug("starting", "config", *configPath, "snapshot", cfg.Snapshot)

	sess := session.New(saved, logger)
	defer sess.Close()

	if err := ui.Run(context.Background(), os.Stdin, os.Stdout, sess, ui.Options{
		Color:  cfg.Color,
		Prompt: cfg.Prompt,
	}); err != nil {
		fmt.Printf("error running program: %v\n", err)
		sess.Close()
		os.Exit(1)
	}
}
