package main

import (
	"strings"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/log"
)

// clientOptions returns the codevault.Option slice derived from the shared
// parts of AppConfig: database storage, AI endpoints, and retrieval tuning.
// Callers append entrypoint-specific options before passing the full slice
// to codevault.New.
func clientOptions(cfg config.AppConfig, logger *log.Logger) []codevault.Option {
	opts := []codevault.Option{
		codevault.WithLogger(logger),
		codevault.WithSearchLimit(cfg.SearchLimit()),
		codevault.WithEmbeddingBudget(cfg.EmbeddingBudget()),
	}

	opts = append(opts, storageOption(cfg))

	if cfg.CompletionEndpoint().Configured() || cfg.EmbeddingEndpoint().Configured() {
		opts = append(opts, codevault.WithEndpoints(cfg.CompletionEndpoint(), cfg.EmbeddingEndpoint()))
	}

	return opts
}

// storageOption returns the codevault.Option for the configured database
// backend.
func storageOption(cfg config.AppConfig) codevault.Option {
	dbURL := cfg.DBURL()

	if dbURL != "" && !isSQLite(dbURL) {
		return codevault.WithPostgres(dbURL)
	}

	dbPath := cfg.DataDir() + "/codevault.db"
	if dbURL != "" && isSQLite(dbURL) {
		dbPath = strings.TrimPrefix(dbURL, "sqlite:///")
		if dbPath == dbURL {
			dbPath = strings.TrimPrefix(dbURL, "sqlite:")
		}
	}

	return codevault.WithSQLite(dbPath)
}

// isSQLite checks if the database URL is for SQLite.
func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite:")
}
