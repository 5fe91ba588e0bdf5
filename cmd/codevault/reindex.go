package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/internal/log"
)

func reindexCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild snippet embeddings",
		Long: `Rebuild the vector index by regenerating embeddings for every stored
snippet. Useful after switching embedding models or recovering from a
provider outage that left snippets unindexed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(cmd, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runReindex(cmd *cobra.Command, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.NewLogger(cfg)

	client, err := codevault.New(clientOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create codevault client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close codevault client", "error", err)
		}
	}()

	if err := client.Snippets.Reindex(cmd.Context()); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	fmt.Println("reindex complete")
	return nil
}
