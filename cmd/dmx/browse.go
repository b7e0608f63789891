package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/search"
	"github.com/rickeev/discord-message-extractor/internal/tui"
)

func browseCmd() *cobra.Command {
	var author string
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse archived messages newest first, with reply-chain previews",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			opts := search.Options{
				Author: author,
				Limit:  limit,
			}
			return tui.RunBrowse(db, opts, cfg.ChainDepth)
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Filter by author user ID")
	cmd.Flags().IntVar(&limit, "limit", 200, "Max messages to list")

	return cmd
}
