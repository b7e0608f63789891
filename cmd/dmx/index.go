package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/parse"
)

func indexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index <export.html>",
		Short: "Parse a chat-log export and archive its messages into the local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			inputPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}
			info, err := os.Stat(inputPath)
			if err != nil {
				return fmt.Errorf("stat input: %w", err)
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			if !force {
				needed, err := index.NeedsUpdate(db, inputPath, info.ModTime().Unix(), info.Size())
				if err != nil {
					return fmt.Errorf("check archive: %w", err)
				}
				if !needed {
					fmt.Fprintf(os.Stderr, "Up to date: %s (use --force to re-index)\n", inputPath)
					return nil
				}
			}

			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			st, scanStats, err := parse.Scan(f)
			if err != nil {
				return fmt.Errorf("scan %s: %w", inputPath, err)
			}
			fmt.Fprintf(os.Stderr, "Parsed %s: %s\n", inputPath, scanStats)

			stats, err := index.IndexStore(db, inputPath, info.ModTime().Unix(), info.Size(), st)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-index even when the archive fingerprint is unchanged")

	return cmd
}
