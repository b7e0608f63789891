package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/index"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, DB, FTS5, and show archive stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Output prefix:  %s\n", cfg.OutputPrefix)
			fmt.Printf("  Default formats: %v\n", cfg.DefaultFormats)
			fmt.Printf("  Chain depth:    %d\n", cfg.ChainDepth)

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'dmx index <export.html>' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			archiveCount, err := db.ArchiveCount()
			if err != nil {
				return fmt.Errorf("count archives: %w", err)
			}

			messageCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}

			fmt.Printf("  Archives: %d\n", archiveCount)
			fmt.Printf("  Messages: %d\n", messageCount)

			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messageCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messageCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}
