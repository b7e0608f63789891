package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/render"
)

func previewCmd() *cobra.Command {
	var depth int
	var width int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <messageID>",
		Short: "Print a message's reply-chain context with ANSI highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if depth <= 0 {
				depth = cfg.ChainDepth
			}

			out, _, err := render.RenderContext(db, args[0], render.ContextOptions{
				Depth: depth,
				Width: width,
				Query: query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "Ancestry hops to show (default from config)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
