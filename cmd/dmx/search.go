package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/search"
	"github.com/rickeev/discord-message-extractor/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var author, since string
	var limit int
	var onePerAuthor bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across archived messages",
		Long: `Search archived messages using FTS5. Output is TSV when piped:
  messageId, timestamp, author, replyTo, snippet

Recommended shell function (add to .zshrc):
  dmxf() {
    dmx search "$*" | fzf --ansi --delimiter='\t' --with-nth=2..
  }`,
		Args: cobra.ExactArgs(1),
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

			opts := search.Options{
				Author:       author,
				Since:        since,
				Limit:        limit,
				OnePerAuthor: onePerAuthor,
			}

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], opts, cfg.ChainDepth)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				snippet = colorizeSnippet(snippet)
				replyTo := r.ReplyToID
				if replyTo == "" {
					replyTo = "-"
				}
				// first field (messageID) stays plain for fzf {1}
				fmt.Printf("%s\t%s%s%s\t%s\t%s\t%s\n",
					r.MessageID,
					sColorDim, r.Timestamp, sColorReset,
					sColorBlue+r.AuthorName+sColorReset,
					replyTo,
					snippet,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Filter by author user ID")
	cmd.Flags().StringVar(&since, "since", "", "Only messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")
	cmd.Flags().BoolVar(&onePerAuthor, "one-per-author", false, "Keep only the best hit per author")

	return cmd
}
