package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/config"
	"github.com/rickeev/discord-message-extractor/internal/parse"
	"github.com/rickeev/discord-message-extractor/internal/render"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

func extractCmd() *cobra.Command {
	var (
		input          string
		output         string
		userID         string
		userIDs        string
		formats        string
		dateFrom       string
		dateTo         string
		searchTerm     string
		excludeReplies bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract per-user message bundles from a chat-log HTML export",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Refuse an unreadable input before anything else runs.
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if output == "" {
				output = cfg.OutputPrefix
			}

			ids := collectUserIDs(userID, userIDs)
			if len(ids) == 0 {
				return fmt.Errorf("at least one user ID must be specified (--user-id or --user-ids)")
			}

			renderers, err := resolveFormats(formats, cfg.DefaultFormats)
			if err != nil {
				return err
			}

			st, stats, err := parse.Scan(f)
			if err != nil {
				return fmt.Errorf("scan %s: %w", input, err)
			}
			fmt.Fprintf(os.Stderr, "Parsed %s: %s\n", input, stats)

			filters := analyze.Filters{
				DateFrom:       dateFrom,
				DateTo:         dateTo,
				Search:         searchTerm,
				ExcludeReplies: excludeReplies,
				ChainDepth:     cfg.ChainDepth,
			}

			for _, id := range ids {
				bundle, err := analyze.Build(id, st, filters)
				if err != nil {
					fmt.Fprintf(os.Stderr, "WARN: user %s: %v\n", id, err)
					continue
				}

				for _, r := range renderers {
					path := outputPath(output, bundle.Username, id, r.Ext())
					if err := writeRendered(r, path, bundle, st); err != nil {
						return fmt.Errorf("export %s: %w", path, err)
					}
					fmt.Fprintf(os.Stderr, "Exported %s: %s\n", strings.ToUpper(r.Ext()), path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input HTML chat-log export (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file prefix (default from config)")
	cmd.Flags().StringVarP(&userID, "user-id", "u", "", "Single target user ID")
	cmd.Flags().StringVarP(&userIDs, "user-ids", "U", "", "Multiple user IDs (comma-separated)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "Output format(s), comma-separated: "+strings.Join(render.Names(), ","))
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "Include messages from this date (MM/DD/YYYY)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "Include messages until this date (MM/DD/YYYY)")
	cmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Only messages containing this term (case-insensitive)")
	cmd.Flags().BoolVar(&excludeReplies, "exclude-replies", false, "Exclude reply messages")
	cmd.MarkFlagRequired("input")

	return cmd
}

// collectUserIDs merges -u and -U into a deduplicated list, keeping the
// order flags were given in.
func collectUserIDs(single, multi string) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	add(single)
	for _, id := range strings.Split(multi, ",") {
		add(id)
	}
	return ids
}

// resolveFormats validates the comma-separated format list against the
// renderer registry, falling back to the configured defaults. Renderers
// come back deduplicated, in the order the formats were requested.
func resolveFormats(flag string, defaults []string) ([]render.Renderer, error) {
	names := defaults
	if flag != "" {
		names = strings.Split(flag, ",")
	}
	var out []render.Renderer
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		r, ok := render.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("invalid format %q (valid: %s)", name, strings.Join(render.Names(), ", "))
		}
		seen[name] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no output formats specified")
	}
	return out, nil
}

func outputPath(prefix, username, userID, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, sanitizeFilename(username), userID, ext)
}

// sanitizeFilename keeps usernames safe to embed in file names.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

func writeRendered(r render.Renderer, path string, b *analyze.Bundle, st *store.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, b, st); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
