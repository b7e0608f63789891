package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// Markdown renders the archive with quoted reply previews and a
// statistics table.
type Markdown struct{}

func (Markdown) Ext() string { return "md" }

func (Markdown) Render(w io.Writer, b *analyze.Bundle, st *store.Store) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Discord Message Archive\n\n")
	fmt.Fprintf(bw, "## User Information\n\n")
	fmt.Fprintf(bw, "- **User ID**: %s\n", b.UserID)
	fmt.Fprintf(bw, "- **Username**: %s\n", b.Username)
	fmt.Fprintf(bw, "- **Messages**: %d\n", len(b.Messages))
	if r := dateRange(b); r != "N/A" {
		fmt.Fprintf(bw, "- **Date Range**: %s\n", r)
	}

	if len(b.RepliedTo) > 0 {
		fmt.Fprintf(bw, "\n## Reply Summary\n\n")
		users := repliedToByCount(b)
		fmt.Fprintf(bw, "Replied to %d unique user(s):\n\n", len(users))
		if len(users) > 10 {
			users = users[:10]
		}
		for _, u := range users {
			fmt.Fprintf(bw, "- **%s** (ID: %s): %d time%s\n", u.Name, u.UserID, u.Count, plural(u.Count))
		}
	}

	s := b.Stats
	fmt.Fprintf(bw, "\n## Statistics\n\n")
	fmt.Fprintf(bw, "| Metric | Value |\n")
	fmt.Fprintf(bw, "|--------|-------|\n")
	fmt.Fprintf(bw, "| Total Words | %d |\n", s.TotalWords)
	fmt.Fprintf(bw, "| Avg Message Length | %.1f words |\n", s.AvgMessageLength)
	fmt.Fprintf(bw, "| Original Messages | %d |\n", s.OriginalMessages)
	fmt.Fprintf(bw, "| Replies | %d |\n", s.Replies)
	if s.MostActiveHour >= 0 {
		fmt.Fprintf(bw, "| Most Active Hour | %d:00 (%d messages) |\n", s.MostActiveHour, s.MostActiveHourN)
	}
	if s.MostActiveDay != "" {
		fmt.Fprintf(bw, "| Most Active Day | %s (%d messages) |\n", s.MostActiveDay, s.MostActiveDayN)
	}

	fmt.Fprintf(bw, "\n## Messages\n\n")
	for _, msg := range b.Messages {
		if msg.ReplyToID != "" {
			if m, ok := st.Get(msg.ReplyToID); ok {
				fmt.Fprintf(bw, "> **%s** (%s):  \n", m.AuthorName, m.Timestamp)
				fmt.Fprintf(bw, "> %s\n\n", m.Content)
			}
		}
		fmt.Fprintf(bw, "**%s** (%s):  \n", b.Username, msg.Timestamp)
		fmt.Fprintf(bw, "%s\n\n", msg.Content)
		fmt.Fprintf(bw, "---\n\n")
	}

	return bw.Flush()
}
