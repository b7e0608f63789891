package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// Text renders the archive as a plain-text report with boxed reply
// context.
type Text struct{}

func (Text) Ext() string { return "txt" }

func (Text) Render(w io.Writer, b *analyze.Bundle, st *store.Store) error {
	bw := bufio.NewWriter(w)
	heavy := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	fmt.Fprintf(bw, "%s\nDiscord Message Archive\n%s\n", heavy, heavy)
	fmt.Fprintf(bw, "User ID   : %s\n", b.UserID)
	fmt.Fprintf(bw, "Username  : %s\n", b.Username)
	fmt.Fprintf(bw, "Color     : %s\n", b.Color)
	fmt.Fprintf(bw, "Messages  : %d\n", len(b.Messages))
	if r := dateRange(b); r != "N/A" {
		fmt.Fprintf(bw, "Range     : %s\n", r)
	}

	if len(b.RepliedTo) > 0 {
		fmt.Fprintf(bw, "\n%s\nReply Summary\n%s\n", thin, thin)
		users := repliedToByCount(b)
		fmt.Fprintf(bw, "Replied to %d unique user(s):\n", len(users))
		if len(users) > 10 {
			users = users[:10]
		}
		for _, u := range users {
			fmt.Fprintf(bw, "  • %s (ID: %s): %d time%s\n", u.Name, u.UserID, u.Count, plural(u.Count))
		}
	}

	s := b.Stats
	fmt.Fprintf(bw, "\n%s\nStatistics\n%s\n", thin, thin)
	fmt.Fprintf(bw, "Total Words       : %d\n", s.TotalWords)
	fmt.Fprintf(bw, "Avg Message Length: %.1f words\n", s.AvgMessageLength)
	fmt.Fprintf(bw, "Original Messages : %d\n", s.OriginalMessages)
	fmt.Fprintf(bw, "Replies           : %d\n", s.Replies)
	if s.MostActiveHour >= 0 {
		fmt.Fprintf(bw, "Most Active Hour  : %d:00 (%d messages)\n", s.MostActiveHour, s.MostActiveHourN)
	}
	if s.MostActiveDay != "" {
		fmt.Fprintf(bw, "Most Active Day   : %s (%d messages)\n", s.MostActiveDay, s.MostActiveDayN)
	}

	fmt.Fprintf(bw, "\n%s\n\n", heavy)

	for _, msg := range b.Messages {
		writeTextContext(bw, msg, st)
		fmt.Fprintf(bw, "[%s] %s: %s\n\n", msg.Timestamp, b.UserID, msg.Content)
	}

	return bw.Flush()
}

// writeTextContext draws the reply ancestry box above a reply: the full
// chain furthest-ancestor-first when more than one hop resolved, a single
// context line for a direct reply, nothing when the target is missing
// from the store.
func writeTextContext(bw *bufio.Writer, msg analyze.IncludedMessage, st *store.Store) {
	if len(msg.ChainIDs) > 1 {
		fmt.Fprintf(bw, "┌─ [CONTEXT CHAIN] %s\n", strings.Repeat("─", 38))
		for i := len(msg.ChainIDs) - 1; i >= 0; i-- {
			m, ok := st.Get(msg.ChainIDs[i])
			if !ok {
				continue
			}
			depth := len(msg.ChainIDs) - 1 - i
			indent := "│ " + strings.Repeat("  ", depth)
			fmt.Fprintf(bw, "%s[%s] %s (ID: %s):\n", indent, m.Timestamp, m.AuthorName, m.AuthorID)
			fmt.Fprintf(bw, "%s%s\n", indent, m.Content)
			if i > 0 {
				fmt.Fprintf(bw, "%s↳\n", indent)
			}
		}
		fmt.Fprintf(bw, "└%s\n", strings.Repeat("─", 59))
		return
	}

	if msg.ReplyToID != "" {
		if m, ok := st.Get(msg.ReplyToID); ok {
			fmt.Fprintf(bw, "┌─ [CONTEXT] %s\n", strings.Repeat("─", 47))
			fmt.Fprintf(bw, "│ [%s] %s (ID: %s):\n", m.Timestamp, m.AuthorName, m.AuthorID)
			fmt.Fprintf(bw, "│ %s\n", m.Content)
			fmt.Fprintf(bw, "└%s\n", strings.Repeat("─", 59))
		}
	}
}
