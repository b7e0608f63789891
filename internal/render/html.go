package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// HTML renders a standalone dark-theme page. All dynamic text is escaped;
// the user's display color drives the accent styling.
type HTML struct{}

func (HTML) Ext() string { return "html" }

const htmlAccentFallback = "#7289da"

func (HTML) Render(w io.Writer, b *analyze.Bundle, st *store.Store) error {
	bw := bufio.NewWriter(w)

	accent := b.Color
	if accent == "" || accent == "N/A" {
		accent = htmlAccentFallback
	}

	fmt.Fprintf(bw, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Discord Archive - %s</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background-color: #36393f;
            color: #dcddde;
            padding: 20px;
            max-width: 1200px;
            margin: 0 auto;
        }
        .header, .stats {
            background-color: #2f3136;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 20px;
        }
        .message {
            background-color: #2f3136;
            padding: 15px;
            border-radius: 8px;
            margin-bottom: 10px;
            border-left: 3px solid %s;
        }
        .context {
            background-color: #202225;
            padding: 10px;
            border-radius: 4px;
            margin-bottom: 10px;
            border-left: 2px solid #7289da;
        }
        .timestamp { color: #72767d; font-size: 0.9em; }
        .username { color: %s; font-weight: bold; }
        h1, h2 { color: #fff; }
        .stat-item { margin: 10px 0; }
    </style>
</head>
<body>
`, html.EscapeString(b.Username), accent, accent)

	fmt.Fprintf(bw, `    <div class="header">
        <h1>Discord Message Archive</h1>
        <p><strong>User ID:</strong> %s</p>
        <p><strong>Username:</strong> %s</p>
        <p><strong>Messages:</strong> %d</p>
        <p><strong>Date Range:</strong> %s</p>
    </div>
`, html.EscapeString(b.UserID), html.EscapeString(b.Username), len(b.Messages), html.EscapeString(dateRange(b)))

	writeHTMLStats(bw, b.Stats)

	fmt.Fprintf(bw, "    <h2>Messages</h2>\n")
	for _, msg := range b.Messages {
		if msg.ReplyToID != "" {
			if m, ok := st.Get(msg.ReplyToID); ok {
				fmt.Fprintf(bw, `    <div class="context"><span class="username">%s</span> <span class="timestamp">%s</span><br>%s</div>
`, html.EscapeString(m.AuthorName), html.EscapeString(m.Timestamp), html.EscapeString(m.Content))
			}
		}
		fmt.Fprintf(bw, `    <div class="message"><span class="username">%s</span> <span class="timestamp">%s</span><br>%s</div>
`, html.EscapeString(b.Username), html.EscapeString(msg.Timestamp), html.EscapeString(msg.Content))
	}

	fmt.Fprintf(bw, "</body>\n</html>\n")
	return bw.Flush()
}

func writeHTMLStats(bw *bufio.Writer, s analyze.Statistics) {
	fmt.Fprintf(bw, "    <div class=\"stats\"><h2>Statistics</h2>\n")
	fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Total Words:</strong> %d</div>\n", s.TotalWords)
	fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Avg Message Length:</strong> %.1f words</div>\n", s.AvgMessageLength)
	fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Original Messages:</strong> %d</div>\n", s.OriginalMessages)
	fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Replies:</strong> %d</div>\n", s.Replies)
	if s.MostActiveHour >= 0 {
		fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Most Active Hour:</strong> %d:00 (%d messages)</div>\n", s.MostActiveHour, s.MostActiveHourN)
	}
	if s.MostActiveDay != "" {
		fmt.Fprintf(bw, "        <div class=\"stat-item\"><strong>Most Active Day:</strong> %s (%d messages)</div>\n", s.MostActiveDay, s.MostActiveDayN)
	}
	fmt.Fprintf(bw, "    </div>\n")
}
