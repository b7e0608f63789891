package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rickeev/discord-message-extractor/internal/parse"
	"github.com/rickeev/discord-message-extractor/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: message list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No messages")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatResultLine formats a single message as two lines:
//
//	line 1: [>] [↳] author  date
//	line 2:    content or snippet (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	author := r.AuthorName
	if author == "" {
		author = parse.UnknownAuthor
	}

	// Shorten the timestamp to MM/DD HH:MM-ish; keep raw text if it
	// never parsed during extraction.
	date := r.Timestamp
	if date == parse.UnknownTimestamp {
		date = "?"
	}
	if len(date) > 16 {
		date = date[:16]
	}

	mark := "  "
	if r.ReplyToID != "" {
		mark = styleReplyMark.Render("↳ ")
	}

	authorMax := width - 2 - 2 - len(date) - 3
	if authorMax < 4 {
		authorMax = 4
	}
	if runewidth.StringWidth(author) > authorMax {
		author = runewidth.Truncate(author, authorMax, "")
	}

	line1 := fmt.Sprintf("%s%s  %s", mark, styleAuthor.Render(author), date)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: content (dimmed, indented). Prefer the FTS snippet when
	// present so the matched region is visible.
	body := r.Snippet
	if body == "" {
		body = r.Content
	}
	body = strings.ReplaceAll(body, "\n", " ")
	body = strings.ReplaceAll(body, "\t", " ")
	body = strings.ReplaceAll(body, ">>>", "")
	body = strings.ReplaceAll(body, "<<<", "")
	bodyMax := width - 4 // indent
	if bodyMax < 0 {
		bodyMax = 0
	}
	if runewidth.StringWidth(body) > bodyMax {
		body = runewidth.Truncate(body, bodyMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(body)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
