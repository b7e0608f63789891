package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

const (
	colorReset   = "\033[0m"
	colorAncest  = "\033[1;32m" // bold green for chain ancestors
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// ContextOptions controls the ANSI reply-chain preview.
type ContextOptions struct {
	Depth int    // ancestry hops to show (0 = store.DefaultChainDepth)
	Width int    // wrap width (0 = no wrap)
	Query string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	var terms []string
	for _, t := range strings.Fields(query) {
		if !fts5Operators[t] {
			terms = append(terms, t)
		}
	}
	for _, term := range terms {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderContext renders the reply ancestry of an archived message followed
// by the message itself, oldest ancestor first with increasing indent.
// Returns the content and the 0-based line number of the hit message's
// header (-1 when the message is absent).
func RenderContext(db *index.DB, messageID string, opts ContextOptions) (string, int, error) {
	if opts.Depth <= 0 {
		opts.Depth = store.DefaultChainDepth
	}

	hit, err := db.GetMessage(messageID)
	if err != nil {
		return "", -1, fmt.Errorf("get message: %w", err)
	}
	if hit == nil {
		return "", -1, fmt.Errorf("message not found: %s", messageID)
	}

	// Walk the ancestry, depth-capped; missing targets end the chain.
	var ancestors []*store.Message
	cur := hit.ReplyToID
	for depth := 0; depth < opts.Depth && cur != ""; depth++ {
		m, err := db.GetMessage(cur)
		if err != nil {
			return "", -1, fmt.Errorf("get message: %w", err)
		}
		if m == nil {
			break
		}
		ancestors = append(ancestors, m)
		cur = m.ReplyToID
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeMessage := func(m *store.Message, indent string, isHit bool) {
		if isHit {
			hitLine = lineCount
			writeLine(fmt.Sprintf("%s%s>> %s > %s <<%s", indent, colorHit, m.AuthorName, m.Timestamp, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s%s >%s %s%s%s", indent, colorAncest, m.AuthorName, colorReset, colorDim, m.Timestamp, colorReset))
		}
		text := highlightKeywords(m.Content, opts.Query)
		for _, tl := range strings.Split(indentLines(text, indent+"  "), "\n") {
			writeLine(tl)
		}
	}

	if hit.ReplyToID != "" && len(ancestors) == 0 {
		writeLine(fmt.Sprintf("%s(reply context not in archive)%s", colorDim, colorReset))
		writeLine("")
	}

	// oldest first, nested toward the hit
	for i := len(ancestors) - 1; i >= 0; i-- {
		indent := strings.Repeat("  ", len(ancestors)-1-i)
		writeMessage(ancestors[i], indent, false)
		writeLine(indent + colorDim + "↳" + colorReset)
	}

	writeMessage(hit, strings.Repeat("  ", len(ancestors)), true)

	return b.String(), hitLine, nil
}
