package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/rickeev/discord-message-extractor/internal/index"
)

// Result is one archived message matching a query.
type Result struct {
	MessageID  string
	AuthorID   string
	AuthorName string
	Timestamp  string
	Content    string
	Snippet    string
	ReplyToID  string
	Rank       float64
}

type Options struct {
	Query        string
	Author       string // "" = all, else author id
	Since        string // "" = no filter, else YYYY-MM-DD
	Limit        int
	OnePerAuthor bool // keep only the best-ranked hit per author
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
// FTS5's unicode61 tokenizer cannot split those, so substring matching is
// used instead.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search runs a full-text query over the archive, falling back to LIKE
// matching for CJK queries.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after.
	origLimit := opts.Limit
	if opts.OnePerAuthor {
		opts.Limit = origLimit * 3
	}

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	if !opts.OnePerAuthor {
		return results, nil
	}

	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.AuthorID] {
			continue
		}
		seen[r.AuthorID] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

// ListAll returns archived messages newest first, optionally filtered,
// without a text query. Used by browse mode.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	conditions := []string{"1=1"}
	var args []interface{}
	if opts.Author != "" {
		conditions = append(conditions, "author_id = ?")
		args = append(args, opts.Author)
	}
	if opts.Since != "" {
		conditions = append(conditions, "ts_sort >= ?")
		args = append(args, opts.Since)
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
		SELECT id, author_id, author_name, ts, content, reply_to
		FROM messages
		WHERE %s
		ORDER BY ts_sort DESC, seq DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.MessageID, &r.AuthorID, &r.AuthorName, &r.Timestamp, &r.Content, &r.ReplyToID); err != nil {
			return nil, err
		}
		r.Snippet = r.Content
		results = append(results, r)
	}
	return results, rows.Err()
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []interface{}{opts.Query}

	if opts.Author != "" {
		conditions = append(conditions, "m.author_id = ?")
		args = append(args, opts.Author)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts_sort >= ?")
		args = append(args, opts.Since)
	}

	query := fmt.Sprintf(`
		SELECT
			m.id,
			m.author_id,
			m.author_name,
			m.ts,
			m.content,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 40) as snip,
			m.reply_to,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.content LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	if opts.Author != "" {
		conditions = append(conditions, "m.author_id = ?")
		args = append(args, opts.Author)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts_sort >= ?")
		args = append(args, opts.Since)
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.author_id, m.author_name, m.ts, m.content, m.reply_to
		FROM messages m
		WHERE %s
		ORDER BY m.ts_sort DESC, m.seq DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.MessageID, &r.AuthorID, &r.AuthorName, &r.Timestamp, &r.Content, &r.ReplyToID); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(r.Content, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.MessageID, &r.AuthorID, &r.AuthorName,
			&r.Timestamp, &r.Content, &r.Snippet, &r.ReplyToID, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
