package analyze

import (
	"strings"
	"time"

	"github.com/rickeev/discord-message-extractor/internal/parse"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// Filters are the inclusion predicates supplied by the CLI layer.
// Zero values mean "no filter".
type Filters struct {
	DateFrom       string // inclusive lower bound, accepted timestamp format
	DateTo         string // inclusive upper bound
	Search         string // case-insensitive substring of content
	ExcludeReplies bool
	ChainDepth     int // reply-chain cap, 0 = store.DefaultChainDepth
}

// predicate is the compiled form of Filters: bounds parsed once, search
// term lowercased once.
type predicate struct {
	search         string
	from, to       time.Time
	hasFrom, hasTo bool
	excludeReplies bool
}

// compile parses the date bounds. An unparseable bound is dropped rather
// than failing the run; the filter degrades to a no-op on that side.
func compile(f Filters) predicate {
	p := predicate{
		search:         strings.ToLower(f.Search),
		excludeReplies: f.ExcludeReplies,
	}
	if f.DateFrom != "" {
		p.from, p.hasFrom = parse.ParseTimestamp(f.DateFrom)
	}
	if f.DateTo != "" {
		p.to, p.hasTo = parse.ParseTimestamp(f.DateTo)
	}
	return p
}

// include applies the predicates in order: reply exclusion, search term,
// date range. Messages whose timestamp cannot be parsed are never excluded
// by the date range.
func (p predicate) include(m store.Message) bool {
	if p.excludeReplies && m.IsReply() {
		return false
	}
	if p.search != "" && !strings.Contains(strings.ToLower(m.Content), p.search) {
		return false
	}
	if p.hasFrom || p.hasTo {
		if ts, ok := parse.ParseTimestamp(m.Timestamp); ok {
			if p.hasFrom && ts.Before(p.from) {
				return false
			}
			if p.hasTo && ts.After(p.to) {
				return false
			}
		}
	}
	return true
}
