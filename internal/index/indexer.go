package index

import (
	"fmt"
	"time"

	"github.com/rickeev/discord-message-extractor/internal/parse"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// sortableTS is a lexically sortable rendering of parseable timestamps,
// used for newest-first listing and since-date filters. Unparseable
// timestamps sort last as "".
const sortableTS = "2006-01-02T15:04:05"

type Stats struct {
	Messages int
	Skipped  bool // fingerprint unchanged, nothing re-indexed
}

func (s Stats) String() string {
	if s.Skipped {
		return "unchanged, skipped"
	}
	return fmt.Sprintf("messages=%d", s.Messages)
}

// NeedsUpdate compares the input's fingerprint with the archive record.
func NeedsUpdate(db *DB, inputPath string, mtime, size int64) (bool, error) {
	info, err := db.GetArchive(inputPath)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // never indexed
	}
	return info.Mtime != mtime || info.Size != size, nil
}

// IndexStore replaces the archive of inputPath with the contents of a
// completed message store, transactionally.
func IndexStore(db *DB, inputPath string, mtime, size int64, st *store.Store) (Stats, error) {
	var stats Stats

	tx, err := db.Raw().Begin()
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE archive = ?", inputPath); err != nil {
		return stats, err
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO messages (id, archive, seq, author_id, author_name, author_color, content, ts, ts_sort, reply_to)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer stmt.Close()

	for seq, m := range st.Messages() {
		tsSort := ""
		if ts, ok := parse.ParseTimestamp(m.Timestamp); ok {
			tsSort = ts.Format(sortableTS)
		}
		if _, err := stmt.Exec(
			m.ID, inputPath, seq,
			m.AuthorID, m.AuthorName, m.AuthorColor,
			m.Content, m.Timestamp, tsSort, m.ReplyToID,
		); err != nil {
			return stats, err
		}
		stats.Messages++
	}

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO archives (input_path, mtime, size, message_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		inputPath, mtime, size, stats.Messages,
		time.Now().UTC().Format(sortableTS),
	)
	if err != nil {
		return stats, err
	}

	return stats, tx.Commit()
}
