package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rickeev/discord-message-extractor/internal/store"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS archives (
    input_path    TEXT PRIMARY KEY,
    mtime         INTEGER NOT NULL DEFAULT 0,
    size          INTEGER NOT NULL DEFAULT 0,
    message_count INTEGER NOT NULL DEFAULT 0,
    indexed_at    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS messages (
    id           TEXT PRIMARY KEY,
    archive      TEXT NOT NULL,
    seq          INTEGER NOT NULL,
    author_id    TEXT NOT NULL DEFAULT '',
    author_name  TEXT NOT NULL DEFAULT '',
    author_color TEXT NOT NULL DEFAULT '',
    content      TEXT NOT NULL,
    ts           TEXT NOT NULL DEFAULT '',
    ts_sort      TEXT NOT NULL DEFAULT '',
    reply_to     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS messages_archive ON messages(archive);
CREATE INDEX IF NOT EXISTS messages_ts_sort ON messages(ts_sort);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    content,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;
`

// schemaVersion should be bumped whenever extraction logic changes to
// force a full re-index.
const schemaVersion = "1"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// force re-index by invalidating archive fingerprints
		d.db.Exec("UPDATE archives SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

// ArchiveInfo is the stored fingerprint of one indexed input file.
type ArchiveInfo struct {
	Mtime        int64
	Size         int64
	MessageCount int
}

func (d *DB) GetArchive(inputPath string) (*ArchiveInfo, error) {
	var info ArchiveInfo
	err := d.db.QueryRow(
		"SELECT mtime, size, message_count FROM archives WHERE input_path = ?",
		inputPath,
	).Scan(&info.Mtime, &info.Size, &info.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetMessage looks up an archived message by id; nil when absent.
func (d *DB) GetMessage(id string) (*store.Message, error) {
	var m store.Message
	err := d.db.QueryRow(
		"SELECT id, author_id, author_name, author_color, content, ts, reply_to FROM messages WHERE id = ?",
		id,
	).Scan(&m.ID, &m.AuthorID, &m.AuthorName, &m.AuthorColor, &m.Content, &m.Timestamp, &m.ReplyToID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

func (d *DB) ArchiveCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM archives").Scan(&n)
	return n, err
}
