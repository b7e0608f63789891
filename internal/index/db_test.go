package index

import (
	"path/filepath"
	"testing"

	"github.com/rickeev/discord-message-extractor/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "dmx.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func fixtureStore(ids ...string) *store.Store {
	st := store.New()
	for i, id := range ids {
		st.Put(store.Message{
			ID:         id,
			AuthorID:   "100",
			AuthorName: "Alice",
			Content:    "message " + id,
			Timestamp:  "01/05/2024 3:0" + string(rune('0'+i%10)) + " PM",
		})
	}
	return st
}

func TestIndexStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)

	st := store.New()
	st.Put(store.Message{
		ID: "1", AuthorID: "200", AuthorName: "Bob", AuthorColor: "#00ff00",
		Content: "Hello there", Timestamp: "01/05/2024 3:00 PM",
	})
	st.Put(store.Message{
		ID: "2", AuthorID: "100", AuthorName: "Alice",
		Content: "hi Bob", Timestamp: "01/05/2024 3:05 PM", ReplyToID: "1",
	})

	stats, err := IndexStore(db, "/srv/chat.html", 1700000000, 4096, st)
	if err != nil {
		t.Fatalf("IndexStore: %v", err)
	}
	if stats.Messages != 2 {
		t.Errorf("stats.Messages = %d, want 2", stats.Messages)
	}

	m, err := db.GetMessage("2")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if m == nil {
		t.Fatal("GetMessage(2) = nil")
	}
	if m.AuthorName != "Alice" || m.Content != "hi Bob" || m.ReplyToID != "1" {
		t.Errorf("round trip mismatch: %+v", m)
	}

	m, err = db.GetMessage("1")
	if err != nil || m == nil {
		t.Fatalf("GetMessage(1) = %v, %v", m, err)
	}
	if m.AuthorColor != "#00ff00" {
		t.Errorf("AuthorColor = %q", m.AuthorColor)
	}

	absent, err := db.GetMessage("999")
	if err != nil {
		t.Fatalf("GetMessage(999): %v", err)
	}
	if absent != nil {
		t.Errorf("GetMessage(999) = %+v, want nil", absent)
	}
}

func TestNeedsUpdate(t *testing.T) {
	db := openTestDB(t)

	needed, err := NeedsUpdate(db, "/srv/chat.html", 100, 1000)
	if err != nil {
		t.Fatalf("NeedsUpdate: %v", err)
	}
	if !needed {
		t.Error("unindexed input should need update")
	}

	if _, err := IndexStore(db, "/srv/chat.html", 100, 1000, fixtureStore("1")); err != nil {
		t.Fatalf("IndexStore: %v", err)
	}

	needed, err = NeedsUpdate(db, "/srv/chat.html", 100, 1000)
	if err != nil {
		t.Fatalf("NeedsUpdate: %v", err)
	}
	if needed {
		t.Error("matching fingerprint should not need update")
	}

	needed, err = NeedsUpdate(db, "/srv/chat.html", 101, 1000)
	if err != nil {
		t.Fatalf("NeedsUpdate: %v", err)
	}
	if !needed {
		t.Error("changed mtime should need update")
	}
}

func TestReindexReplacesArchive(t *testing.T) {
	db := openTestDB(t)

	if _, err := IndexStore(db, "/srv/chat.html", 1, 1, fixtureStore("1", "2", "3")); err != nil {
		t.Fatalf("IndexStore: %v", err)
	}
	if _, err := IndexStore(db, "/srv/chat.html", 2, 2, fixtureStore("1", "2")); err != nil {
		t.Fatalf("re-IndexStore: %v", err)
	}

	n, err := db.MessageCount()
	if err != nil {
		t.Fatalf("MessageCount: %v", err)
	}
	if n != 2 {
		t.Errorf("MessageCount = %d, want 2 after re-index", n)
	}

	archives, err := db.ArchiveCount()
	if err != nil {
		t.Fatalf("ArchiveCount: %v", err)
	}
	if archives != 1 {
		t.Errorf("ArchiveCount = %d, want 1", archives)
	}
}

func TestArchivesAreIndependent(t *testing.T) {
	db := openTestDB(t)

	if _, err := IndexStore(db, "/srv/a.html", 1, 1, fixtureStore("a1", "a2")); err != nil {
		t.Fatalf("IndexStore a: %v", err)
	}
	if _, err := IndexStore(db, "/srv/b.html", 1, 1, fixtureStore("b1")); err != nil {
		t.Fatalf("IndexStore b: %v", err)
	}
	// Re-indexing one archive leaves the other alone.
	if _, err := IndexStore(db, "/srv/a.html", 2, 2, fixtureStore("a1")); err != nil {
		t.Fatalf("re-IndexStore a: %v", err)
	}

	n, err := db.MessageCount()
	if err != nil {
		t.Fatalf("MessageCount: %v", err)
	}
	if n != 2 {
		t.Errorf("MessageCount = %d, want 2 (a1 + b1)", n)
	}
}

func TestFTSStaysInSync(t *testing.T) {
	db := openTestDB(t)

	if _, err := IndexStore(db, "/srv/chat.html", 1, 1, fixtureStore("1", "2", "3")); err != nil {
		t.Fatalf("IndexStore: %v", err)
	}
	if _, err := IndexStore(db, "/srv/chat.html", 2, 2, fixtureStore("1", "2")); err != nil {
		t.Fatalf("re-IndexStore: %v", err)
	}

	msgCount, err := db.MessageCount()
	if err != nil {
		t.Fatalf("MessageCount: %v", err)
	}

	var ftsCount int
	if err := db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount); err != nil {
		t.Fatalf("fts count: %v", err)
	}
	if ftsCount != msgCount {
		t.Errorf("fts entries = %d, messages = %d", ftsCount, msgCount)
	}
}

func TestGetArchive(t *testing.T) {
	db := openTestDB(t)

	info, err := db.GetArchive("/srv/missing.html")
	if err != nil {
		t.Fatalf("GetArchive: %v", err)
	}
	if info != nil {
		t.Errorf("GetArchive on missing = %+v, want nil", info)
	}

	if _, err := IndexStore(db, "/srv/chat.html", 42, 4096, fixtureStore("1", "2")); err != nil {
		t.Fatalf("IndexStore: %v", err)
	}

	info, err = db.GetArchive("/srv/chat.html")
	if err != nil {
		t.Fatalf("GetArchive: %v", err)
	}
	if info == nil {
		t.Fatal("GetArchive = nil after indexing")
	}
	if info.Mtime != 42 || info.Size != 4096 || info.MessageCount != 2 {
		t.Errorf("GetArchive = %+v", info)
	}
}
