package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

func testStore() *store.Store {
	st := store.New()
	st.Put(store.Message{
		ID: "1", AuthorID: "200", AuthorName: "Bob",
		Content: "Hello there", Timestamp: "01/05/2024 3:00 PM",
	})
	st.Put(store.Message{
		ID: "2", AuthorID: "100", AuthorName: "Alice", AuthorColor: "#ff0000",
		Content: "hi Bob", Timestamp: "01/05/2024 3:05 PM", ReplyToID: "1",
	})
	st.Put(store.Message{
		ID: "3", AuthorID: "100", AuthorName: "Alice", AuthorColor: "#ff0000",
		Content: "[Attachment: file.pdf]", Timestamp: "01/05/2024 4:00 PM",
	})
	return st
}

func testBundle(t *testing.T, st *store.Store) *analyze.Bundle {
	t.Helper()
	b, err := analyze.Build("100", st, analyze.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return b
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"txt", "json", "csv", "md", "html"} {
		r, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if r.Ext() != name {
			t.Errorf("Lookup(%q).Ext() = %q", name, r.Ext())
		}
	}
	if _, ok := Lookup("pdf"); ok {
		t.Error("Lookup(pdf) should not resolve")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"csv", "html", "json", "md", "txt"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestTextRender(t *testing.T) {
	st := testStore()
	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (Text{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Username  : Alice",
		"User ID   : 100",
		"Color     : #ff0000",
		"Messages  : 2",
		"Bob (ID: 200): 1 time",
		"[CONTEXT]",
		"[01/05/2024 3:00 PM] Bob (ID: 200):",
		"[01/05/2024 3:05 PM] 100: hi Bob",
		"[01/05/2024 4:00 PM] 100: [Attachment: file.pdf]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q\n%s", want, out)
		}
	}
}

func TestTextRenderChainBox(t *testing.T) {
	st := store.New()
	st.Put(store.Message{ID: "1", AuthorID: "300", AuthorName: "Carol", Content: "root", Timestamp: "01/05/2024 1:00 PM"})
	st.Put(store.Message{ID: "2", AuthorID: "200", AuthorName: "Bob", Content: "mid", Timestamp: "01/05/2024 1:10 PM", ReplyToID: "1"})
	st.Put(store.Message{ID: "3", AuthorID: "100", AuthorName: "Alice", Content: "leaf", Timestamp: "01/05/2024 1:20 PM", ReplyToID: "2"})

	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (Text{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	boxStart := strings.Index(out, "[CONTEXT CHAIN]")
	if boxStart < 0 {
		t.Fatalf("expected chain box:\n%s", out)
	}
	// Furthest ancestor renders before the direct parent within the box.
	box := out[boxStart:]
	if strings.Index(box, "Carol") > strings.Index(box, "Bob (ID: 200)") {
		t.Errorf("chain should render furthest ancestor first:\n%s", box)
	}
}

func TestJSONRender(t *testing.T) {
	st := testStore()
	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (JSON{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		UserID       string `json:"user_id"`
		Username     string `json:"username"`
		MessageCount int    `json:"message_count"`
		Statistics   struct {
			TotalWords       int     `json:"total_words"`
			AvgMessageLength float64 `json:"avg_message_length"`
			Replies          int     `json:"replies"`
		} `json:"statistics"`
		RepliedTo []struct {
			Username string `json:"username"`
			Count    int    `json:"count"`
		} `json:"replied_to_users"`
		Messages []struct {
			MessageID string `json:"message_id"`
			ReplyTo   *struct {
				Username string `json:"username"`
				Content  string `json:"content"`
			} `json:"reply_to"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.UserID != "100" || doc.Username != "Alice" {
		t.Errorf("user = %s/%s", doc.UserID, doc.Username)
	}
	if doc.MessageCount != 2 || len(doc.Messages) != 2 {
		t.Errorf("message count = %d/%d", doc.MessageCount, len(doc.Messages))
	}
	// "hi Bob" = 2 words; the attachment placeholder contributes none.
	if doc.Statistics.TotalWords != 2 {
		t.Errorf("TotalWords = %d, want 2", doc.Statistics.TotalWords)
	}
	if doc.Statistics.AvgMessageLength != 1.0 {
		t.Errorf("AvgMessageLength = %v, want 1.0", doc.Statistics.AvgMessageLength)
	}
	if doc.Statistics.Replies != 1 {
		t.Errorf("Replies = %d, want 1", doc.Statistics.Replies)
	}
	if len(doc.RepliedTo) != 1 || doc.RepliedTo[0].Username != "Bob" || doc.RepliedTo[0].Count != 1 {
		t.Errorf("RepliedTo = %+v", doc.RepliedTo)
	}
	if doc.Messages[0].ReplyTo == nil || doc.Messages[0].ReplyTo.Content != "Hello there" {
		t.Errorf("reply_to = %+v", doc.Messages[0].ReplyTo)
	}
	if doc.Messages[1].ReplyTo != nil {
		t.Errorf("non-reply should have null reply_to, got %+v", doc.Messages[1].ReplyTo)
	}
}

func TestCSVRender(t *testing.T) {
	st := testStore()
	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (CSV{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	wantHeader := []string{"Timestamp", "User ID", "Username", "Content", "Reply To User", "Reply To Content", "Message ID"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v", records[0])
	}
	if records[1][3] != "hi Bob" || records[1][4] != "Bob" || records[1][5] != "Hello there" {
		t.Errorf("reply row = %v", records[1])
	}
	if records[2][4] != "" || records[2][5] != "" {
		t.Errorf("non-reply row should have empty reply columns: %v", records[2])
	}
}

func TestMarkdownRender(t *testing.T) {
	st := testStore()
	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (Markdown{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Alice", "hi Bob", "> ", "---"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestHTMLRenderEscapes(t *testing.T) {
	st := store.New()
	st.Put(store.Message{
		ID: "1", AuthorID: "100", AuthorName: "Alice",
		Content: `<script>alert("x")</script>`, Timestamp: "01/05/2024 3:00 PM",
	})
	b := testBundle(t, st)

	var buf bytes.Buffer
	if err := (HTML{}).Render(&buf, b, st); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>alert") {
		t.Error("content not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped content")
	}
	// No stored color: fall back to the default accent.
	if !strings.Contains(out, htmlAccentFallback) {
		t.Errorf("expected fallback accent %s", htmlAccentFallback)
	}
}

func TestRepliedToByCountOrdering(t *testing.T) {
	b := &analyze.Bundle{
		RepliedTo: map[string]analyze.ReplyTally{
			"300": {Name: "Carol", Count: 2},
			"200": {Name: "Bob", Count: 5},
			"400": {Name: "Dave", Count: 2},
		},
	}
	got := repliedToByCount(b)
	want := []repliedUser{
		{UserID: "200", Name: "Bob", Count: 5},
		{UserID: "300", Name: "Carol", Count: 2},
		{UserID: "400", Name: "Dave", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("repliedToByCount = %+v, want %+v", got, want)
	}
}
