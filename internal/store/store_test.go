package store

import (
	"reflect"
	"testing"
)

func TestPutOverwriteKeepsOrder(t *testing.T) {
	s := New()
	s.Put(Message{ID: "1", Content: "first"})
	s.Put(Message{ID: "2", Content: "second"})
	s.Put(Message{ID: "1", Content: "edited"})

	if s.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", s.Len())
	}

	m, ok := s.Get("1")
	if !ok {
		t.Fatal("message 1 not found")
	}
	if m.Content != "edited" {
		t.Errorf("expected last write to win, got %q", m.Content)
	}

	msgs := s.Messages()
	if msgs[0].ID != "1" || msgs[1].ID != "2" {
		t.Errorf("overwrite changed insertion order: %v, %v", msgs[0].ID, msgs[1].ID)
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Error("expected missing id to report not found")
	}
}

func TestChainWalk(t *testing.T) {
	s := New()
	s.Put(Message{ID: "a", ReplyToID: "b"})
	s.Put(Message{ID: "b", ReplyToID: "c"})
	s.Put(Message{ID: "c"})

	got := s.Chain("a", DefaultChainDepth)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chain(a) = %v, want %v", got, want)
	}
}

func TestChainStopsAtMissingTarget(t *testing.T) {
	s := New()
	s.Put(Message{ID: "a", ReplyToID: "gone"})

	got := s.Chain("a", DefaultChainDepth)
	want := []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Chain(a) = %v, want %v", got, want)
	}
}

func TestChainDepthCapOnCycle(t *testing.T) {
	s := New()
	s.Put(Message{ID: "a", ReplyToID: "b"})
	s.Put(Message{ID: "b", ReplyToID: "a"})

	got := s.Chain("a", 5)
	if len(got) != 5 {
		t.Fatalf("cyclic chain length = %d, want exactly 5", len(got))
	}
	want := []string{"a", "b", "a", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cyclic chain = %v, want %v", got, want)
	}
}

func TestChainMissingStart(t *testing.T) {
	s := New()
	if got := s.Chain("absent", DefaultChainDepth); len(got) != 0 {
		t.Errorf("expected empty chain for absent start, got %v", got)
	}
}

func TestChainDefaultDepth(t *testing.T) {
	s := New()
	s.Put(Message{ID: "a", ReplyToID: "a"})

	if got := s.Chain("a", 0); len(got) != DefaultChainDepth {
		t.Errorf("zero cap should fall back to default, got %d entries", len(got))
	}
}
