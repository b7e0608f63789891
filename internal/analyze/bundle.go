package analyze

import (
	"errors"

	"github.com/rickeev/discord-message-extractor/internal/store"
)

// ErrNoData reports a target user id that never appears as an author
// anywhere in the store. It is distinct from a bundle whose filters
// excluded every message: that returns a bundle with zero messages and a
// resolved username.
var ErrNoData = errors.New("no messages authored by user")

// IncludedMessage is one message that passed the filters, annotated with
// its resolved reply-chain ids (nearest-first).
type IncludedMessage struct {
	ID        string
	Timestamp string
	Content   string
	ReplyToID string
	ChainIDs  []string
}

// ReplyTally counts replies to one other user.
type ReplyTally struct {
	Name  string
	Count int
}

// Bundle is the per-target-user result of pass 2, rebuilt each run and
// never mutated afterwards.
type Bundle struct {
	UserID         string
	Username       string
	Color          string
	Messages       []IncludedMessage
	RepliedTo      map[string]ReplyTally // other-user id -> tally
	FirstTimestamp string
	LastTimestamp  string
	Stats          Statistics
}

// Build iterates the completed store once and assembles the user's bundle.
// The store is only read; bundles for different users can be built
// concurrently.
func Build(userID string, st *store.Store, f Filters) (*Bundle, error) {
	pred := compile(f)
	depth := f.ChainDepth
	if depth <= 0 {
		depth = store.DefaultChainDepth
	}

	b := &Bundle{
		UserID:    userID,
		RepliedTo: make(map[string]ReplyTally),
	}

	authored := false
	for _, m := range st.Messages() {
		if m.AuthorID != userID {
			continue
		}
		if !authored {
			authored = true
			b.Username = m.AuthorName
			b.Color = m.AuthorColor
		}

		if !pred.include(m) {
			continue
		}

		if b.FirstTimestamp == "" {
			b.FirstTimestamp = m.Timestamp
		}
		b.LastTimestamp = m.Timestamp

		var chain []string
		if m.ReplyToID != "" {
			if parent, ok := st.Get(m.ReplyToID); ok {
				// Replying to oneself is not tallied.
				if parent.AuthorID != userID {
					t := b.RepliedTo[parent.AuthorID]
					t.Name = parent.AuthorName
					t.Count++
					b.RepliedTo[parent.AuthorID] = t
				}
				chain = st.Chain(m.ReplyToID, depth)
			}
		}

		b.Messages = append(b.Messages, IncludedMessage{
			ID:        m.ID,
			Timestamp: m.Timestamp,
			Content:   m.Content,
			ReplyToID: m.ReplyToID,
			ChainIDs:  chain,
		})
	}

	if !authored {
		return nil, ErrNoData
	}

	if b.Color == "" {
		b.Color = "N/A"
	}
	b.Stats = computeStats(b.Messages)
	return b, nil
}
