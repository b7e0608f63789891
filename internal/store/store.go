package store

// Message is one reconstructed chat message. Immutable once stored.
type Message struct {
	ID          string
	AuthorID    string // "" if no author was ever resolved
	AuthorName  string
	AuthorColor string // display color, "" when the export never carried one
	Content     string // plain text, may be a placeholder like "[Attachment: x]"
	Timestamp   string // raw textual timestamp, UNKNOWN_TIMESTAMP sentinel if unrecoverable
	ReplyToID   string // id of the replied-to message, "" for original messages
}

// IsReply reports whether the message declares a reply target. The target
// may or may not exist in the store (pagination boundaries drop messages).
func (m Message) IsReply() bool {
	return m.ReplyToID != ""
}

// DefaultChainDepth caps reply-chain walks. The cap is the only protection
// against cyclic reply graphs in malformed exports.
const DefaultChainDepth = 5

// Store is an ordered, id-keyed collection of messages built during the
// scan pass and read-only afterwards. Re-inserting an existing id
// overwrites the record but keeps its original position (live-edit
// artifacts in the export: last write wins).
type Store struct {
	byID  map[string]Message
	order []string
}

func New() *Store {
	return &Store{byID: make(map[string]Message)}
}

// Put inserts or overwrites the message keyed by its id.
func (s *Store) Put(m Message) {
	if _, ok := s.byID[m.ID]; !ok {
		s.order = append(s.order, m.ID)
	}
	s.byID[m.ID] = m
}

// Get looks up a message by id. Missing ids are expected, not errors.
func (s *Store) Get(id string) (Message, bool) {
	m, ok := s.byID[id]
	return m, ok
}

func (s *Store) Len() int {
	return len(s.order)
}

// Messages returns all messages in insertion order.
func (s *Store) Messages() []Message {
	out := make([]Message, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Chain walks the reply ancestry starting at startID, nearest-first.
// The walk stops at an id absent from the store, at a message with no
// reply target, or after maxDepth hops, whichever comes first. A depth
// cap <= 0 falls back to DefaultChainDepth.
func (s *Store) Chain(startID string, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultChainDepth
	}
	var chain []string
	cur := startID
	for depth := 0; depth < maxDepth; depth++ {
		m, ok := s.byID[cur]
		if !ok {
			break
		}
		chain = append(chain, cur)
		if m.ReplyToID == "" {
			break
		}
		cur = m.ReplyToID
	}
	return chain
}
