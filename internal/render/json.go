package render

import (
	"encoding/json"
	"io"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// JSON renders the archive as a single indented JSON document.
type JSON struct{}

func (JSON) Ext() string { return "json" }

type jsonDateRange struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type jsonRepliedUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

type jsonReplyTo struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type jsonMessage struct {
	Timestamp        string       `json:"timestamp"`
	Content          string       `json:"content"`
	MessageID        string       `json:"message_id"`
	ReplyChainLength int          `json:"reply_chain_length"`
	ReplyTo          *jsonReplyTo `json:"reply_to"`
}

type jsonDoc struct {
	UserID       string             `json:"user_id"`
	Username     string             `json:"username"`
	Color        string             `json:"color"`
	MessageCount int                `json:"message_count"`
	DateRange    jsonDateRange      `json:"date_range"`
	Statistics   analyze.Statistics `json:"statistics"`
	RepliedTo    []jsonRepliedUser  `json:"replied_to_users"`
	Messages     []jsonMessage      `json:"messages"`
}

func (JSON) Render(w io.Writer, b *analyze.Bundle, st *store.Store) error {
	doc := jsonDoc{
		UserID:       b.UserID,
		Username:     b.Username,
		Color:        b.Color,
		MessageCount: len(b.Messages),
		DateRange:    jsonDateRange{First: b.FirstTimestamp, Last: b.LastTimestamp},
		Statistics:   b.Stats,
		RepliedTo:    []jsonRepliedUser{},
		Messages:     []jsonMessage{},
	}

	for _, u := range repliedToByCount(b) {
		doc.RepliedTo = append(doc.RepliedTo, jsonRepliedUser{
			UserID: u.UserID, Username: u.Name, Count: u.Count,
		})
	}

	for _, msg := range b.Messages {
		jm := jsonMessage{
			Timestamp:        msg.Timestamp,
			Content:          msg.Content,
			MessageID:        msg.ID,
			ReplyChainLength: len(msg.ChainIDs),
		}
		if msg.ReplyToID != "" {
			if m, ok := st.Get(msg.ReplyToID); ok {
				jm.ReplyTo = &jsonReplyTo{
					UserID:    m.AuthorID,
					Username:  m.AuthorName,
					Content:   m.Content,
					Timestamp: m.Timestamp,
				}
			}
		}
		doc.Messages = append(doc.Messages, jm)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
