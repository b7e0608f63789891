package render

import (
	"encoding/csv"
	"io"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// CSV renders one row per included message with reply-target columns.
type CSV struct{}

func (CSV) Ext() string { return "csv" }

func (CSV) Render(w io.Writer, b *analyze.Bundle, st *store.Store) error {
	cw := csv.NewWriter(w)

	header := []string{"Timestamp", "User ID", "Username", "Content", "Reply To User", "Reply To Content", "Message ID"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, msg := range b.Messages {
		var replyUser, replyContent string
		if msg.ReplyToID != "" {
			if m, ok := st.Get(msg.ReplyToID); ok {
				replyUser = m.AuthorName
				replyContent = m.Content
			}
		}
		row := []string{msg.Timestamp, b.UserID, b.Username, msg.Content, replyUser, replyContent, msg.ID}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
