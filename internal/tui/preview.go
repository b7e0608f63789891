package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rickeev/discord-message-extractor/internal/index"
	"github.com/rickeev/discord-message-extractor/internal/render"
	"github.com/rickeev/discord-message-extractor/internal/search"
)

// previewRenderedMsg is sent when an async reply-chain render completes.
type previewRenderedMsg struct {
	messageID string
	content   string
	hitLine   int
	err       error
}

// loadPreviewCmd returns a tea.Cmd that renders the reply chain async.
func loadPreviewCmd(db *index.DB, r search.Result, query string, depth, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderContext(db, r.MessageID, render.ContextOptions{
			Depth: depth,
			Width: width,
			Query: query,
		})
		return previewRenderedMsg{
			messageID: r.MessageID,
			content:   content,
			hitLine:   hitLine,
			err:       err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
