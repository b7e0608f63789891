package render

import (
	"io"
	"sort"

	"github.com/rickeev/discord-message-extractor/internal/analyze"
	"github.com/rickeev/discord-message-extractor/internal/store"
)

// Renderer writes one user's bundle in a single output format. The full
// store is passed alongside so renderers can print reply-context previews
// for targets outside the included set.
type Renderer interface {
	Ext() string
	Render(w io.Writer, b *analyze.Bundle, st *store.Store) error
}

var renderers = map[string]Renderer{
	"txt":  Text{},
	"json": JSON{},
	"csv":  CSV{},
	"md":   Markdown{},
	"html": HTML{},
}

// Lookup resolves a format name to its renderer.
func Lookup(name string) (Renderer, bool) {
	r, ok := renderers[name]
	return r, ok
}

// Names returns all registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// repliedToByCount flattens the bundle's reply tallies, most-replied
// first; ties broken by user id for deterministic output.
type repliedUser struct {
	UserID string
	Name   string
	Count  int
}

func repliedToByCount(b *analyze.Bundle) []repliedUser {
	users := make([]repliedUser, 0, len(b.RepliedTo))
	for id, t := range b.RepliedTo {
		users = append(users, repliedUser{UserID: id, Name: t.Name, Count: t.Count})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Count != users[j].Count {
			return users[i].Count > users[j].Count
		}
		return users[i].UserID < users[j].UserID
	})
	return users
}

func dateRange(b *analyze.Bundle) string {
	if b.FirstTimestamp != "" && b.LastTimestamp != "" {
		return b.FirstTimestamp + " → " + b.LastTimestamp
	}
	return "N/A"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
