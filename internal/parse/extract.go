package parse

import (
	"html"
	"regexp"
	"strings"

	"github.com/rickeev/discord-message-extractor/internal/store"
)

// Markup patterns of the chat-log export. Attribute values may or may not
// be quoted, so every class match tolerates an optional quote. The export
// is not guaranteed to be well-formed; these are best-effort anchors, not
// a grammar.
var (
	messageIDRe   = regexp.MustCompile(`(?i)<div\s+id\s*=\s*["']?chatlog__message-container-(\d+)`)
	replyDivRe    = regexp.MustCompile(`(?is)<div\s+class\s*=\s*["']?chatlog__reply[^>]*>(.*?)</div>\s*<div\s+class\s*=\s*["']?chatlog__header`)
	replyLinkRe   = regexp.MustCompile(`(?i)scrollToMessage\(event,\s*['"](\d+)['"]\)`)
	authorRe      = regexp.MustCompile(`(?is)<span\s+class\s*=\s*["']?chatlog__author[^>]*data-user-id\s*=\s*["']?(\d+)[^>]*>(.*?)</span>`)
	colorRe       = regexp.MustCompile(`(?i)style\s*=\s*["']?color\s*:\s*([^ >;"']+)`)
	fullTsRe      = regexp.MustCompile(`(?is)<span\s+class\s*=\s*["']?chatlog__timestamp[^>]*>.*?<a[^>]*>(.*?)</a>`)
	titleTsRe     = regexp.MustCompile(`(?is)<span\s+class\s*=\s*["']?chatlog__timestamp[^>]*title\s*=\s*["'](.*?)["']`)
	shortTsRe     = regexp.MustCompile(`(?is)<div\s+class\s*=\s*["']?chatlog__short-timestamp[^>]*>(.*?)</div>`)
	preserveRe    = regexp.MustCompile(`(?is)<span\s+class\s*=\s*["']?chatlog__markdown-preserve[^>]*>(.*?)</span>`)
	contentDivRe  = regexp.MustCompile(`(?is)<div\s+class\s*=\s*["']?chatlog__content[^>]*>(.*?)</div>`)
	attachMarkRe  = regexp.MustCompile(`(?i)class\s*=\s*["']?chatlog__attachment`)
	attachHrefRe  = regexp.MustCompile(`(?i)<a\s+[^>]*href\s*=\s*["']([^"']+)["'][^>]*>`)
	imgAltRe      = regexp.MustCompile(`(?i)<img[^>]+alt\s*=\s*["']([^"'>]+?)["']`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	spaceVariants = strings.NewReplacer(" ", " ", " ", " ", " ", " ")
)

func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// normalizeSpaces maps non-breaking/narrow space variants to ordinary
// spaces and trims.
func normalizeSpaces(s string) string {
	return strings.TrimSpace(spaceVariants.Replace(s))
}

// extractMessage produces a message record from one container span,
// mutating state so inherited fields persist to later containers. The
// bool result is false when the container has no parsable id: such a
// container cannot be addressed by replies and is skipped silently.
func extractMessage(container string, state *ScanState) (store.Message, bool) {
	idm := messageIDRe.FindStringSubmatch(container)
	if idm == nil {
		return store.Message{}, false
	}

	// Reply preview precedes the header region; its absence means an
	// original message.
	var replyTo string
	if rm := replyDivRe.FindStringSubmatch(container); rm != nil {
		if lm := replyLinkRe.FindStringSubmatch(rm[1]); lm != nil {
			replyTo = lm[1]
		}
	}

	// An explicit author marker makes this container the new run head;
	// otherwise the current run's author carries forward.
	if am := authorRe.FindStringSubmatch(container); am != nil {
		state.LastAuthorID = strings.TrimSpace(am[1])
		state.LastAuthorName = strings.TrimSpace(stripTags(am[2]))
		if cm := colorRe.FindStringSubmatch(container); cm != nil {
			state.LastAuthorColor = strings.TrimSpace(cm[1])
		}
	}
	authorName := state.LastAuthorName
	if authorName == "" {
		authorName = UnknownAuthor
	}

	ts := extractTimestamp(container, state)
	if ts == "" {
		ts = UnknownTimestamp
	}

	return store.Message{
		ID:          idm[1],
		AuthorID:    state.LastAuthorID,
		AuthorName:  authorName,
		AuthorColor: state.LastAuthorColor,
		Content:     extractContent(container),
		Timestamp:   ts,
		ReplyToID:   replyTo,
	}, true
}

// extractTimestamp tries the three mutually exclusive timestamp renderings
// in order: full timestamp as link text, full timestamp in a title
// attribute, then a short time-only form completed with the last known
// date. Returns "" when nothing matched.
func extractTimestamp(container string, state *ScanState) string {
	if m := fullTsRe.FindStringSubmatch(container); m != nil {
		raw := normalizeSpaces(stripTags(m[1]))
		for _, part := range strings.Fields(raw) {
			if strings.Contains(part, "/") {
				state.LastKnownDate = part
				break
			}
		}
		return raw
	}
	if m := titleTsRe.FindStringSubmatch(container); m != nil {
		return normalizeSpaces(stripTags(m[1]))
	}
	if m := shortTsRe.FindStringSubmatch(container); m != nil {
		short := normalizeSpaces(stripTags(m[1]))
		if state.LastKnownDate != "" {
			return state.LastKnownDate + " " + short
		}
		return short
	}
	return ""
}

// extractContent prefers the preserve-formatting span over the generic
// content container. Empty text falls back to attachment and image
// placeholders before character references are decoded.
func extractContent(container string) string {
	var raw string
	if m := preserveRe.FindStringSubmatch(container); m != nil {
		raw = m[1]
	} else if m := contentDivRe.FindStringSubmatch(container); m != nil {
		raw = m[1]
	}

	content := strings.TrimSpace(stripTags(raw))
	if content == "" {
		if attachMarkRe.MatchString(container) {
			if hm := attachHrefRe.FindStringSubmatch(container); hm != nil {
				content = "[Attachment: " + attachmentName(hm[1]) + "]"
			} else {
				content = "[Attachment]"
			}
		} else if im := imgAltRe.FindStringSubmatch(container); im != nil {
			content = "[Image/Emoji: " + strings.TrimSpace(im[1]) + "]"
		}
	}

	return html.UnescapeString(content)
}

// attachmentName derives a filename from an href: final path segment,
// query string stripped.
func attachmentName(href string) string {
	name := href
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return name
}
