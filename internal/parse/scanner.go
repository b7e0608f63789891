package parse

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/rickeev/discord-message-extractor/internal/store"
)

// maxLineSize bounds a single input line; exports occasionally render an
// entire attachment list on one line.
const maxLineSize = 10 * 1024 * 1024

var (
	groupStartRe     = regexp.MustCompile(`(?i)<div\s+class\s*=\s*["']?chatlog__message-group`)
	containerStartRe = regexp.MustCompile(`(?i)<div\s+id\s*=\s*["']?chatlog__message-container`)
)

// Scan consumes the export line by line in a single forward pass and
// returns the completed message store. Memory is bounded by the largest
// single message group: a group is buffered until the next group boundary
// (or end of stream) and then flushed. Invalid UTF-8 bytes are replaced,
// never fatal.
func Scan(r io.Reader) (*store.Store, Stats, error) {
	st := store.New()
	var stats Stats
	var state ScanState

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var group strings.Builder
	inGroup := false

	flush := func() {
		if group.Len() == 0 {
			return
		}
		stats.Groups++
		processGroup(group.String(), &state, st, &stats)
		group.Reset()
	}

	for sc.Scan() {
		line := strings.ToValidUTF8(sc.Text(), "�")

		if groupStartRe.MatchString(line) {
			if inGroup {
				flush()
			}
			inGroup = true
		}
		if inGroup {
			group.WriteString(line)
			group.WriteByte('\n')
		}
	}
	if inGroup {
		flush()
	}

	if err := sc.Err(); err != nil {
		return nil, stats, err
	}
	return st, stats, nil
}

// processGroup locates every message container inside a flushed group. A
// container runs from its start marker to the next sibling's start marker
// or end of group, whichever comes first.
func processGroup(group string, state *ScanState, st *store.Store, stats *Stats) {
	locs := containerStartRe.FindAllStringIndex(group, -1)
	for i, loc := range locs {
		end := len(group)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		stats.Containers++

		msg, ok := extractMessage(group[loc[0]:end], state)
		if !ok {
			stats.Skipped++
			continue
		}
		st.Put(msg)
	}
}
