package parse

import "fmt"

// Sentinels for fields the export never resolved.
const (
	UnknownTimestamp = "UNKNOWN_TIMESTAMP"
	UnknownAuthor    = "Unknown"
)

// ScanState carries the fields the export renders only on the first
// message of a run. Subsequent containers omit the author header and
// short timestamps omit the date, so both inherit from here. It is
// threaded by pointer through every container extraction and never
// stored globally.
type ScanState struct {
	LastKnownDate   string // most recent full date seen, completes short timestamps
	LastAuthorID    string
	LastAuthorName  string
	LastAuthorColor string
}

// Stats summarizes one scan pass.
type Stats struct {
	Groups     int
	Containers int
	Skipped    int // containers without a parsable id
}

func (s Stats) String() string {
	return fmt.Sprintf("groups=%d containers=%d skipped=%d", s.Groups, s.Containers, s.Skipped)
}
