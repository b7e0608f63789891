package parse

import "time"

// timestampLayouts are the accepted textual timestamp formats, tried in
// order, first match wins. The date-only layout lets --date-from/--date-to
// values parse to midnight, making the lower bound inclusive.
var timestampLayouts = []string{
	"01/02/2006 3:04 PM",
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseTimestamp parses a textual timestamp against the accepted layouts.
// ok is false when none match; callers treat unparseable timestamps as
// "passes date filters, excluded from histograms".
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
