package analyze

import (
	"strings"

	"github.com/rickeev/discord-message-extractor/internal/parse"
)

// Statistics describes the included message set. Histograms cover only
// messages with parseable timestamps; word counts skip bracketed
// placeholder content entirely, but the average-length denominator stays
// the total included message count.
type Statistics struct {
	TotalMessages    int            `json:"total_messages"`
	OriginalMessages int            `json:"original_messages"`
	Replies          int            `json:"replies"`
	TotalWords       int            `json:"total_words"`
	AvgMessageLength float64        `json:"avg_message_length"`
	MostActiveHour   int            `json:"most_active_hour"` // -1 when no parseable timestamps
	MostActiveHourN  int            `json:"most_active_hour_count"`
	MostActiveDay    string         `json:"most_active_day"` // "" when no parseable timestamps
	MostActiveDayN   int            `json:"most_active_day_count"`
	AvgReplyDepth    float64        `json:"avg_reply_depth"`
	HourHistogram    map[int]int    `json:"hour_distribution"`
	DayHistogram     map[string]int `json:"day_distribution"`
}

func computeStats(msgs []IncludedMessage) Statistics {
	s := Statistics{
		MostActiveHour: -1,
		HourHistogram:  make(map[int]int),
		DayHistogram:   make(map[string]int),
	}
	s.TotalMessages = len(msgs)

	var chainSum, chainN int
	var hourOrder []int
	var dayOrder []string

	for _, m := range msgs {
		if m.ReplyToID != "" {
			s.Replies++
		}

		if !strings.HasPrefix(m.Content, "[") {
			s.TotalWords += len(strings.Fields(m.Content))
		}

		if ts, ok := parse.ParseTimestamp(m.Timestamp); ok {
			h := ts.Hour()
			if _, seen := s.HourHistogram[h]; !seen {
				hourOrder = append(hourOrder, h)
			}
			s.HourHistogram[h]++

			d := ts.Weekday().String()
			if _, seen := s.DayHistogram[d]; !seen {
				dayOrder = append(dayOrder, d)
			}
			s.DayHistogram[d]++
		}

		if len(m.ChainIDs) > 0 {
			chainSum += len(m.ChainIDs)
			chainN++
		}
	}

	s.OriginalMessages = s.TotalMessages - s.Replies
	if s.TotalMessages > 0 {
		s.AvgMessageLength = float64(s.TotalWords) / float64(s.TotalMessages)
	}
	if chainN > 0 {
		s.AvgReplyDepth = float64(chainSum) / float64(chainN)
	}

	// Stable mode selection: ties broken by first-encountered key.
	for _, h := range hourOrder {
		if s.HourHistogram[h] > s.MostActiveHourN {
			s.MostActiveHour = h
			s.MostActiveHourN = s.HourHistogram[h]
		}
	}
	for _, d := range dayOrder {
		if s.DayHistogram[d] > s.MostActiveDayN {
			s.MostActiveDay = d
			s.MostActiveDayN = s.DayHistogram[d]
		}
	}

	return s
}
