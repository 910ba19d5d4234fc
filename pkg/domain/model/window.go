package model

import (
	"regexp"
	"time"
)

// DefaultEventDuration is the assumed length of a calendar event.
// Fixture data carries no duration field, so a fixed 2 hours is used.
const DefaultEventDuration = 2 * time.Hour

// fixtureTimestampRe matches the "YYYY-MM-DD at HH:MM" pattern that the
// fixture ingestion embeds in every fact sentence.
var fixtureTimestampRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}) at (\d{2}:\d{2})`)

// EventWindow is a concrete start/end instant pair in UTC
type EventWindow struct {
	Start time.Time
	End   time.Time
}

// ExtractEventWindow scans text for a "YYYY-MM-DD at HH:MM" timestamp
// and returns the event window it describes. The date and time are
// interpreted as UTC wall clock and End is Start plus
// DefaultEventDuration. The second result is false when no valid
// timestamp is present; this is an expected outcome, not a fault.
//
// If the pattern occurs more than once only the first match is used;
// callers are expected to provide single-fixture summaries.
func ExtractEventWindow(text string) (EventWindow, bool) {
	m := fixtureTimestampRe.FindStringSubmatch(text)
	if m == nil {
		return EventWindow{}, false
	}

	start, err := time.Parse("2006-01-02 15:04", m[1]+" "+m[2])
	if err != nil {
		// Digits matched but do not form a real date (e.g. month 13)
		return EventWindow{}, false
	}

	start = start.UTC()
	return EventWindow{Start: start, End: start.Add(DefaultEventDuration)}, true
}
