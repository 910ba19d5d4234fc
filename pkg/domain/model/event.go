package model

import "time"

// CalendarEvent is the payload for the calendar side-effect capability
type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}
