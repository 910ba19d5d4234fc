package config

import (
	"log/slog"

	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/service/calendar"
	"github.com/urfave/cli/v3"
)

// Calendar holds CLI flags for the Google Calendar side effect
type Calendar struct {
	credentialsPath string
	tokenPath       string
	calendarID      string
}

func (c *Calendar) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "calendar-credentials",
			Usage:       "Path to Google OAuth client credentials JSON",
			Category:    "Calendar",
			Value:       "credentials.json",
			Sources:     cli.EnvVars("MATCHDAY_CALENDAR_CREDENTIALS"),
			Destination: &c.credentialsPath,
		},
		&cli.StringFlag{
			Name:        "calendar-token",
			Usage:       "Path to the stored OAuth token JSON",
			Category:    "Calendar",
			Value:       "token.json",
			Sources:     cli.EnvVars("MATCHDAY_CALENDAR_TOKEN"),
			Destination: &c.tokenPath,
		},
		&cli.StringFlag{
			Name:        "calendar-id",
			Usage:       "Target calendar ID",
			Category:    "Calendar",
			Value:       "primary",
			Sources:     cli.EnvVars("MATCHDAY_CALENDAR_ID"),
			Destination: &c.calendarID,
		},
	}
}

func (c Calendar) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("credentials_path", c.credentialsPath),
		slog.String("token_path", c.tokenPath),
		slog.String("calendar_id", c.calendarID),
	)
}

// Configure creates the Google Calendar service
func (c *Calendar) Configure() (interfaces.CalendarService, error) {
	return calendar.New(c.credentialsPath, c.tokenPath, calendar.WithCalendarID(c.calendarID))
}
