package config

import (
	"log/slog"

	"github.com/matchday-bot/matchday/pkg/service/fixtures"
	"github.com/urfave/cli/v3"
)

// Fixtures holds CLI flags for the api-football fixture source
type Fixtures struct {
	apiKey     string
	baseURL    string
	daysPast   int
	daysFuture int
}

func (f *Fixtures) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "football-api-key",
			Usage:       "api-football API key",
			Category:    "Fixtures",
			Sources:     cli.EnvVars("MATCHDAY_FOOTBALL_API_KEY"),
			Destination: &f.apiKey,
		},
		&cli.StringFlag{
			Name:        "football-api-url",
			Usage:       "api-football fixtures endpoint",
			Category:    "Fixtures",
			Value:       fixtures.DefaultBaseURL,
			Sources:     cli.EnvVars("MATCHDAY_FOOTBALL_API_URL"),
			Destination: &f.baseURL,
		},
		&cli.IntFlag{
			Name:        "fixtures-days-past",
			Usage:       "How many past days of fixtures to ingest",
			Category:    "Fixtures",
			Value:       1,
			Sources:     cli.EnvVars("MATCHDAY_FIXTURES_DAYS_PAST"),
			Destination: &f.daysPast,
		},
		&cli.IntFlag{
			Name:        "fixtures-days-future",
			Usage:       "How many future days of fixtures to ingest",
			Category:    "Fixtures",
			Value:       7,
			Sources:     cli.EnvVars("MATCHDAY_FIXTURES_DAYS_FUTURE"),
			Destination: &f.daysFuture,
		},
	}
}

func (f Fixtures) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(f.apiKey)),
		slog.String("base_url", f.baseURL),
		slog.Int("days_past", f.daysPast),
		slog.Int("days_future", f.daysFuture),
	)
}

// DaysPast returns the configured past day range
func (f *Fixtures) DaysPast() int {
	return f.daysPast
}

// DaysFuture returns the configured future day range
func (f *Fixtures) DaysFuture() int {
	return f.daysFuture
}

// Configure creates the fixture source client
func (f *Fixtures) Configure() (*fixtures.Client, error) {
	return fixtures.New(f.apiKey, fixtures.WithBaseURL(f.baseURL))
}
