package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	slackservice "github.com/matchday-bot/matchday/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the Slack transport
type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Sources:     cli.EnvVars("MATCHDAY_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Sources:     cli.EnvVars("MATCHDAY_SLACK_SIGNING_SECRET"),
			Destination: &x.signingSecret,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// SigningSecret returns the configured signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsConfigured reports whether both webhook credentials are present
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.signingSecret != ""
}

// Configure creates the Slack API service
func (x *Slack) Configure() (slackservice.Service, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required")
	}

	return slackservice.New(x.botToken)
}
