package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func TestAssistantProfile(t *testing.T) {
	t.Run("defaults apply without a profile file", func(t *testing.T) {
		var p config.Profile

		profile, err := p.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, profile.Collection).Equal("footballMatches")
		gt.Value(t, profile.Persona).Equal("")
		gt.Value(t, profile.TopK).Equal(0)
	})

	t.Run("validate rejects negative top_k", func(t *testing.T) {
		profile := &config.AssistantProfile{
			Collection: "footballMatches",
			TopK:       -1,
		}
		gt.Error(t, profile.Validate())
	})

	t.Run("validate rejects empty collection", func(t *testing.T) {
		profile := &config.AssistantProfile{}
		gt.Error(t, profile.Validate())
	})
}

func TestProfileLoad(t *testing.T) {
	t.Run("loads TOML profile through the flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.toml")
		content := `
persona = "Coach"
collection = "testMatches"
top_k = 5
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

		var p config.Profile
		var profile *config.AssistantProfile
		cmd := &cli.Command{
			Name:  "test",
			Flags: p.Flags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				loaded, err := p.Configure()
				if err != nil {
					return err
				}
				profile = loaded
				return nil
			},
		}

		gt.NoError(t, cmd.Run(context.Background(), []string{"test", "--profile", path})).Required()
		gt.Value(t, profile.Persona).Equal("Coach")
		gt.Value(t, profile.Collection).Equal("testMatches")
		gt.Value(t, profile.TopK).Equal(5)
	})

	t.Run("missing profile file is an error", func(t *testing.T) {
		var p config.Profile
		cmd := &cli.Command{
			Name:  "test",
			Flags: p.Flags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				_, err := p.Configure()
				return err
			},
		}

		gt.Error(t, cmd.Run(context.Background(), []string{"test", "--profile", "/nonexistent/profile.toml"}))
	})
}
