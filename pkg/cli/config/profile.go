package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// DefaultCollection is the fact collection name used unless a profile
// overrides it
const DefaultCollection = "footballMatches"

// AssistantProfile is the TOML-configurable assistant identity: who the
// bot claims to be, which collection it answers from and how deep it
// retrieves.
type AssistantProfile struct {
	Persona    string `toml:"persona"`
	Collection string `toml:"collection"`
	TopK       int    `toml:"top_k"`
	Preamble   string `toml:"preamble"`
}

// Validate checks profile consistency
func (p *AssistantProfile) Validate() error {
	if p.Collection == "" {
		return goerr.New("profile collection is required")
	}
	if p.TopK < 0 {
		return goerr.New("profile top_k must not be negative", goerr.V("top_k", p.TopK))
	}
	return nil
}

// Profile holds the CLI flag pointing at an optional assistant profile
// TOML file. Without a file the defaults apply.
type Profile struct {
	path string
}

func (p *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to assistant profile TOML file",
			Sources:     cli.EnvVars("MATCHDAY_PROFILE"),
			Destination: &p.path,
		},
	}
}

func (p Profile) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", p.path))
}

// Configure loads and validates the assistant profile. Without a
// profile path it returns the built-in defaults.
func (p *Profile) Configure() (*AssistantProfile, error) {
	profile := &AssistantProfile{
		Collection: DefaultCollection,
	}

	if p.path != "" {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read profile file", goerr.V("path", p.path))
		}
		if err := toml.Unmarshal(data, profile); err != nil {
			return nil, goerr.Wrap(err, "failed to parse profile file", goerr.V("path", p.path))
		}
		if profile.Collection == "" {
			profile.Collection = DefaultCollection
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}
