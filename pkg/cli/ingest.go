package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/cli/config"
	"github.com/matchday-bot/matchday/pkg/usecase"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdIngest() *cli.Command {
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var fixturesCfg config.Fixtures
	var profileCfg config.Profile

	var flags []cli.Flag
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, fixturesCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Fetch, embed and store fixtures without serving",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			profile, err := profileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assistant profile")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}

			store, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize fact store")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("failed to close fact store", "error", err.Error())
				}
			}()

			fixtureSource, err := fixturesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure fixture source")
			}

			ingestUC := usecase.NewIngestUseCase(fixtureSource, llmClient, store, profile.Collection)
			stored, err := ingestUC.Ingest(ctx, fixturesCfg.DaysPast(), fixturesCfg.DaysFuture())
			if err != nil {
				return goerr.Wrap(err, "failed to ingest fixtures")
			}

			logger.Info("fixture ingestion complete",
				"stored", stored,
				"collection", profile.Collection,
			)
			return nil
		},
	}
}
