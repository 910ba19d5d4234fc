package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/cli/config"
	httpctrl "github.com/matchday-bot/matchday/pkg/controller/http"
	"github.com/matchday-bot/matchday/pkg/usecase"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var slackCfg config.Slack
	var fixturesCfg config.Fixtures
	var calendarCfg config.Calendar
	var profileCfg config.Profile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MATCHDAY_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, fixturesCfg.Flags()...)
	flags = append(flags, calendarCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Ingest fixtures and start the Slack webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if !slackCfg.IsConfigured() {
				return goerr.New("slack-bot-token and slack-signing-secret are required for serve")
			}

			asst, err := buildAssistant(ctx, &geminiCfg, &repoCfg, &fixturesCfg, &calendarCfg, &profileCfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := asst.Close(); err != nil {
					logger.Error("failed to close fact store", "error", err.Error())
				}
			}()

			// Ingestion completes before the first event is accepted
			stored, err := asst.ingest.Ingest(ctx, fixturesCfg.DaysPast(), fixturesCfg.DaysFuture())
			if err != nil {
				return goerr.Wrap(err, "failed to ingest fixtures")
			}
			logger.Info("fixture ingestion complete", "stored", stored)

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			slackUC := usecase.NewSlackUseCase(asst.chat, slackSvc)
			webhookHandler := httpctrl.NewSlackWebhookHandler(slackUC)

			httpHandler := httpctrl.New(
				httpctrl.WithSlackWebhook(webhookHandler, slackCfg.SigningSecret()),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
