package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/agent/tool"
	"github.com/matchday-bot/matchday/pkg/cli/config"
	"github.com/matchday-bot/matchday/pkg/domain/types"
	"github.com/matchday-bot/matchday/pkg/usecase"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// replUserID is the single session identity of the local REPL
const replUserID = types.UserID("local")

func cmdChat() *cli.Command {
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var fixturesCfg config.Fixtures
	var calendarCfg config.Calendar
	var profileCfg config.Profile

	var flags []cli.Flag
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, fixturesCfg.Flags()...)
	flags = append(flags, calendarCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Ingest fixtures and chat with the assistant on the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			asst, err := buildAssistant(ctx, &geminiCfg, &repoCfg, &fixturesCfg, &calendarCfg, &profileCfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := asst.Close(); err != nil {
					logger.Error("failed to close fact store", "error", err.Error())
				}
			}()

			stored, err := asst.ingest.Ingest(ctx, fixturesCfg.DaysPast(), fixturesCfg.DaysFuture())
			if err != nil {
				return goerr.Wrap(err, "failed to ingest fixtures")
			}
			logger.Info("fixture ingestion complete", "stored", stored)

			return runREPL(ctx, asst.chat, personaOf(asst.profile))
		},
	}
}

func personaOf(profile *config.AssistantProfile) string {
	if profile.Persona != "" {
		return profile.Persona
	}
	return usecase.DefaultPersona
}

// runREPL drives the terminal chat loop until "exit" or EOF
func runREPL(ctx context.Context, chat *usecase.ChatUseCase, persona string) error {
	youLabel := color.New(color.FgCyan, color.Bold).Sprint("You: ")
	botLabel := color.New(color.FgGreen, color.Bold).Sprint("Bot: ")

	fmt.Println("----------------------------------------------------")
	fmt.Printf("Chat with %s, your Football Bot!\n", persona)
	fmt.Println("   Ask about scores or ask for a reminder.")
	fmt.Println("   Type 'exit' to quit.")
	fmt.Println("----------------------------------------------------")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(youLabel)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.EqualFold(input, "exit") {
			fmt.Println(botLabel + "Goodbye!")
			return nil
		}

		var reply string
		if strings.EqualFold(input, "/reset") {
			reply = chat.Reset(ctx, replUserID)
		} else {
			msgCtx := tool.WithUpdate(ctx, func(ctx context.Context, message string) {
				fmt.Println(color.YellowString(message))
			})
			reply = chat.HandleMessage(msgCtx, replUserID, input)
		}

		fmt.Println(botLabel + reply)
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}

	return nil
}
