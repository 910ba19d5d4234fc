package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/agent"
	calendartool "github.com/matchday-bot/matchday/pkg/agent/tool/calendar"
	"github.com/matchday-bot/matchday/pkg/cli/config"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/service/llm"
	"github.com/matchday-bot/matchday/pkg/service/retriever"
	"github.com/matchday-bot/matchday/pkg/usecase"
)

// assistant bundles the wired components shared by the serve and chat
// commands.
type assistant struct {
	chat    *usecase.ChatUseCase
	ingest  *usecase.IngestUseCase
	store   interfaces.FactStore
	profile *config.AssistantProfile
}

// buildAssistant wires the full conversation stack from configuration:
// store, retriever, calendar tool, completer and the two use cases.
func buildAssistant(ctx context.Context, geminiCfg *config.Gemini, repoCfg *config.Repository, fixturesCfg *config.Fixtures, calendarCfg *config.Calendar, profileCfg *config.Profile) (*assistant, error) {
	profile, err := profileCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load assistant profile")
	}

	llmClient, err := geminiCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	store, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize fact store")
	}

	calendarSvc, err := calendarCfg.Configure()
	if err != nil {
		store.Close() //nolint:errcheck // initialization already failed
		return nil, goerr.Wrap(err, "failed to configure calendar service")
	}

	fixtureSource, err := fixturesCfg.Configure()
	if err != nil {
		store.Close() //nolint:errcheck // initialization already failed
		return nil, goerr.Wrap(err, "failed to configure fixture source")
	}

	preamble := profile.Preamble
	if preamble == "" {
		preamble, err = usecase.BuildPreamble(profile.Persona)
		if err != nil {
			store.Close() //nolint:errcheck // initialization already failed
			return nil, err
		}
	}

	invoker := agent.NewInvoker(calendartool.New(calendarSvc))

	completer, err := llm.New(llmClient, invoker.Tools()...)
	if err != nil {
		store.Close() //nolint:errcheck // initialization already failed
		return nil, goerr.Wrap(err, "failed to create completer")
	}

	retrieverSvc := retriever.New(llmClient, store, profile.Collection)

	var chatOpts []usecase.ChatOption
	if profile.TopK > 0 {
		chatOpts = append(chatOpts, usecase.WithTopK(profile.TopK))
	}

	return &assistant{
		chat:    usecase.NewChatUseCase(completer, retrieverSvc, invoker, preamble, chatOpts...),
		ingest:  usecase.NewIngestUseCase(fixtureSource, llmClient, store, profile.Collection),
		store:   store,
		profile: profile,
	}, nil
}

func (a *assistant) Close() error {
	return a.store.Close()
}
