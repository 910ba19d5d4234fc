package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/agent/tool"
	"github.com/matchday-bot/matchday/pkg/domain/types"
	slackservice "github.com/matchday-bot/matchday/pkg/service/slack"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// SlackUseCase maps Slack events onto chat traversals. One mention or
// DM becomes one HandleMessage call keyed by the Slack user ID; the
// reply goes back into the originating thread.
type SlackUseCase struct {
	chat         *ChatUseCase
	slackService slackservice.Service
}

// NewSlackUseCase creates the Slack event handler
func NewSlackUseCase(chat *ChatUseCase, slackService slackservice.Service) *SlackUseCase {
	return &SlackUseCase{
		chat:         chat,
		slackService: slackService,
	}
}

// HandleSlackEvent dispatches a callback event to the chat orchestrator
func (uc *SlackUseCase) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	logger := logging.From(ctx)

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return uc.handleMessage(ctx, ev.User, ev.Channel, threadOf(ev.ThreadTimeStamp, ev.TimeStamp), ev.Text)

	case *slackevents.MessageEvent:
		// Only direct messages; channel traffic arrives via app_mention
		if ev.ChannelType != "im" {
			return nil
		}
		// Ignore edits, joins and other subtyped messages
		if ev.SubType != "" || ev.BotID != "" {
			return nil
		}
		return uc.handleMessage(ctx, ev.User, ev.Channel, threadOf(ev.ThreadTimeStamp, ev.TimeStamp), ev.Text)

	default:
		logger.Debug("ignoring unsupported slack event", "type", event.InnerEvent.Type)
		return nil
	}
}

func (uc *SlackUseCase) handleMessage(ctx context.Context, slackUserID, channelID, threadTS, rawText string) error {
	logger := logging.From(ctx)

	botUserID, err := uc.slackService.GetBotUserID(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get bot user ID")
	}
	if slackUserID == botUserID || slackUserID == "" {
		logger.Debug("skipping bot's own message", "user_id", slackUserID)
		return nil
	}

	userID := types.UserID(slackUserID)
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid slack user ID")
	}

	text := strings.TrimSpace(strings.ReplaceAll(rawText, "<@"+botUserID+">", ""))
	if text == "" {
		return nil
	}

	var reply string
	if strings.EqualFold(text, "/reset") {
		reply = uc.chat.Reset(ctx, userID)
	} else {
		// Tool progress is posted into the thread as it happens
		ctx = tool.WithUpdate(ctx, func(ctx context.Context, message string) {
			if _, err := uc.slackService.PostThreadReply(ctx, channelID, threadTS, message); err != nil {
				logger.Warn("failed to post tool progress", "error", err.Error())
			}
		})
		reply = uc.chat.HandleMessage(ctx, userID, text)
	}

	if _, err := uc.slackService.PostThreadReply(ctx, channelID, threadTS, reply); err != nil {
		return goerr.Wrap(err, "failed to post reply",
			goerr.V("channel_id", channelID),
			goerr.V("thread_ts", threadTS),
		)
	}

	return nil
}

// threadOf picks the reply thread: the existing thread if the message
// is already in one, otherwise the message itself becomes the parent.
func threadOf(threadTS, eventTS string) string {
	if threadTS != "" {
		return threadTS
	}
	return eventTS
}
