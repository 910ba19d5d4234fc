package slack

import "context"

// Service provides the Slack API surface the bot transport needs
type Service interface {
	// GetBotUserID retrieves (and caches) the bot's own user ID so
	// the event handler can ignore the bot's own messages
	GetBotUserID(ctx context.Context) (string, error)

	// PostThreadReply posts a plain-text reply in the given thread and
	// returns the message timestamp
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error)

	// PostMessage posts a plain-text message to a channel and returns
	// the message timestamp
	PostMessage(ctx context.Context, channelID, text string) (string, error)
}
