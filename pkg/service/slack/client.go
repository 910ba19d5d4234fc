package slack

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client

	mu        sync.RWMutex
	botUserID string
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{api: slack.New(token)}, nil
}

func (c *client) GetBotUserID(ctx context.Context) (string, error) {
	c.mu.RLock()
	cached := c.botUserID
	c.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call auth.test")
	}

	c.mu.Lock()
	c.botUserID = resp.UserID
	c.mu.Unlock()

	return resp.UserID, nil
}

func (c *client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post thread reply",
			goerr.V("channelID", channelID),
			goerr.V("threadTS", threadTS),
		)
	}

	return ts, nil
}

func (c *client) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	return c.PostThreadReply(ctx, channelID, "", text)
}
