package calendar

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultCalendarID is the calendar events are created in
const DefaultCalendarID = "primary"

// client implements interfaces.CalendarService over the Google
// Calendar API with OAuth installed-app credentials.
type client struct {
	oauthConfig *oauth2.Config
	tokenPath   string
	calendarID  string

	// mu guards the process-wide token: concurrent invocations from
	// different users must not race on refreshing and persisting the
	// same credential state.
	mu    sync.Mutex
	token *oauth2.Token
}

var _ interfaces.CalendarService = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithCalendarID sets the target calendar (default "primary")
func WithCalendarID(id string) Option {
	return func(c *client) {
		c.calendarID = id
	}
}

// New creates a Calendar service from an OAuth client-secrets file and
// a previously authorized token file. Failing to load either is a
// startup-time error; nothing is written to disk here.
func New(credentialsPath, tokenPath string, opts ...Option) (interfaces.CalendarService, error) {
	secrets, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read calendar credentials", goerr.V("path", credentialsPath))
	}

	oauthConfig, err := google.ConfigFromJSON(secrets, calendarapi.CalendarEventsScope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse calendar credentials")
	}

	token, err := readToken(tokenPath)
	if err != nil {
		return nil, err
	}

	c := &client{
		oauthConfig: oauthConfig,
		tokenPath:   tokenPath,
		calendarID:  DefaultCalendarID,
		token:       token,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func readToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read calendar token", goerr.V("path", path))
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, goerr.Wrap(err, "failed to parse calendar token", goerr.V("path", path))
	}

	return &token, nil
}

// CreateEvent creates exactly one event and returns the provider's
// event ID. No retries: a failed call is surfaced to the caller.
func (c *client) CreateEvent(ctx context.Context, event *model.CalendarEvent) (string, error) {
	token, err := c.acquireToken(ctx)
	if err != nil {
		return "", err
	}

	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create calendar service")
	}

	payload := &calendarapi.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &calendarapi.EventDateTime{DateTime: event.Start.UTC().Format(time.RFC3339)},
		End:         &calendarapi.EventDateTime{DateTime: event.End.UTC().Format(time.RFC3339)},
	}

	created, err := svc.Events.Insert(c.calendarID, payload).Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to insert calendar event",
			goerr.V("summary", event.Summary),
			goerr.V("calendarID", c.calendarID),
		)
	}

	return created.Id, nil
}

// acquireToken returns a valid token, refreshing and persisting it
// under the lock when expired. Refresh is the only path that writes
// the token file.
func (c *client) acquireToken(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Valid() {
		return c.token, nil
	}

	if c.token.RefreshToken == "" {
		return nil, goerr.New("calendar token expired and no refresh token is available")
	}

	refreshed, err := c.oauthConfig.TokenSource(ctx, c.token).Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to refresh calendar token")
	}
	c.token = refreshed

	if err := c.persistToken(refreshed); err != nil {
		// The refreshed token still works for this call; losing the
		// persisted copy only costs a refresh on the next restart.
		logging.From(ctx).Warn("failed to persist refreshed calendar token", "error", err.Error())
	}

	return c.token, nil
}

func (c *client) persistToken(token *oauth2.Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal calendar token")
	}

	if err := os.WriteFile(c.tokenPath, raw, 0600); err != nil {
		return goerr.Wrap(err, "failed to write calendar token", goerr.V("path", c.tokenPath))
	}

	return nil
}
