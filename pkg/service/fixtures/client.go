package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/matchday-bot/matchday/pkg/utils/safe"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the api-football fixtures endpoint
	DefaultBaseURL = "https://v3.football.api-sports.io/fixtures"
	// DefaultTimeout bounds one upstream request; a timeout is treated
	// like any other per-date fetch failure
	DefaultTimeout = 15 * time.Second
)

// Client fetches fixtures from api-football and renders them as fact
// sentences. The sentence format is a contract with the date/time
// extraction: "YYYY-MM-DD at HH:MM" must appear verbatim.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithBaseURL overrides the fixtures endpoint (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a fixtures client with the given API key
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("api-football key is required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// fixturesResponse mirrors the api-football payload, trimmed to the
// fields the fact sentence needs.
type fixturesResponse struct {
	Response []struct {
		Fixture struct {
			Date   string `json:"date"`
			Status struct {
				Long  string `json:"long"`
				Short string `json:"short"`
			} `json:"status"`
		} `json:"fixture"`
		League struct {
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

// FetchRange fetches fixtures for each day in [today-daysPast,
// today+daysFuture] concurrently and returns the rendered fact
// sentences in date order. A failed day is logged and skipped; the
// remaining days still contribute.
func (c *Client) FetchRange(ctx context.Context, daysPast, daysFuture int) ([]string, error) {
	if daysPast < 0 || daysFuture < 0 {
		return nil, goerr.New("day range must not be negative",
			goerr.V("daysPast", daysPast),
			goerr.V("daysFuture", daysFuture),
		)
	}

	today := time.Now().UTC()
	days := daysPast + daysFuture + 1
	perDay := make([][]string, days)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-daysPast).Format("2006-01-02")
		eg.Go(func() error {
			sentences, err := c.fetchDate(ctx, date)
			if err != nil {
				logging.From(ctx).Warn("failed to fetch fixtures, skipping date",
					"date", date, "error", err.Error())
				return nil
			}
			perDay[i] = sentences
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch fixture range")
	}

	var all []string
	for _, sentences := range perDay {
		all = append(all, sentences...)
	}

	return all, nil
}

func (c *Client) fetchDate(ctx context.Context, date string) ([]string, error) {
	endpoint := c.baseURL + "?date=" + url.QueryEscape(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build fixtures request")
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request fixtures", goerr.V("date", date))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected fixtures response status",
			goerr.V("date", date),
			goerr.V("status", resp.StatusCode),
		)
	}

	var payload fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode fixtures response", goerr.V("date", date))
	}

	sentences := make([]string, 0, len(payload.Response))
	for _, match := range payload.Response {
		sentences = append(sentences, renderSentence(
			match.Fixture.Date, date,
			match.League.Name,
			match.Teams.Home.Name, match.Teams.Away.Name,
			match.Fixture.Status.Long, match.Fixture.Status.Short,
			match.Goals.Home, match.Goals.Away,
		))
	}

	return sentences, nil
}

// renderSentence produces the fixture fact sentence. The kickoff
// timestamp is rendered as "YYYY-MM-DD at HH:MM" in UTC so that the
// calendar tool can extract it later.
func renderSentence(kickoff, fallbackDate, league, home, away, statusLong, statusShort string, goalsHome, goalsAway *int) string {
	when := fallbackDate
	if t, err := time.Parse(time.RFC3339, kickoff); err == nil {
		when = t.UTC().Format("2006-01-02 at 15:04")
	}
	if league == "" {
		league = "N/A"
	}
	if home == "" {
		home = "N/A"
	}
	if away == "" {
		away = "N/A"
	}
	if statusLong == "" {
		statusLong = "Scheduled"
	}

	sentence := fmt.Sprintf("On %s, in the %s, a match between %s and %s is scheduled. Status: %s.",
		when, league, home, away, statusLong)

	if statusShort == "FT" && goalsHome != nil && goalsAway != nil {
		sentence += fmt.Sprintf(" Final score was %d-%d.", *goalsHome, *goalsAway)
	}

	return sentence
}
