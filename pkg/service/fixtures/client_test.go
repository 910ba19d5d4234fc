package fixtures_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/service/fixtures"
)

const fixturePayload = `{
  "response": [
    {
      "fixture": {
        "date": "2025-07-23T19:00:00+00:00",
        "status": {"long": "Not Started", "short": "NS"}
      },
      "league": {"name": "UEFA Womens Euro"},
      "teams": {
        "home": {"name": "Germany W"},
        "away": {"name": "Spain W"}
      },
      "goals": {"home": null, "away": null}
    },
    {
      "fixture": {
        "date": "2025-07-22T18:00:00+00:00",
        "status": {"long": "Match Finished", "short": "FT"}
      },
      "league": {"name": "UEFA Womens Euro"},
      "teams": {
        "home": {"name": "England W"},
        "away": {"name": "Italy W"}
      },
      "goals": {"home": 2, "away": 1}
    }
  ]
}`

func TestFetchRange(t *testing.T) {
	ctx := context.Background()

	t.Run("renders fixture sentences", func(t *testing.T) {
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-apisports-key")
			gt.Value(t, r.URL.Query().Get("date")).NotEqual("")
			fmt.Fprint(w, fixturePayload)
		}))
		defer srv.Close()

		client, err := fixtures.New("test-key", fixtures.WithBaseURL(srv.URL))
		gt.NoError(t, err).Required()

		sentences, err := client.FetchRange(ctx, 0, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, gotKey).Equal("test-key")

		gt.Array(t, sentences).Length(2).Required()
		gt.Value(t, sentences[0]).Equal(
			"On 2025-07-23 at 19:00, in the UEFA Womens Euro, a match between Germany W and Spain W is scheduled. Status: Not Started.")
		gt.Value(t, sentences[1]).Equal(
			"On 2025-07-22 at 18:00, in the UEFA Womens Euro, a match between England W and Italy W is scheduled. Status: Match Finished. Final score was 2-1.")
	})

	t.Run("failed date is skipped, not fatal", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client, err := fixtures.New("test-key", fixtures.WithBaseURL(srv.URL))
		gt.NoError(t, err).Required()

		sentences, err := client.FetchRange(ctx, 0, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, sentences).Length(0)
	})

	t.Run("negative range is rejected", func(t *testing.T) {
		client, err := fixtures.New("test-key")
		gt.NoError(t, err).Required()

		_, err = client.FetchRange(ctx, -1, 0)
		gt.Error(t, err)
	})

	t.Run("empty API key is rejected", func(t *testing.T) {
		_, err := fixtures.New("")
		gt.Error(t, err)
	})
}
