package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/matchday-bot/matchday/pkg/controller/http"
)

func signSlackRequest(secret, timestamp string, body []byte) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestSlackSignatureMiddleware(t *testing.T) {
	const secret = "test-signing-secret"

	newRequest := func(body []byte, timestamp, signature string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
		if timestamp != "" {
			req.Header.Set("X-Slack-Request-Timestamp", timestamp)
		}
		if signature != "" {
			req.Header.Set("X-Slack-Signature", signature)
		}
		return req
	}

	passthrough := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := httpctrl.SlackSignatureMiddleware(secret)(passthrough)

	t.Run("valid signature passes", func(t *testing.T) {
		body := []byte(`{"type":"event_callback"}`)
		ts := strconv.FormatInt(time.Now().Unix(), 10)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(body, ts, signSlackRequest(secret, ts, body)))
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		body := []byte(`{"type":"event_callback"}`)
		ts := strconv.FormatInt(time.Now().Unix(), 10)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(body, ts, "v0=deadbeef"))
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("missing timestamp is rejected", func(t *testing.T) {
		body := []byte(`{}`)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(body, "", signSlackRequest(secret, "", body)))
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("stale timestamp is rejected", func(t *testing.T) {
		body := []byte(`{}`)
		ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(body, ts, signSlackRequest(secret, ts, body)))
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestSlackWebhookURLVerification(t *testing.T) {
	const secret = "test-signing-secret"

	server := httpctrl.New(
		httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(nil), secret),
	)

	body := []byte(`{"type":"url_verification","challenge":"challenge-token-123"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", signSlackRequest(secret, ts, body))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("challenge-token-123")
}

func TestHealthEndpoint(t *testing.T) {
	server := httpctrl.New()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("OK")
}
