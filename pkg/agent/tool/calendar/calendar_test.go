package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	calendartool "github.com/matchday-bot/matchday/pkg/agent/tool/calendar"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"google.golang.org/api/googleapi"
)

// mockCalendarService records CreateEvent calls
type mockCalendarService struct {
	createEventFn func(ctx context.Context, event *model.CalendarEvent) (string, error)
	created       []*model.CalendarEvent
}

func (m *mockCalendarService) CreateEvent(ctx context.Context, event *model.CalendarEvent) (string, error) {
	m.created = append(m.created, event)
	if m.createEventFn != nil {
		return m.createEventFn(ctx, event)
	}
	return "event-id-001", nil
}

const matchContext = "On 2025-07-23 at 19:00, in the UEFA Womens Euro, a match between Germany W and Spain W is scheduled. Status: Not Started."

func TestCreateCalendarEventTool(t *testing.T) {
	ctx := context.Background()

	t.Run("spec declares required arguments", func(t *testing.T) {
		tool := calendartool.New(&mockCalendarService{})
		spec := tool.Spec()

		gt.Value(t, spec.Name).Equal("create_calendar_event")
		gt.B(t, spec.Parameters["summary"].Required).True()
		gt.B(t, spec.Parameters["match_context"].Required).True()
	})

	t.Run("creates event from match context", func(t *testing.T) {
		mock := &mockCalendarService{}
		tool := calendartool.New(mock)

		result, err := tool.Run(ctx, map[string]any{
			"summary":       "Germany W vs Spain W",
			"match_context": matchContext,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result["result"]).Equal("Successfully created a calendar event titled 'Germany W vs Spain W'.")

		gt.Array(t, mock.created).Length(1).Required()
		event := mock.created[0]
		gt.Value(t, event.Summary).Equal("Germany W vs Spain W")
		gt.Value(t, event.Description).Equal(matchContext)
		gt.Value(t, event.Start).Equal(time.Date(2025, 7, 23, 19, 0, 0, 0, time.UTC))
		gt.Value(t, event.End).Equal(time.Date(2025, 7, 23, 21, 0, 0, 0, time.UTC))
	})

	t.Run("no timestamp in context means no provider call", func(t *testing.T) {
		mock := &mockCalendarService{}
		tool := calendartool.New(mock)

		result, err := tool.Run(ctx, map[string]any{
			"summary":       "Germany W vs Spain W",
			"match_context": "Germany W faces Spain W sometime next week.",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result["result"]).Equal("Failed to create event: could not find a valid date and time in the match details.")
		gt.Array(t, mock.created).Length(0)
	})

	t.Run("provider error surfaces the API message", func(t *testing.T) {
		mock := &mockCalendarService{
			createEventFn: func(ctx context.Context, event *model.CalendarEvent) (string, error) {
				return "", &googleapi.Error{Code: 403, Message: "Insufficient permissions"}
			},
		}
		tool := calendartool.New(mock)

		result, err := tool.Run(ctx, map[string]any{
			"summary":       "Germany W vs Spain W",
			"match_context": matchContext,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result["result"]).Equal("Failed to create event. Google API Error: Insufficient permissions")
	})

	t.Run("missing summary is a contract violation", func(t *testing.T) {
		tool := calendartool.New(&mockCalendarService{})

		_, err := tool.Run(ctx, map[string]any{
			"match_context": matchContext,
		})
		gt.Error(t, err)
	})
}
