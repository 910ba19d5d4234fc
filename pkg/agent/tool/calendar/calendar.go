package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/matchday-bot/matchday/pkg/agent/tool"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"google.golang.org/api/googleapi"
)

// ToolName is the tool identifier declared to the model
const ToolName = "create_calendar_event"

// createEventTool creates a calendar reminder for a fixture. The event
// window is extracted from the match_context argument; the description
// is the match_context itself so the user can see which fixture the
// reminder refers to.
type createEventTool struct {
	calendar interfaces.CalendarService
}

// New builds the calendar reminder tool over the side-effect capability
func New(calendarSvc interfaces.CalendarService) gollem.Tool {
	return &createEventTool{calendar: calendarSvc}
}

func (t *createEventTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        ToolName,
		Description: "Creates an event in the user's Google Calendar as a reminder for a match. Use this when the user asks to be reminded about a fixture.",
		Parameters: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "The title of the event (e.g., 'Germany W vs Spain W')",
				Required:    true,
			},
			"match_context": {
				Type:        gollem.TypeString,
				Description: "The full, single sentence of context that contains the match details, including date and time",
				Required:    true,
			},
		},
	}
}

func (t *createEventTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	summary, _ := args["summary"].(string)
	if summary == "" {
		return nil, goerr.New("summary is required")
	}

	matchContext, ok := args["match_context"].(string)
	if !ok {
		return nil, goerr.New("match_context is required")
	}

	tool.Update(ctx, fmt.Sprintf("Creating calendar event %q...", summary))

	window, found := model.ExtractEventWindow(matchContext)
	if !found {
		// Expected absence: reported to the user, no provider call made
		return map[string]any{
			"result": "Failed to create event: could not find a valid date and time in the match details.",
		}, nil
	}

	eventID, err := t.calendar.CreateEvent(ctx, &model.CalendarEvent{
		Summary:     summary,
		Description: matchContext,
		Start:       window.Start,
		End:         window.End,
	})
	if err != nil {
		logging.From(ctx).Warn("calendar provider rejected event",
			"summary", summary, "error", err.Error())
		return map[string]any{"result": providerFailureMessage(err)}, nil
	}

	logging.From(ctx).Info("created calendar event",
		"summary", summary,
		"event_id", eventID,
		"start", window.Start,
		"end", window.End,
	)

	return map[string]any{
		"result": fmt.Sprintf("Successfully created a calendar event titled '%s'.", summary),
	}, nil
}

// providerFailureMessage renders a provider error for direct display,
// preferring the API's own human-readable message when present.
func providerFailureMessage(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Sprintf("Failed to create event. Google API Error: %s", apiErr.Message)
	}
	return fmt.Sprintf("Failed to create event: %s", err.Error())
}
