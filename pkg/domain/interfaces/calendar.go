package interfaces

import (
	"context"

	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// CalendarService is the side-effect capability: it creates exactly one
// event per successful call and returns the provider's event ID.
type CalendarService interface {
	CreateEvent(ctx context.Context, event *model.CalendarEvent) (string, error)
}
