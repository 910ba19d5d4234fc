package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

func TestExtractEventWindow(t *testing.T) {
	t.Run("extracts window from fixture sentence", func(t *testing.T) {
		text := "On 2025-07-23 at 19:00, in the UEFA Womens Euro, a match between Germany W and Spain W is scheduled. Status: Not Started."

		window, ok := model.ExtractEventWindow(text)
		gt.B(t, ok).True()
		gt.Value(t, window.Start).Equal(time.Date(2025, 7, 23, 19, 0, 0, 0, time.UTC))
		gt.Value(t, window.End).Equal(time.Date(2025, 7, 23, 21, 0, 0, 0, time.UTC))
	})

	t.Run("first timestamp wins when several are present", func(t *testing.T) {
		text := "On 2025-07-23 at 19:00 and again on 2025-07-24 at 10:30."

		window, ok := model.ExtractEventWindow(text)
		gt.B(t, ok).True()
		gt.Value(t, window.Start).Equal(time.Date(2025, 7, 23, 19, 0, 0, 0, time.UTC))
	})

	t.Run("no timestamp pattern", func(t *testing.T) {
		_, ok := model.ExtractEventWindow("Germany W plays Spain W tomorrow evening.")
		gt.B(t, ok).False()
	})

	t.Run("pattern present but date invalid", func(t *testing.T) {
		_, ok := model.ExtractEventWindow("On 2025-13-45 at 19:00, something impossible happens.")
		gt.B(t, ok).False()
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := model.ExtractEventWindow("")
		gt.B(t, ok).False()
	})
}
