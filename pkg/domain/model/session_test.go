package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

func TestSession(t *testing.T) {
	const preamble = "You are a helpful football assistant named Leo."

	t.Run("new session is seeded with the preamble", func(t *testing.T) {
		s := model.NewSession(preamble)

		gt.Value(t, s.Len()).Equal(1)
		turns := s.Turns()
		gt.Value(t, turns[0].Role).Equal(model.RoleSystem)
		gt.Value(t, turns[0].Text).Equal(preamble)
	})

	t.Run("append preserves order", func(t *testing.T) {
		s := model.NewSession(preamble)
		s.Append(model.DialogueTurn{Role: model.RoleUser, Text: "who plays today?"})
		s.Append(model.DialogueTurn{Role: model.RoleAssistant, Text: "Germany W vs Spain W."})

		turns := s.Turns()
		gt.Array(t, turns).Length(3)
		gt.Value(t, turns[1].Role).Equal(model.RoleUser)
		gt.Value(t, turns[2].Role).Equal(model.RoleAssistant)
	})

	t.Run("reset leaves exactly one preamble turn", func(t *testing.T) {
		s := model.NewSession(preamble)
		s.Append(model.DialogueTurn{Role: model.RoleUser, Text: "hello"})
		s.Append(model.DialogueTurn{Role: model.RoleAssistant, Text: "hi"})

		s.Reset()

		gt.Value(t, s.Len()).Equal(1)
		turns := s.Turns()
		gt.Value(t, turns[0].Role).Equal(model.RoleSystem)
		gt.Value(t, turns[0].Text).Equal(preamble)
	})

	t.Run("truncate rolls back to checkpoint", func(t *testing.T) {
		s := model.NewSession(preamble)
		s.Append(model.DialogueTurn{Role: model.RoleUser, Text: "first"})
		checkpoint := s.Len()
		s.Append(model.DialogueTurn{Role: model.RoleTool, Text: "outcome"})
		s.Append(model.DialogueTurn{Role: model.RoleAssistant, Text: "reply"})

		s.Truncate(checkpoint)

		gt.Value(t, s.Len()).Equal(2)
		turns := s.Turns()
		gt.Value(t, turns[1].Text).Equal("first")
	})

	t.Run("turns returns a copy", func(t *testing.T) {
		s := model.NewSession(preamble)
		s.Append(model.DialogueTurn{Role: model.RoleUser, Text: "original"})

		turns := s.Turns()
		turns[1].Text = "mutated"

		gt.Value(t, s.Turns()[1].Text).Equal("original")
	})
}
