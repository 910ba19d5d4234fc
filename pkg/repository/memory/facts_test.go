package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/repository/memory"
)

func newFact(id, text string, embedding []float32) *model.Fact {
	return &model.Fact{
		ID:        model.FactID(id),
		Text:      text,
		Embedding: embedding,
	}
}

func TestFactStorePut(t *testing.T) {
	ctx := context.Background()

	t.Run("put is idempotent by ID", func(t *testing.T) {
		store := memory.New()

		gt.NoError(t, store.Put(ctx, "matches", newFact("match_0", "first version", []float32{1, 0})))
		gt.NoError(t, store.Put(ctx, "matches", newFact("match_0", "second version", []float32{1, 0})))

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(1)
		gt.Value(t, facts[0].Text).Equal("second version")
	})

	t.Run("collections are isolated", func(t *testing.T) {
		store := memory.New()

		gt.NoError(t, store.Put(ctx, "matches", newFact("match_0", "football", []float32{1, 0})))
		gt.NoError(t, store.Put(ctx, "other", newFact("match_0", "cricket", []float32{1, 0})))

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(1)
		gt.Value(t, facts[0].Text).Equal("football")
	})
}

func TestFactStoreQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns at most k, most similar first", func(t *testing.T) {
		store := memory.New()
		gt.NoError(t, store.Put(ctx, "matches", newFact("a", "close", []float32{1, 0})))
		gt.NoError(t, store.Put(ctx, "matches", newFact("b", "far", []float32{0, 1})))
		gt.NoError(t, store.Put(ctx, "matches", newFact("c", "middle", []float32{1, 1})))

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(2)
		gt.Value(t, facts[0].Text).Equal("close")
		gt.Value(t, facts[1].Text).Equal("middle")
	})

	t.Run("k larger than stored count returns all", func(t *testing.T) {
		store := memory.New()
		for i := 0; i < 3; i++ {
			id := fmt.Sprintf("match_%d", i)
			gt.NoError(t, store.Put(ctx, "matches", newFact(id, id, []float32{1, 0})))
		}

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(3)
	})

	t.Run("equal scores rank in insertion order", func(t *testing.T) {
		store := memory.New()
		gt.NoError(t, store.Put(ctx, "matches", newFact("first", "first", []float32{1, 0})))
		gt.NoError(t, store.Put(ctx, "matches", newFact("second", "second", []float32{2, 0})))

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(2)
		gt.Value(t, facts[0].Text).Equal("first")
		gt.Value(t, facts[1].Text).Equal("second")
	})

	t.Run("unknown collection yields empty result", func(t *testing.T) {
		store := memory.New()

		facts, err := store.Query(ctx, "nothing", []float32{1, 0}, 5)
		gt.NoError(t, err).Required()
		gt.Array(t, facts).Length(0)
	})

	t.Run("results are detached from the store", func(t *testing.T) {
		store := memory.New()
		gt.NoError(t, store.Put(ctx, "matches", newFact("a", "original", []float32{1, 0})))

		facts, err := store.Query(ctx, "matches", []float32{1, 0}, 1)
		gt.NoError(t, err).Required()
		facts[0].Text = "mutated"

		again, err := store.Query(ctx, "matches", []float32{1, 0}, 1)
		gt.NoError(t, err).Required()
		gt.Value(t, again[0].Text).Equal("original")
	})
}
