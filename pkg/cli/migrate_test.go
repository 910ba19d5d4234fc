package cli

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

func TestIndexConfig(t *testing.T) {
	cfg := getIndexConfig()

	gt.Array(t, cfg.Collections).Length(1).Required()
	col := cfg.Collections[0]
	gt.Value(t, col.Name).Equal(factsCollection)

	gt.Array(t, col.Indexes).Length(1).Required()
	gt.Array(t, col.Indexes[0].Fields).Length(1).Required()

	field := col.Indexes[0].Fields[0]
	gt.Value(t, field.Path).Equal("Embedding")
	gt.B(t, field.Vector != nil).True().Required()
	gt.Value(t, field.Vector.Dimension).Equal(model.EmbeddingDimension)
}

func TestSummarizeDiff(t *testing.T) {
	t.Run("empty diff has no pending changes", func(t *testing.T) {
		changes := summarizeDiff(&fireconf.DiffResult{})
		gt.Array(t, changes).Length(0)
	})

	t.Run("counts index changes per collection", func(t *testing.T) {
		diff := &fireconf.DiffResult{
			Collections: []fireconf.CollectionDiff{
				{
					Name:   factsCollection,
					Action: fireconf.ActionAdd,
					IndexesToAdd: []fireconf.Index{
						{Fields: []fireconf.IndexField{{Path: "Embedding"}}},
					},
				},
				{
					Name:            "legacy",
					Action:          fireconf.ActionDelete,
					IndexesToDelete: []fireconf.Index{{}, {}},
				},
			},
		}

		changes := summarizeDiff(diff)
		gt.Array(t, changes).Length(2).Required()

		gt.Value(t, changes[0].Collection).Equal(factsCollection)
		gt.Value(t, changes[0].Action).Equal(fireconf.ActionAdd)
		gt.Value(t, changes[0].IndexesToAdd).Equal(1)
		gt.Value(t, changes[0].IndexesToDelete).Equal(0)

		gt.Value(t, changes[1].Collection).Equal("legacy")
		gt.Value(t, changes[1].Action).Equal(fireconf.ActionDelete)
		gt.Value(t, changes[1].IndexesToDelete).Equal(2)
	})
}
