package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
)

// embedBatchSize bounds one embedding request
const embedBatchSize = 64

// FixtureSource produces the fixture fact sentences to index
type FixtureSource interface {
	FetchRange(ctx context.Context, daysPast, daysFuture int) ([]string, error)
}

// IngestUseCase fetches fixtures, embeds the fact sentences and writes
// them to the fact store. It runs to completion before any traversal
// reads the store.
type IngestUseCase struct {
	source     FixtureSource
	llmClient  gollem.LLMClient
	store      interfaces.FactStore
	collection string
}

// NewIngestUseCase creates the ingestion pipeline
func NewIngestUseCase(source FixtureSource, llmClient gollem.LLMClient, store interfaces.FactStore, collection string) *IngestUseCase {
	return &IngestUseCase{
		source:     source,
		llmClient:  llmClient,
		store:      store,
		collection: collection,
	}
}

// Ingest fetches the date range, embeds every sentence and stores the
// resulting facts. Fact IDs are positional ("match_0", "match_1", ...)
// so re-running ingestion overwrites rather than duplicates.
func (uc *IngestUseCase) Ingest(ctx context.Context, daysPast, daysFuture int) (int, error) {
	logger := logging.From(ctx)

	sentences, err := uc.source.FetchRange(ctx, daysPast, daysFuture)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to fetch fixtures")
	}
	if len(sentences) == 0 {
		logger.Warn("no fixtures fetched, fact store left unchanged")
		return 0, nil
	}

	logger.Info("indexing fixtures", "count", len(sentences), "collection", uc.collection)

	now := time.Now().UTC()
	stored := 0
	for offset := 0; offset < len(sentences); offset += embedBatchSize {
		end := min(offset+embedBatchSize, len(sentences))
		batch := sentences[offset:end]

		embeddings, err := uc.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, batch)
		if err != nil {
			return stored, goerr.Wrap(err, "failed to embed fixture batch", goerr.V("offset", offset))
		}
		if len(embeddings) != len(batch) {
			return stored, goerr.New("embedding count mismatch",
				goerr.V("want", len(batch)),
				goerr.V("got", len(embeddings)),
			)
		}

		for i, text := range batch {
			vector := make([]float32, len(embeddings[i]))
			for j, v := range embeddings[i] {
				vector[j] = float32(v)
			}

			fact := &model.Fact{
				ID:        model.FactID(fmt.Sprintf("match_%d", offset+i)),
				Text:      text,
				Embedding: vector,
				CreatedAt: now,
			}
			if err := uc.store.Put(ctx, uc.collection, fact); err != nil {
				return stored, goerr.Wrap(err, "failed to store fact", goerr.V("id", fact.ID))
			}
			stored++
		}
	}

	logger.Info("indexing complete", "stored", stored)
	return stored, nil
}
