package retriever

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
)

// Service turns a raw user query into an ordered context block by
// querying the fact store.
type Service struct {
	llmClient  gollem.LLMClient
	store      interfaces.FactStore
	collection string
}

// New creates a Retriever over the given store and collection
func New(llmClient gollem.LLMClient, store interfaces.FactStore, collection string) *Service {
	return &Service{
		llmClient:  llmClient,
		store:      store,
		collection: collection,
	}
}

// Retrieve embeds the query, runs a top-k similarity search and joins
// the fact texts with newlines, most relevant first. Any embedding or
// store failure degrades to an empty context string: the orchestrator
// must still be able to answer from history alone.
func (s *Service) Retrieve(ctx context.Context, query string, k int) string {
	logger := logging.From(ctx)

	vector, err := s.embed(ctx, query)
	if err != nil {
		logger.Warn("embedding failed, continuing without retrieved context", "error", err.Error())
		return ""
	}

	facts, err := s.store.Query(ctx, s.collection, vector, k)
	if err != nil {
		logger.Warn("fact store query failed, continuing without retrieved context", "error", err.Error())
		return ""
	}

	texts := make([]string, 0, len(facts))
	for _, f := range facts {
		texts = append(texts, f.Text)
	}

	return strings.Join(texts, "\n")
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate query embedding")
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.New("embedding generation returned empty result")
	}

	vector := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		vector[i] = float32(v)
	}
	return vector, nil
}
