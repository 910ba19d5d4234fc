package interfaces

import (
	"context"

	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// FactStore holds embedded fact records grouped by collection name and
// answers nearest-neighbor queries. Implementations must be safe for
// concurrent reads once ingestion has completed.
type FactStore interface {
	// Put inserts or overwrites a fact by ID within the collection.
	// Calling Put twice with the same ID keeps the latest fact.
	Put(ctx context.Context, collection string, fact *model.Fact) error

	// Query returns up to k facts ranked by descending cosine
	// similarity to the query vector, ties broken by insertion order.
	// An absent or empty collection yields an empty slice, never an
	// error.
	Query(ctx context.Context, collection string, vector []float32, k int) ([]*model.Fact, error)

	// Close releases any backend resources
	Close() error
}
