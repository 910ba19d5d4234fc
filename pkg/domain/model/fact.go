package model

import "time"

// EmbeddingDimension is the fixed dimension for fact embeddings.
// All facts within one store instance share this dimension.
const EmbeddingDimension = 768

// FactID identifies a fact within a collection
type FactID string

// Fact is an immutable fixture fact with its vector embedding.
// Facts are created once during ingestion and never mutated; the
// store is append-only for a given run.
type Fact struct {
	ID        FactID
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// Clone returns a deep copy of the fact
func (f *Fact) Clone() *Fact {
	copied := &Fact{
		ID:        f.ID,
		Text:      f.Text,
		CreatedAt: f.CreatedAt,
	}
	if f.Embedding != nil {
		copied.Embedding = make([]float32, len(f.Embedding))
		copy(copied.Embedding, f.Embedding)
	}
	return copied
}
