package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
)

// entry keeps the stored fact together with its insertion sequence so
// that equal similarity scores rank in insertion order.
type entry struct {
	fact *model.Fact
	seq  int
}

type factStore struct {
	mu          sync.RWMutex
	collections map[string]map[model.FactID]*entry
	nextSeq     int
}

var _ interfaces.FactStore = &factStore{}

// New creates an in-process fact store. Ingestion writes and serving
// reads are not interleaved in this design, but the store is guarded
// anyway so misuse degrades to slow, not corrupt.
func New() interfaces.FactStore {
	return &factStore{
		collections: make(map[string]map[model.FactID]*entry),
	}
}

func (s *factStore) Put(ctx context.Context, collection string, fact *model.Fact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, exists := s.collections[collection]
	if !exists {
		bucket = make(map[model.FactID]*entry)
		s.collections[collection] = bucket
	}

	stored := fact.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	// Overwriting by ID keeps the original insertion position
	seq := s.nextSeq
	if prev, exists := bucket[stored.ID]; exists {
		seq = prev.seq
	} else {
		s.nextSeq++
	}
	bucket[stored.ID] = &entry{fact: stored, seq: seq}

	return nil
}

func (s *factStore) Query(ctx context.Context, collection string, vector []float32, k int) ([]*model.Fact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, exists := s.collections[collection]
	if !exists || k <= 0 {
		return []*model.Fact{}, nil
	}

	type scored struct {
		fact  *model.Fact
		seq   int
		score float64
	}

	candidates := make([]scored, 0, len(bucket))
	for _, e := range bucket {
		if len(e.fact.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			fact:  e.fact.Clone(),
			seq:   e.seq,
			score: cosineSimilarity(vector, e.fact.Embedding),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].seq < candidates[j].seq
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	result := make([]*model.Fact, k)
	for i := 0; i < k; i++ {
		result[i] = candidates[i].fact
	}

	return result, nil
}

func (s *factStore) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
