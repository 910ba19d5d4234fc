package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// factDoc is the Firestore document representation of model.Fact.
// Embedding is stored as firestore.Vector32 so that FindNearest vector
// search works.
type factDoc struct {
	ID        model.FactID       `firestore:"ID"`
	Text      string             `firestore:"Text"`
	Embedding firestore.Vector32 `firestore:"Embedding,omitempty"`
	CreatedAt time.Time          `firestore:"CreatedAt"`
}

func toFactDoc(f *model.Fact) *factDoc {
	doc := &factDoc{
		ID:        f.ID,
		Text:      f.Text,
		CreatedAt: f.CreatedAt,
	}
	if len(f.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(f.Embedding)
	}
	return doc
}

func fromFactDoc(d *factDoc) *model.Fact {
	f := &model.Fact{
		ID:        d.ID,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		f.Embedding = []float32(d.Embedding)
	}
	return f
}

type factStore struct {
	client *firestore.Client
}

var _ interfaces.FactStore = &factStore{}

// New creates a Firestore-backed fact store. databaseID may be empty to
// use the default database.
func New(ctx context.Context, projectID, databaseID string) (interfaces.FactStore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &factStore{client: client}, nil
}

// factsCollection returns the subcollection path:
// collections/{collection}/facts
func (s *factStore) factsCollection(collection string) *firestore.CollectionRef {
	return s.client.Collection("collections").Doc(collection).Collection("facts")
}

func (s *factStore) Put(ctx context.Context, collection string, fact *model.Fact) error {
	stored := fact.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	docRef := s.factsCollection(collection).Doc(string(stored.ID))
	if _, err := docRef.Set(ctx, toFactDoc(stored)); err != nil {
		return goerr.Wrap(err, "failed to put fact",
			goerr.V("collection", collection),
			goerr.V("factID", stored.ID),
		)
	}

	return nil
}

func (s *factStore) Query(ctx context.Context, collection string, vector []float32, k int) ([]*model.Fact, error) {
	if k <= 0 {
		return []*model.Fact{}, nil
	}

	vq := s.factsCollection(collection).
		FindNearest("Embedding", firestore.Vector32(vector), k, firestore.DistanceMeasureCosine, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	facts := make([]*model.Fact, 0, k)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// An absent collection is an empty result, not a failure
			if status.Code(err) == codes.NotFound {
				return []*model.Fact{}, nil
			}
			return nil, goerr.Wrap(err, "failed to iterate fact vector search results",
				goerr.V("collection", collection),
			)
		}

		var d factDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal fact from vector search")
		}

		facts = append(facts, fromFactDoc(&d))
	}

	return facts, nil
}

func (s *factStore) Close() error {
	return s.client.Close()
}
