package analytics

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dealkit/dealkit/pkg/queue"
)

// EventRepository persists queue events in the "analytics_events"
// collection. It implements both the enqueuer and worker storage contracts,
// so one collection carries the full event lifecycle.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates the Mongo-backed event store.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection("analytics_events")}
}

func (r *EventRepository) Insert(ctx context.Context, event queue.Event) error {
	_, err := r.col.InsertOne(ctx, event)
	return err
}

func (r *EventRepository) ClaimPending(ctx context.Context, now time.Time) (queue.Event, error) {
	var event queue.Event
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{
			"status":       queue.StatusPending,
			"scheduled_at": bson.M{"$lte": now},
		},
		bson.M{"$set": bson.M{"status": queue.StatusProcessing}},
		options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
			SetReturnDocument(options.After),
	).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return queue.Event{}, queue.ErrNoPendingEvents
	}
	return event, err
}

func (r *EventRepository) MarkCompleted(ctx context.Context, event queue.Event) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": event.ID},
		bson.M{"$set": bson.M{
			"status":       queue.StatusCompleted,
			"attempts":     event.Attempts,
			"processed_at": now,
		}})
	return err
}

func (r *EventRepository) MarkRetry(ctx context.Context, event queue.Event, runAt time.Time, lastError string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": event.ID},
		bson.M{"$set": bson.M{
			"status":       queue.StatusPending,
			"attempts":     event.Attempts,
			"scheduled_at": runAt,
			"last_error":   lastError,
		}})
	return err
}

func (r *EventRepository) MarkFailed(ctx context.Context, event queue.Event, lastError string) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": event.ID},
		bson.M{"$set": bson.M{
			"status":       queue.StatusFailed,
			"attempts":     event.Attempts,
			"processed_at": now,
			"last_error":   lastError,
		}})
	return err
}

// MongoCounterStore aggregates counters in the "analytics_counters"
// collection, one document per metric and key.
type MongoCounterStore struct {
	col *mongo.Collection
}

// NewMongoCounterStore creates the Mongo-backed counter store.
func NewMongoCounterStore(db *mongo.Database) *MongoCounterStore {
	return &MongoCounterStore{col: db.Collection("analytics_counters")}
}

func (s *MongoCounterStore) Increment(ctx context.Context, metric, key string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"metric": metric, "key": key},
		bson.M{"$inc": bson.M{"count": 1}},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (s *MongoCounterStore) Totals(ctx context.Context, metric string) (map[string]int64, error) {
	cursor, err := s.col.Find(ctx, bson.M{"metric": metric})
	if err != nil {
		return nil, err
	}

	var docs []struct {
		Key   string `bson:"key"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	totals := make(map[string]int64, len(docs))
	for _, doc := range docs {
		totals[doc.Key] = doc.Count
	}
	return totals, nil
}
