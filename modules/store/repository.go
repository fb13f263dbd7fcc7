package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository is the storage contract for stores.
type Repository interface {
	Insert(ctx context.Context, s Store) error
	FindByID(ctx context.Context, id bson.ObjectID) (Store, error)
	FindBySlug(ctx context.Context, slug string) (Store, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (Store, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context, params ListParams) ([]Store, int64, error)
	ApplyReview(ctx context.Context, id bson.ObjectID, rating float64, count int64) error
}

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a store repository on the "stores" collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("stores")}
}

func (r *mongoRepository) Insert(ctx context.Context, s Store) error {
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (Store, error) {
	var s Store
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Store{}, ErrNotFound
	}
	return s, err
}

func (r *mongoRepository) FindBySlug(ctx context.Context, slug string) (Store, error) {
	var s Store
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Store{}, ErrNotFound
	}
	return s, err
}

func (r *mongoRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"slug": slug})
	return count > 0, err
}

func (r *mongoRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) (Store, error) {
	var s Store
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Store{}, ErrNotFound
	}
	return s, err
}

func (r *mongoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context, params ListParams) ([]Store, int64, error) {
	filter := bson.M{}
	if params.Category != "" {
		filter["category"] = params.Category
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip((params.Page-1)*params.PerPage).
		SetLimit(params.PerPage))
	if err != nil {
		return nil, 0, err
	}

	var stores []Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *mongoRepository) ApplyReview(ctx context.Context, id bson.ObjectID, rating float64, count int64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "review_count": count}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
