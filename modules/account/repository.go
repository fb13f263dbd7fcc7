package account

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository is the storage contract for user accounts.
type Repository interface {
	Insert(ctx context.Context, u User) error
	FindByID(ctx context.Context, id bson.ObjectID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, set bson.M) (User, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates an account repository on the "users" collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("users")}
}

func (r *mongoRepository) Insert(ctx context.Context, u User) error {
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *mongoRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, set bson.M) (User, error) {
	var u User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	return u, err
}
