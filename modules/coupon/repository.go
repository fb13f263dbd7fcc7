package coupon

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository is the storage contract for coupons.
type Repository interface {
	Insert(ctx context.Context, c Coupon) error
	FindByID(ctx context.Context, id bson.ObjectID) (Coupon, error)
	FindByCode(ctx context.Context, code string) (Coupon, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (Coupon, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context, params ListParams) ([]Coupon, int64, error)
	IncrementRedemptions(ctx context.Context, id bson.ObjectID) (Coupon, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a coupon repository on the "coupons" collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("coupons")}
}

func (r *mongoRepository) Insert(ctx context.Context, c Coupon) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCodeExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (Coupon, error) {
	var c Coupon
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Coupon{}, ErrNotFound
	}
	return c, err
}

func (r *mongoRepository) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var c Coupon
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Coupon{}, ErrNotFound
	}
	return c, err
}

func (r *mongoRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) (Coupon, error) {
	var c Coupon
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Coupon{}, ErrNotFound
	}
	return c, err
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

func (r *mongoRepository) List(ctx context.Context, params ListParams) ([]Coupon, int64, error) {
	filter := bson.M{}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.StoreID != "" {
		storeID, err := bson.ObjectIDFromHex(params.StoreID)
		if err != nil {
			return nil, 0, ErrInvalidID
		}
		filter["store_id"] = storeID
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((params.Page-1)*params.PerPage).
		SetLimit(params.PerPage))
	if err != nil {
		return nil, 0, err
	}

	var coupons []Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *mongoRepository) IncrementRedemptions(ctx context.Context, id bson.ObjectID) (Coupon, error) {
	var c Coupon
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"redemptions": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Coupon{}, ErrNotFound
	}
	return c, err
}
