package cashback

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository is the storage contract for offers and transactions.
type Repository interface {
	InsertOffer(ctx context.Context, o Offer) error
	FindOffer(ctx context.Context, id bson.ObjectID) (Offer, error)
	UpdateOffer(ctx context.Context, id bson.ObjectID, set bson.M) (Offer, error)
	ListOffers(ctx context.Context, page, perPage int64) ([]Offer, int64, error)

	InsertTransaction(ctx context.Context, tx Transaction) error
	FindTransaction(ctx context.Context, id bson.ObjectID) (Transaction, error)
	// TransitionTransaction atomically moves a transaction from one status
	// to another. Returns ErrInvalidTransition when the stored status no
	// longer matches from, so concurrent operators cannot double-apply.
	TransitionTransaction(ctx context.Context, id bson.ObjectID, from, to Status, set bson.M) (Transaction, error)
	ListTransactions(ctx context.Context, status Status, page, perPage int64) ([]Transaction, int64, error)
}

type mongoRepository struct {
	offers *mongo.Collection
	txs    *mongo.Collection
}

// NewMongoRepository creates a cashback repository on the "cashback_offers"
// and "cashback_transactions" collections.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		offers: db.Collection("cashback_offers"),
		txs:    db.Collection("cashback_transactions"),
	}
}

func (r *mongoRepository) InsertOffer(ctx context.Context, o Offer) error {
	_, err := r.offers.InsertOne(ctx, o)
	return err
}

func (r *mongoRepository) FindOffer(ctx context.Context, id bson.ObjectID) (Offer, error) {
	var o Offer
	err := r.offers.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Offer{}, ErrOfferNotFound
	}
	return o, err
}

func (r *mongoRepository) UpdateOffer(ctx context.Context, id bson.ObjectID, set bson.M) (Offer, error) {
	var o Offer
	err := r.offers.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Offer{}, ErrOfferNotFound
	}
	return o, err
}

func (r *mongoRepository) ListOffers(ctx context.Context, page, perPage int64) ([]Offer, int64, error) {
	total, err := r.offers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.offers.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "rate", Value: -1}}).
		SetSkip((page-1)*perPage).
		SetLimit(perPage))
	if err != nil {
		return nil, 0, err
	}

	var offers []Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func (r *mongoRepository) InsertTransaction(ctx context.Context, tx Transaction) error {
	_, err := r.txs.InsertOne(ctx, tx)
	return err
}

func (r *mongoRepository) FindTransaction(ctx context.Context, id bson.ObjectID) (Transaction, error) {
	var tx Transaction
	err := r.txs.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, err
}

func (r *mongoRepository) TransitionTransaction(ctx context.Context, id bson.ObjectID, from, to Status, set bson.M) (Transaction, error) {
	set["status"] = to

	var tx Transaction
	err := r.txs.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the transaction is gone or its status moved underneath us.
		if _, findErr := r.FindTransaction(ctx, id); findErr != nil {
			return Transaction{}, findErr
		}
		return Transaction{}, ErrInvalidTransition
	}
	return tx, err
}

func (r *mongoRepository) ListTransactions(ctx context.Context, status Status, page, perPage int64) ([]Transaction, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.txs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.txs.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page-1)*perPage).
		SetLimit(perPage))
	if err != nil {
		return nil, 0, err
	}

	var txs []Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
