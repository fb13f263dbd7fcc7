package content

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Repository is the storage contract for articles and reviews.
type Repository interface {
	InsertArticle(ctx context.Context, a Article) error
	FindArticleBySlug(ctx context.Context, slug string) (Article, error)
	ArticleSlugExists(ctx context.Context, slug string) (bool, error)
	UpdateArticle(ctx context.Context, slug string, set bson.M) (Article, error)
	DeleteArticle(ctx context.Context, slug string) error
	ListArticles(ctx context.Context, page, perPage int64) ([]Article, int64, error)

	InsertReview(ctx context.Context, r Review) error
	ListReviews(ctx context.Context, storeID bson.ObjectID, page, perPage int64) ([]Review, int64, error)
}

type mongoRepository struct {
	articles *mongo.Collection
	reviews  *mongo.Collection
}

// NewMongoRepository creates a content repository on the "articles" and
// "reviews" collections.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		articles: db.Collection("articles"),
		reviews:  db.Collection("reviews"),
	}
}

func (r *mongoRepository) InsertArticle(ctx context.Context, a Article) error {
	if _, err := r.articles.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindArticleBySlug(ctx context.Context, slug string) (Article, error) {
	var a Article
	err := r.articles.FindOne(ctx, bson.M{"slug": slug}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Article{}, ErrArticleNotFound
	}
	return a, err
}

func (r *mongoRepository) ArticleSlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.articles.CountDocuments(ctx, bson.M{"slug": slug})
	return count > 0, err
}

func (r *mongoRepository) UpdateArticle(ctx context.Context, slug string, set bson.M) (Article, error) {
	var a Article
	err := r.articles.FindOneAndUpdate(ctx,
		bson.M{"slug": slug},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Article{}, ErrArticleNotFound
	}
	return a, err
}

func (r *mongoRepository) DeleteArticle(ctx context.Context, slug string) error {
	res, err := r.articles.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *mongoRepository) ListArticles(ctx context.Context, page, perPage int64) ([]Article, int64, error) {
	total, err := r.articles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.articles.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page-1)*perPage).
		SetLimit(perPage))
	if err != nil {
		return nil, 0, err
	}

	var articles []Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *mongoRepository) InsertReview(ctx context.Context, review Review) error {
	_, err := r.reviews.InsertOne(ctx, review)
	return err
}

func (r *mongoRepository) ListReviews(ctx context.Context, storeID bson.ObjectID, page, perPage int64) ([]Review, int64, error) {
	filter := bson.M{"store_id": storeID}

	total, err := r.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.reviews.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page-1)*perPage).
		SetLimit(perPage))
	if err != nil {
		return nil, 0, err
	}

	var reviews []Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
