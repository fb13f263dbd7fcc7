package content

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/pkg/slug"
)

// ReviewRecorder folds a new review into the store's rating aggregate.
type ReviewRecorder interface {
	RecordReview(ctx context.Context, storeID bson.ObjectID, rating int) error
}

// Service implements editorial operations.
type Service struct {
	repo    Repository
	ratings ReviewRecorder
	log     *slog.Logger
	now     func() time.Time
}

// NewService wires a content service. ratings receives every accepted review
// so store aggregates stay current.
func NewService(repo Repository, ratings ReviewRecorder, log *slog.Logger) *Service {
	return &Service{repo: repo, ratings: ratings, log: log, now: time.Now}
}

// ArticleParams carries a validated article payload.
type ArticleParams struct {
	Title    string
	Content  string
	CoverURL string
	Tags     []string
}

// CreateArticle stores a new article under a slug derived from its title.
func (s *Service) CreateArticle(ctx context.Context, params ArticleParams) (Article, error) {
	id := bson.NewObjectID()

	articleSlug := slug.Make(params.Title)
	if articleSlug == "" {
		articleSlug = id.Hex()[:8]
	}
	exists, err := s.repo.ArticleSlugExists(ctx, articleSlug)
	if err != nil {
		return Article{}, err
	}
	if exists {
		articleSlug = slug.MakeUnique(params.Title, id.Hex()[len(id.Hex())-4:])
	}

	now := s.now().UTC()
	a := Article{
		ID:        id,
		Title:     params.Title,
		Slug:      articleSlug,
		Content:   params.Content,
		CoverURL:  params.CoverURL,
		Tags:      params.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertArticle(ctx, a); err != nil {
		return Article{}, err
	}
	return a, nil
}

// GetArticle resolves an article by slug.
func (s *Service) GetArticle(ctx context.Context, articleSlug string) (Article, error) {
	return s.repo.FindArticleBySlug(ctx, articleSlug)
}

// UpdateArticleParams carries a validated partial update.
type UpdateArticleParams struct {
	Title    *string
	Content  *string
	CoverURL *string
}

// UpdateArticle applies a partial update addressed by slug. The slug itself
// never changes; published URLs stay stable.
func (s *Service) UpdateArticle(ctx context.Context, articleSlug string, params UpdateArticleParams) (Article, error) {
	set := bson.M{"updated_at": s.now().UTC()}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Content != nil {
		set["content"] = *params.Content
	}
	if params.CoverURL != nil {
		set["cover_url"] = *params.CoverURL
	}
	return s.repo.UpdateArticle(ctx, articleSlug, set)
}

// DeleteArticle removes an article by slug.
func (s *Service) DeleteArticle(ctx context.Context, articleSlug string) error {
	return s.repo.DeleteArticle(ctx, articleSlug)
}

// ListArticles pages through articles, newest first.
func (s *Service) ListArticles(ctx context.Context, page, perPage int64) ([]Article, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListArticles(ctx, page, perPage)
}

// ReviewParams carries a validated review payload.
type ReviewParams struct {
	StoreID string
	Rating  int
	Comment string
}

// CreateReview stores a review and updates the store's rating aggregate. A
// failure in the aggregate update is logged but does not lose the review.
func (s *Service) CreateReview(ctx context.Context, params ReviewParams) (Review, error) {
	storeID, err := bson.ObjectIDFromHex(params.StoreID)
	if err != nil {
		return Review{}, ErrInvalidID
	}

	review := Review{
		ID:        bson.NewObjectID(),
		StoreID:   storeID,
		Rating:    params.Rating,
		Comment:   params.Comment,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.InsertReview(ctx, review); err != nil {
		return Review{}, err
	}

	if err := s.ratings.RecordReview(ctx, storeID, params.Rating); err != nil {
		s.log.ErrorContext(ctx, "failed to update store rating",
			slog.String("store_id", params.StoreID),
			slog.Any("error", err))
	}
	return review, nil
}

// ListReviews pages through a store's reviews, newest first.
func (s *Service) ListReviews(ctx context.Context, storeID string, page, perPage int64) ([]Review, int64, error) {
	oid, err := bson.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, 0, ErrInvalidID
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListReviews(ctx, oid, page, perPage)
}
