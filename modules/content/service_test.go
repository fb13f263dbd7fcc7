package content_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/modules/content"
)

type fakeRepo struct {
	mu       sync.Mutex
	articles map[string]content.Article
	reviews  []content.Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: make(map[string]content.Article)}
}

func (r *fakeRepo) InsertArticle(_ context.Context, a content.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[a.Slug]; ok {
		return content.ErrSlugExists
	}
	r.articles[a.Slug] = a
	return nil
}

func (r *fakeRepo) FindArticleBySlug(_ context.Context, slug string) (content.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[slug]
	if !ok {
		return content.Article{}, content.ErrArticleNotFound
	}
	return a, nil
}

func (r *fakeRepo) ArticleSlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.articles[slug]
	return ok, nil
}

func (r *fakeRepo) UpdateArticle(_ context.Context, slug string, set bson.M) (content.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[slug]
	if !ok {
		return content.Article{}, content.ErrArticleNotFound
	}
	if title, ok := set["title"].(string); ok {
		a.Title = title
	}
	if body, ok := set["content"].(string); ok {
		a.Content = body
	}
	r.articles[slug] = a
	return a, nil
}

func (r *fakeRepo) DeleteArticle(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[slug]; !ok {
		return content.ErrArticleNotFound
	}
	delete(r.articles, slug)
	return nil
}

func (r *fakeRepo) ListArticles(_ context.Context, _, _ int64) ([]content.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []content.Article
	for _, a := range r.articles {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) InsertReview(_ context.Context, review content.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeRepo) ListReviews(_ context.Context, storeID bson.ObjectID, _, _ int64) ([]content.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []content.Review
	for _, review := range r.reviews {
		if review.StoreID == storeID {
			out = append(out, review)
		}
	}
	return out, int64(len(out)), nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	ratings []int
}

func (f *fakeRecorder) RecordReview(_ context.Context, _ bson.ObjectID, rating int) error {
	f.mu.Lock()
	f.ratings = append(f.ratings, rating)
	f.mu.Unlock()
	return nil
}

func newService(t *testing.T) (*content.Service, *fakeRecorder) {
	t.Helper()

	recorder := &fakeRecorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return content.NewService(newFakeRepo(), recorder, log), recorder
}

func TestCreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from title", func(t *testing.T) {
		svc, _ := newService(t)

		a, err := svc.CreateArticle(ctx, content.ArticleParams{
			Title:   "10 Best Deals This Summer!",
			Content: "Long enough article body covering the actual deals in detail.",
		})
		require.NoError(t, err)
		assert.Equal(t, "10-best-deals-this-summer", a.Slug)
	})

	t.Run("slug collision gets a suffix", func(t *testing.T) {
		svc, _ := newService(t)

		params := content.ArticleParams{
			Title:   "Weekly Roundup",
			Content: "Long enough article body covering the actual deals in detail.",
		}
		first, err := svc.CreateArticle(ctx, params)
		require.NoError(t, err)
		second, err := svc.CreateArticle(ctx, params)
		require.NoError(t, err)
		assert.NotEqual(t, first.Slug, second.Slug)
	})
}

func TestUpdateArticleKeepsSlug(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a, err := svc.CreateArticle(ctx, content.ArticleParams{
		Title:   "Original Title",
		Content: "Long enough article body covering the actual deals in detail.",
	})
	require.NoError(t, err)

	title := "Renamed Title"
	updated, err := svc.UpdateArticle(ctx, a.Slug, content.UpdateArticleParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Title", updated.Title)
	assert.Equal(t, a.Slug, updated.Slug)
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("stores review and records rating", func(t *testing.T) {
		svc, recorder := newService(t)

		storeID := bson.NewObjectID()
		review, err := svc.CreateReview(ctx, content.ReviewParams{
			StoreID: storeID.Hex(),
			Rating:  4,
			Comment: "great deals",
		})
		require.NoError(t, err)
		assert.Equal(t, storeID, review.StoreID)

		recorder.mu.Lock()
		defer recorder.mu.Unlock()
		assert.Equal(t, []int{4}, recorder.ratings)
	})

	t.Run("bad store id rejected", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.CreateReview(ctx, content.ReviewParams{StoreID: "nope", Rating: 4})
		assert.ErrorIs(t, err, content.ErrInvalidID)
	})
}
