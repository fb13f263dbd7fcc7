package store

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/modules/coupon"
	"github.com/dealkit/dealkit/pkg/cache"
	"github.com/dealkit/dealkit/pkg/slug"
)

const (
	cacheTTL = 10 * time.Minute

	// detailCoupons caps how many coupons the slug endpoint embeds.
	detailCoupons = 20
)

// CouponSource lists a store's coupons for the detail view.
type CouponSource interface {
	List(ctx context.Context, params coupon.ListParams) ([]coupon.Coupon, int64, error)
}

// Details is a store together with its current coupons, the shape served by
// the public slug endpoint.
type Details struct {
	Store
	Coupons []coupon.Coupon `json:"coupons"`
}

// Service implements store business operations with slug generation and
// read-through caching on slug lookups.
type Service struct {
	repo    Repository
	cache   cache.Cache
	coupons CouponSource
	log     *slog.Logger
	now     func() time.Time
}

// NewService wires a store service.
func NewService(repo Repository, c cache.Cache, coupons CouponSource, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, coupons: coupons, log: log, now: time.Now}
}

// CreateParams carries a validated create payload.
type CreateParams struct {
	Name        string
	Website     string
	Description string
	Category    string
	LogoURL     string
}

// Create stores a new merchant. The slug derives from the name; on collision
// a short ObjectID-based suffix is appended.
func (s *Service) Create(ctx context.Context, params CreateParams) (Store, error) {
	id := bson.NewObjectID()

	storeSlug := slug.Make(params.Name)
	if storeSlug == "" {
		storeSlug = id.Hex()[:8]
	}
	exists, err := s.repo.SlugExists(ctx, storeSlug)
	if err != nil {
		return Store{}, err
	}
	if exists {
		storeSlug = slug.MakeUnique(params.Name, id.Hex()[len(id.Hex())-4:])
	}

	now := s.now().UTC()
	st := Store{
		ID:          id,
		Name:        params.Name,
		Slug:        storeSlug,
		Website:     params.Website,
		Description: params.Description,
		Category:    params.Category,
		LogoURL:     params.LogoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, st); err != nil {
		return Store{}, err
	}
	return st, nil
}

// GetBySlug resolves a store by its public slug together with its current
// coupons, serving from cache when warm. A coupon lookup failure degrades to
// the store alone rather than failing the read.
func (s *Service) GetBySlug(ctx context.Context, storeSlug string) (Details, error) {
	key := "store:slug:" + storeSlug

	var d Details
	if err := s.cache.Get(ctx, key, &d); err == nil {
		return d, nil
	}

	st, err := s.repo.FindBySlug(ctx, storeSlug)
	if err != nil {
		return Details{}, err
	}
	d = Details{Store: st}

	coupons, _, err := s.coupons.List(ctx, coupon.ListParams{
		StoreID: st.ID.Hex(),
		Page:    1,
		PerPage: detailCoupons,
	})
	if err != nil {
		s.log.WarnContext(ctx, "failed to list store coupons",
			slog.String("store_id", st.ID.Hex()), slog.Any("error", err))
	} else {
		d.Coupons = coupons
	}

	if err := s.cache.Set(ctx, key, d, cacheTTL); err != nil {
		s.log.WarnContext(ctx, "failed to cache store", slog.Any("error", err))
	}
	return d, nil
}

// Get resolves a store by hex id.
func (s *Service) Get(ctx context.Context, id string) (Store, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Store{}, ErrInvalidID
	}
	return s.repo.FindByID(ctx, oid)
}

// UpdateParams carries a validated partial update. Nil fields are untouched.
type UpdateParams struct {
	Name        *string
	Website     *string
	Description *string
	Category    *string
	LogoURL     *string
}

// Update applies a partial update. Renaming a store does not change its
// slug; published URLs stay stable.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (Store, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Store{}, ErrInvalidID
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Website != nil {
		set["website"] = *params.Website
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.Category != nil {
		set["category"] = *params.Category
	}
	if params.LogoURL != nil {
		set["logo_url"] = *params.LogoURL
	}

	st, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		return Store{}, err
	}
	s.invalidate(ctx, st.Slug)
	return st, nil
}

// Delete removes a store.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	st, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	s.invalidate(ctx, st.Slug)
	return nil
}

// List pages through stores with an optional category filter.
func (s *Service) List(ctx context.Context, params ListParams) ([]Store, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}
	return s.repo.List(ctx, params)
}

// RecordReview folds a new review rating into the store's running average.
func (s *Service) RecordReview(ctx context.Context, id bson.ObjectID, rating int) error {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count := st.ReviewCount + 1
	avg := (st.Rating*float64(st.ReviewCount) + float64(rating)) / float64(count)

	if err := s.repo.ApplyReview(ctx, id, avg, count); err != nil {
		return err
	}
	s.invalidate(ctx, st.Slug)
	return nil
}

func (s *Service) invalidate(ctx context.Context, storeSlug string) {
	if err := s.cache.Delete(ctx, "store:slug:"+storeSlug); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate store cache", slog.Any("error", err))
	}
}
