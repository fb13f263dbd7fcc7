package coupon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/pkg/cache"
	"github.com/dealkit/dealkit/pkg/qr"
	"github.com/dealkit/dealkit/pkg/validator"
)

// EventEnqueuer records analytics events off the request path.
type EventEnqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

// Analytics event names emitted by this module.
const (
	EventViewed   = "coupon.viewed"
	EventRedeemed = "coupon.redeemed"
)

const cacheTTL = 5 * time.Minute

// Service implements coupon business operations on top of the repository,
// with read-through caching and analytics events.
type Service struct {
	repo      Repository
	cache     cache.Cache
	events    EventEnqueuer
	log       *slog.Logger
	redeemURL string
	now       func() time.Time
}

// NewService wires a coupon service. redeemBaseURL is the public URL prefix
// encoded into redemption QR codes.
func NewService(repo Repository, c cache.Cache, events EventEnqueuer, log *slog.Logger, redeemBaseURL string) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		events:    events,
		log:       log,
		redeemURL: redeemBaseURL,
		now:       time.Now,
	}
}

// CreateParams carries a validated create payload.
type CreateParams struct {
	Title        string
	Code         string
	Discount     float64
	DiscountType string
	StoreID      string
	Category     string
	Terms        string
	ExpiresAt    string
}

// Create stores a new coupon. The code must be unique; duplicates surface as
// ErrCodeExists.
func (s *Service) Create(ctx context.Context, params CreateParams) (Coupon, error) {
	storeID, err := bson.ObjectIDFromHex(params.StoreID)
	if err != nil {
		return Coupon{}, ErrInvalidID
	}

	now := s.now().UTC()
	c := Coupon{
		ID:           bson.NewObjectID(),
		Title:        params.Title,
		Code:         params.Code,
		Discount:     params.Discount,
		DiscountType: params.DiscountType,
		StoreID:      storeID,
		Category:     params.Category,
		Terms:        params.Terms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if params.ExpiresAt != "" {
		expires, err := validator.ParseISODate(params.ExpiresAt)
		if err == nil {
			c.ExpiresAt = &expires
		}
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		return Coupon{}, err
	}

	s.invalidate(ctx)
	return c, nil
}

// Get loads a coupon by hex id, serving from cache when warm, and records a
// view event.
func (s *Service) Get(ctx context.Context, id string) (Coupon, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Coupon{}, ErrInvalidID
	}

	key := "coupon:" + id
	var c Coupon
	if err := s.cache.Get(ctx, key, &c); err == nil {
		s.recordEvent(ctx, EventViewed, map[string]string{"coupon_id": id})
		return c, nil
	}

	c, err = s.repo.FindByID(ctx, oid)
	if err != nil {
		return Coupon{}, err
	}

	if err := s.cache.Set(ctx, key, c, cacheTTL); err != nil {
		s.log.WarnContext(ctx, "failed to cache coupon", slog.Any("error", err))
	}
	s.recordEvent(ctx, EventViewed, map[string]string{"coupon_id": id})
	return c, nil
}

// UpdateParams carries a validated partial update. Nil fields are untouched.
type UpdateParams struct {
	Title        *string
	Discount     *float64
	DiscountType *string
	Category     *string
	ExpiresAt    *string
}

// Update applies a partial update and returns the stored coupon.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (Coupon, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Coupon{}, ErrInvalidID
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Discount != nil {
		set["discount"] = *params.Discount
	}
	if params.DiscountType != nil {
		set["discount_type"] = *params.DiscountType
	}
	if params.Category != nil {
		set["category"] = *params.Category
	}
	if params.ExpiresAt != nil {
		if expires, err := validator.ParseISODate(*params.ExpiresAt); err == nil {
			set["expires_at"] = expires
		}
	}

	c, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		return Coupon{}, err
	}

	s.invalidate(ctx)
	return c, nil
}

// Delete removes a coupon.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// List pages through coupons with optional category and store filters.
func (s *Service) List(ctx context.Context, params ListParams) ([]Coupon, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}
	return s.repo.List(ctx, params)
}

// Redeem resolves a coupon by code, rejects expired coupons, bumps the
// redemption counter and returns the coupon with a QR code for the
// redemption link.
func (s *Service) Redeem(ctx context.Context, code string) (Redemption, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return Redemption{}, err
	}
	if c.Expired(s.now()) {
		return Redemption{}, ErrExpired
	}

	c, err = s.repo.IncrementRedemptions(ctx, c.ID)
	if err != nil {
		return Redemption{}, err
	}

	dataURL, err := qr.GenerateDataURL(fmt.Sprintf("%s/%s", s.redeemURL, c.Code), 256)
	if err != nil {
		return Redemption{}, err
	}

	s.invalidate(ctx)
	s.recordEvent(ctx, EventRedeemed, map[string]string{
		"coupon_id": c.ID.Hex(),
		"code":      c.Code,
	})
	return Redemption{Coupon: c, QRCode: dataURL}, nil
}

// QRCodePNG renders the redemption link for a coupon code as a PNG image.
func (s *Service) QRCodePNG(ctx context.Context, code string, size int) ([]byte, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c.Expired(s.now()) {
		return nil, ErrExpired
	}
	return qr.Generate(fmt.Sprintf("%s/%s", s.redeemURL, c.Code), size)
}

// recordEvent enqueues an analytics event. Failures are logged, never
// propagated: analytics must not break user-facing operations.
func (s *Service) recordEvent(ctx context.Context, name string, payload any) {
	if err := s.events.Enqueue(ctx, name, payload); err != nil {
		s.log.WarnContext(ctx, "failed to enqueue analytics event",
			slog.String("event", name), slog.Any("error", err))
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, "coupon:"); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate coupon cache", slog.Any("error", err))
	}
}
