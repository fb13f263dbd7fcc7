package cashback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/pkg/email"
	"github.com/dealkit/dealkit/pkg/validator"
)

// EventEnqueuer records analytics events off the request path.
type EventEnqueuer interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

// EventTracked is emitted when a purchase is tracked against an offer.
const EventTracked = "cashback.tracked"

// Service implements cashback offers and the transaction lifecycle.
type Service struct {
	repo   Repository
	mailer email.Sender
	events EventEnqueuer
	log    *slog.Logger
	now    func() time.Time
}

// NewService wires a cashback service.
func NewService(repo Repository, mailer email.Sender, events EventEnqueuer, log *slog.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, events: events, log: log, now: time.Now}
}

// OfferParams carries a validated offer payload.
type OfferParams struct {
	Title       string
	Rate        float64
	StoreID     string
	Category    string
	MaxCashback float64
	ExpiresAt   string
}

// CreateOffer stores a new cashback offer.
func (s *Service) CreateOffer(ctx context.Context, params OfferParams) (Offer, error) {
	storeID, err := bson.ObjectIDFromHex(params.StoreID)
	if err != nil {
		return Offer{}, ErrInvalidID
	}

	now := s.now().UTC()
	o := Offer{
		ID:          bson.NewObjectID(),
		Title:       params.Title,
		Rate:        params.Rate,
		StoreID:     storeID,
		Category:    params.Category,
		MaxCashback: params.MaxCashback,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if params.ExpiresAt != "" {
		if expires, err := validator.ParseISODate(params.ExpiresAt); err == nil {
			o.ExpiresAt = &expires
		}
	}

	if err := s.repo.InsertOffer(ctx, o); err != nil {
		return Offer{}, err
	}
	return o, nil
}

// UpdateOfferParams carries a validated partial update. Nil fields are
// untouched.
type UpdateOfferParams struct {
	Title       *string
	Rate        *float64
	Category    *string
	MaxCashback *float64
	ExpiresAt   *string
}

// UpdateOffer applies a partial update and returns the stored offer.
func (s *Service) UpdateOffer(ctx context.Context, id string, params UpdateOfferParams) (Offer, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Offer{}, ErrInvalidID
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Rate != nil {
		set["rate"] = *params.Rate
	}
	if params.Category != nil {
		set["category"] = *params.Category
	}
	if params.MaxCashback != nil {
		set["max_cashback"] = *params.MaxCashback
	}
	if params.ExpiresAt != nil {
		if expires, err := validator.ParseISODate(*params.ExpiresAt); err == nil {
			set["expires_at"] = expires
		}
	}

	return s.repo.UpdateOffer(ctx, oid, set)
}

// GetOffer loads an offer by hex id.
func (s *Service) GetOffer(ctx context.Context, id string) (Offer, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Offer{}, ErrInvalidID
	}
	return s.repo.FindOffer(ctx, oid)
}

// ListOffers pages through offers, highest rate first.
func (s *Service) ListOffers(ctx context.Context, page, perPage int64) ([]Offer, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListOffers(ctx, page, perPage)
}

// TrackParams carries a validated purchase-tracking payload.
type TrackParams struct {
	OfferID        string
	UserEmail      string
	OrderAmount    float64
	OrderReference string
}

// Track records a purchase against an offer as a pending transaction, with
// the cashback amount computed from the offer's rate and cap.
func (s *Service) Track(ctx context.Context, params TrackParams) (Transaction, error) {
	offerID, err := bson.ObjectIDFromHex(params.OfferID)
	if err != nil {
		return Transaction{}, ErrInvalidID
	}

	offer, err := s.repo.FindOffer(ctx, offerID)
	if err != nil {
		return Transaction{}, err
	}
	if offer.ExpiresAt != nil && s.now().After(*offer.ExpiresAt) {
		return Transaction{}, ErrOfferExpired
	}

	now := s.now().UTC()
	tx := Transaction{
		ID:             bson.NewObjectID(),
		OfferID:        offerID,
		UserEmail:      params.UserEmail,
		OrderAmount:    params.OrderAmount,
		OrderReference: params.OrderReference,
		CashbackAmount: offer.CashbackFor(params.OrderAmount),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.InsertTransaction(ctx, tx); err != nil {
		return Transaction{}, err
	}

	if err := s.events.Enqueue(ctx, EventTracked, map[string]string{
		"offer_id":       offerID.Hex(),
		"transaction_id": tx.ID.Hex(),
	}); err != nil {
		s.log.WarnContext(ctx, "failed to enqueue analytics event",
			slog.String("event", EventTracked), slog.Any("error", err))
	}
	return tx, nil
}

// Transition moves a transaction to a new status. Only pending→approved,
// pending→rejected and approved→paid are allowed. Approval sends the user a
// notification email; a delivery failure is logged, not propagated.
func (s *Service) Transition(ctx context.Context, id string, to Status, note string) (Transaction, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Transaction{}, ErrInvalidID
	}

	current, err := s.repo.FindTransaction(ctx, oid)
	if err != nil {
		return Transaction{}, err
	}
	if !CanTransition(current.Status, to) {
		return Transaction{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, to)
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if note != "" {
		set["note"] = note
	}

	tx, err := s.repo.TransitionTransaction(ctx, oid, current.Status, to, set)
	if err != nil {
		return Transaction{}, err
	}

	if to == StatusApproved {
		s.notifyApproved(ctx, tx)
	}
	return tx, nil
}

// ListTransactions pages through transactions with an optional status filter.
func (s *Service) ListTransactions(ctx context.Context, status Status, page, perPage int64) ([]Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListTransactions(ctx, status, page, perPage)
}

func (s *Service) notifyApproved(ctx context.Context, tx Transaction) {
	err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:  tx.UserEmail,
		Subject: "Your cashback was approved",
		BodyHTML: fmt.Sprintf(
			"<p>Good news! Your cashback of %.2f for order %s was approved and will be paid out shortly.</p>",
			tx.CashbackAmount, tx.OrderReference),
		Tag: "cashback-approved",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send approval email",
			slog.String("transaction_id", tx.ID.Hex()),
			slog.Any("error", err))
	}
}
