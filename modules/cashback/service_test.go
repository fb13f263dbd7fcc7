package cashback_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dealkit/dealkit/modules/cashback"
	"github.com/dealkit/dealkit/pkg/email"
)

type fakeRepo struct {
	mu     sync.Mutex
	offers map[string]cashback.Offer
	txs    map[string]cashback.Transaction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		offers: make(map[string]cashback.Offer),
		txs:    make(map[string]cashback.Transaction),
	}
}

func (r *fakeRepo) InsertOffer(_ context.Context, o cashback.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[o.ID.Hex()] = o
	return nil
}

func (r *fakeRepo) FindOffer(_ context.Context, id bson.ObjectID) (cashback.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id.Hex()]
	if !ok {
		return cashback.Offer{}, cashback.ErrOfferNotFound
	}
	return o, nil
}

func (r *fakeRepo) UpdateOffer(_ context.Context, id bson.ObjectID, set bson.M) (cashback.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id.Hex()]
	if !ok {
		return cashback.Offer{}, cashback.ErrOfferNotFound
	}
	if title, ok := set["title"].(string); ok {
		o.Title = title
	}
	if rate, ok := set["rate"].(float64); ok {
		o.Rate = rate
	}
	r.offers[id.Hex()] = o
	return o, nil
}

func (r *fakeRepo) ListOffers(_ context.Context, _, _ int64) ([]cashback.Offer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []cashback.Offer
	for _, o := range r.offers {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) InsertTransaction(_ context.Context, tx cashback.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID.Hex()] = tx
	return nil
}

func (r *fakeRepo) FindTransaction(_ context.Context, id bson.ObjectID) (cashback.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id.Hex()]
	if !ok {
		return cashback.Transaction{}, cashback.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *fakeRepo) TransitionTransaction(_ context.Context, id bson.ObjectID, from, to cashback.Status, set bson.M) (cashback.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id.Hex()]
	if !ok {
		return cashback.Transaction{}, cashback.ErrTransactionNotFound
	}
	if tx.Status != from {
		return cashback.Transaction{}, cashback.ErrInvalidTransition
	}
	tx.Status = to
	if note, ok := set["note"].(string); ok {
		tx.Note = note
	}
	r.txs[id.Hex()] = tx
	return tx, nil
}

func (r *fakeRepo) ListTransactions(_ context.Context, status cashback.Status, _, _ int64) ([]cashback.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []cashback.Transaction
	for _, tx := range r.txs {
		if status != "" && tx.Status != status {
			continue
		}
		out = append(out, tx)
	}
	return out, int64(len(out)), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (m *fakeMailer) SendEmail(_ context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	m.sent = append(m.sent, params)
	m.mu.Unlock()
	return nil
}

func (m *fakeMailer) messages() []email.SendEmailParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.SendEmailParams(nil), m.sent...)
}

type fakeEnqueuer struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, name string, _ any) error {
	f.mu.Lock()
	f.events = append(f.events, name)
	f.mu.Unlock()
	return nil
}

func (f *fakeEnqueuer) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func newService(t *testing.T) (*cashback.Service, *fakeRepo, *fakeMailer) {
	t.Helper()

	repo := newFakeRepo()
	mailer := &fakeMailer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cashback.NewService(repo, mailer, &fakeEnqueuer{}, log), repo, mailer
}

func createOffer(t *testing.T, svc *cashback.Service, params cashback.OfferParams) cashback.Offer {
	t.Helper()

	if params.Title == "" {
		params.Title = "5% back at Acme"
	}
	if params.Rate == 0 {
		params.Rate = 5
	}
	if params.StoreID == "" {
		params.StoreID = "664f1a7e2ab79c0012345678"
	}

	o, err := svc.CreateOffer(context.Background(), params)
	require.NoError(t, err)
	return o
}

func TestOfferCashbackFor(t *testing.T) {
	offer := cashback.Offer{Rate: 10, MaxCashback: 25}

	assert.InDelta(t, 10.0, offer.CashbackFor(100), 0.001)
	assert.InDelta(t, 25.0, offer.CashbackFor(1000), 0.001, "cap applies")

	uncapped := cashback.Offer{Rate: 10}
	assert.InDelta(t, 100.0, uncapped.CashbackFor(1000), 0.001)
}

func TestTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending transaction with computed cashback", func(t *testing.T) {
		svc, _, _ := newService(t)
		offer := createOffer(t, svc, cashback.OfferParams{Rate: 10, MaxCashback: 25})

		tx, err := svc.Track(ctx, cashback.TrackParams{
			OfferID:        offer.ID.Hex(),
			UserEmail:      "user@example.com",
			OrderAmount:    100,
			OrderReference: "ORDER-1",
		})
		require.NoError(t, err)
		assert.Equal(t, cashback.StatusPending, tx.Status)
		assert.InDelta(t, 10.0, tx.CashbackAmount, 0.001)
	})

	t.Run("expired offer rejected", func(t *testing.T) {
		svc, _, _ := newService(t)
		offer := createOffer(t, svc, cashback.OfferParams{
			ExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
		})

		_, err := svc.Track(ctx, cashback.TrackParams{
			OfferID:     offer.ID.Hex(),
			UserEmail:   "user@example.com",
			OrderAmount: 100,
		})
		assert.ErrorIs(t, err, cashback.ErrOfferExpired)
	})

	t.Run("emits tracked event", func(t *testing.T) {
		events := &fakeEnqueuer{}
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := cashback.NewService(newFakeRepo(), &fakeMailer{}, events, log)
		offer := createOffer(t, svc, cashback.OfferParams{})

		_, err := svc.Track(ctx, cashback.TrackParams{
			OfferID:     offer.ID.Hex(),
			UserEmail:   "user@example.com",
			OrderAmount: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{cashback.EventTracked}, events.names())
	})

	t.Run("unknown offer not found", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, err := svc.Track(ctx, cashback.TrackParams{OfferID: bson.NewObjectID().Hex()})
		assert.ErrorIs(t, err, cashback.ErrOfferNotFound)
	})
}

func TestUpdateOffer(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	offer := createOffer(t, svc, cashback.OfferParams{Rate: 5})

	rate := 7.5
	updated, err := svc.UpdateOffer(ctx, offer.ID.Hex(), cashback.UpdateOfferParams{Rate: &rate})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, updated.Rate, 0.001)

	_, err = svc.UpdateOffer(ctx, "nope", cashback.UpdateOfferParams{})
	assert.ErrorIs(t, err, cashback.ErrInvalidID)
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	track := func(t *testing.T, svc *cashback.Service) cashback.Transaction {
		t.Helper()
		offer := createOffer(t, svc, cashback.OfferParams{})
		tx, err := svc.Track(ctx, cashback.TrackParams{
			OfferID:        offer.ID.Hex(),
			UserEmail:      "user@example.com",
			OrderAmount:    100,
			OrderReference: "ORDER-1",
		})
		require.NoError(t, err)
		return tx
	}

	t.Run("approve sends notification email", func(t *testing.T) {
		svc, _, mailer := newService(t)
		tx := track(t, svc)

		approved, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusApproved, "looks good")
		require.NoError(t, err)
		assert.Equal(t, cashback.StatusApproved, approved.Status)
		assert.Equal(t, "looks good", approved.Note)

		messages := mailer.messages()
		require.Len(t, messages, 1)
		assert.Equal(t, "user@example.com", messages[0].SendTo)
		assert.Equal(t, "cashback-approved", messages[0].Tag)
	})

	t.Run("reject sends no email", func(t *testing.T) {
		svc, _, mailer := newService(t)
		tx := track(t, svc)

		_, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusRejected, "")
		require.NoError(t, err)
		assert.Empty(t, mailer.messages())
	})

	t.Run("approved transaction can be paid", func(t *testing.T) {
		svc, _, _ := newService(t)
		tx := track(t, svc)

		_, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusApproved, "")
		require.NoError(t, err)

		paid, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusPaid, "")
		require.NoError(t, err)
		assert.Equal(t, cashback.StatusPaid, paid.Status)
	})

	t.Run("pending cannot jump to paid", func(t *testing.T) {
		svc, _, _ := newService(t)
		tx := track(t, svc)

		_, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusPaid, "")
		assert.ErrorIs(t, err, cashback.ErrInvalidTransition)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		svc, _, _ := newService(t)
		tx := track(t, svc)

		_, err := svc.Transition(ctx, tx.ID.Hex(), cashback.StatusRejected, "")
		require.NoError(t, err)

		_, err = svc.Transition(ctx, tx.ID.Hex(), cashback.StatusApproved, "")
		assert.ErrorIs(t, err, cashback.ErrInvalidTransition)
	})
}
