package cashback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dealkit/dealkit"
	"github.com/dealkit/dealkit/middleware"
	"github.com/dealkit/dealkit/pkg/rules"
	"github.com/dealkit/dealkit/rulesets"
)

// Router mounts the cashback endpoints with their validation middlewares.
func Router(svc *Service, registry *rules.Registry) chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateRules(registry, rulesets.Pagination)).
		Get("/offers", handleListOffers(svc))
	r.With(middleware.ValidateRules(registry, rulesets.CashbackCreate)).
		Post("/offers", handleCreateOffer(svc))
	r.Get("/offers/{id}", handleGetOffer(svc))
	r.With(middleware.ValidateRules(registry, rulesets.CashbackUpdate)).
		Put("/offers/{id}", handleUpdateOffer(svc))

	r.With(middleware.ValidateRules(registry, rulesets.Pagination)).
		Get("/transactions", handleListTransactions(svc))
	r.With(middleware.ValidateRules(registry, rulesets.TransactionCreate)).
		Post("/transactions", handleTrack(svc))
	r.With(middleware.ValidateRules(registry, rulesets.TransactionTransition)).
		Patch("/transactions/{id}", handleTransition(svc))

	return r
}

func handleCreateOffer(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		o, err := svc.CreateOffer(r.Context(), OfferParams{
			Title:       stringField(body, "title"),
			Rate:        floatField(body, "rate"),
			StoreID:     stringField(body, "storeId"),
			Category:    stringField(body, "category"),
			MaxCashback: floatField(body, "maxCashback"),
			ExpiresAt:   stringField(body, "expiresAt"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, o, nil)
	}
}

func handleUpdateOffer(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		o, err := svc.UpdateOffer(r.Context(), chi.URLParam(r, "id"), UpdateOfferParams{
			Title:       optionalString(body, "title"),
			Rate:        optionalFloat(body, "rate"),
			Category:    optionalString(body, "category"),
			MaxCashback: optionalFloat(body, "maxCashback"),
			ExpiresAt:   optionalString(body, "expiresAt"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, o, nil)
	}
}

func handleGetOffer(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetOffer(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, o, nil)
	}
}

func handleListOffers(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r.URL.Query().Get("page"), 1)
		perPage := queryInt(r.URL.Query().Get("perPage"), 20)

		offers, total, err := svc.ListOffers(r.Context(), page, perPage)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, offers, map[string]any{
			"page": page, "perPage": perPage, "total": total,
		})
	}
}

func handleTrack(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		tx, err := svc.Track(r.Context(), TrackParams{
			OfferID:        stringField(body, "offerId"),
			UserEmail:      stringField(body, "userEmail"),
			OrderAmount:    floatField(body, "orderAmount"),
			OrderReference: stringField(body, "orderReference"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, tx, nil)
	}
}

func handleTransition(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		tx, err := svc.Transition(r.Context(),
			chi.URLParam(r, "id"),
			Status(stringField(body, "status")),
			stringField(body, "note"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, tx, nil)
	}
}

func handleListTransactions(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page := queryInt(query.Get("page"), 1)
		perPage := queryInt(query.Get("perPage"), 20)

		txs, total, err := svc.ListTransactions(r.Context(), Status(query.Get("status")), page, perPage)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, txs, map[string]any{
			"page": page, "perPage": perPage, "total": total,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOfferNotFound), errors.Is(err, ErrTransactionNotFound):
		_ = dealkit.JSONError(w, dealkit.ErrNotFound)
	case errors.Is(err, ErrInvalidTransition):
		_ = dealkit.JSONError(w, dealkit.ErrConflict)
	case errors.Is(err, ErrOfferExpired):
		_ = dealkit.JSONError(w, dealkit.NewHTTPError(http.StatusGone, "offer_expired"))
	case errors.Is(err, ErrInvalidID):
		_ = dealkit.JSONError(w, dealkit.ErrBadRequest)
	default:
		_ = dealkit.JSONError(w, err)
	}
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func floatField(body map[string]any, key string) float64 {
	f, _ := body[key].(float64)
	return f
}

func optionalString(body map[string]any, key string) *string {
	if s, ok := body[key].(string); ok {
		return &s
	}
	return nil
}

func optionalFloat(body map[string]any, key string) *float64 {
	if f, ok := body[key].(float64); ok {
		return &f
	}
	return nil
}

func queryInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
