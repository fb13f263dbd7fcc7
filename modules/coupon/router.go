package coupon

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

// Router mounts the coupon endpoints with their validation middlewares.
func Router(svc *Service, registry *rules.Registry) chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateRules(registry, rulesets.CouponList)).
		Get("/", handleList(svc))
	r.With(middleware.ValidateRules(registry, rulesets.CouponCreate)).
		Post("/", handleCreate(svc))
	r.Get("/{id}", handleGet(svc))
	r.With(middleware.ValidateRules(registry, rulesets.CouponUpdate)).
		Put("/{id}", handleUpdate(svc))
	r.Delete("/{id}", handleDelete(svc))
	r.With(middleware.ValidateRules(registry, rulesets.CouponRedeem)).
		Post("/redeem/{code}", handleRedeem(svc))
	r.Get("/qr/{code}", handleQRCode(svc))

	return r
}

func handleCreate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		c, err := svc.Create(r.Context(), CreateParams{
			Title:        stringField(body, "title"),
			Code:         stringField(body, "code"),
			Discount:     floatField(body, "discount"),
			DiscountType: stringField(body, "discountType"),
			StoreID:      stringField(body, "storeId"),
			Category:     stringField(body, "category"),
			Terms:        stringField(body, "terms"),
			ExpiresAt:    stringField(body, "expiresAt"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, c, nil)
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, c, nil)
	}
}

func handleUpdate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		c, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateParams{
			Title:        optionalString(body, "title"),
			Discount:     optionalFloat(body, "discount"),
			DiscountType: optionalString(body, "discountType"),
			Category:     optionalString(body, "category"),
			ExpiresAt:    optionalString(body, "expiresAt"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, c, nil)
	}
}

func handleDelete(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleList(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		params := ListParams{
			Page:     queryInt(query.Get("page"), 1),
			PerPage:  queryInt(query.Get("perPage"), 20),
			Category: query.Get("category"),
			StoreID:  query.Get("storeId"),
		}

		coupons, total, err := svc.List(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, coupons, map[string]any{
			"page":    params.Page,
			"perPage": params.PerPage,
			"total":   total,
		})
	}
}

func handleRedeem(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redemption, err := svc.Redeem(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, redemption, nil)
	}
}

func handleQRCode(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		size := int(queryInt(r.URL.Query().Get("size"), 256))

		png, err := svc.QRCodePNG(r.Context(), chi.URLParam(r, "code"), size)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		_ = dealkit.JSONError(w, dealkit.ErrNotFound)
	case errors.Is(err, ErrCodeExists):
		_ = dealkit.JSONError(w, dealkit.ErrConflict)
	case errors.Is(err, ErrExpired):
		_ = dealkit.JSONError(w, dealkit.NewHTTPError(http.StatusGone, "coupon_expired"))
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
