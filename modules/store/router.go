package store

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

// Router mounts the store endpoints with their validation middlewares.
func Router(svc *Service, registry *rules.Registry) chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateRules(registry, rulesets.Pagination)).
		Get("/", handleList(svc))
	r.With(middleware.ValidateRules(registry, rulesets.StoreCreate)).
		Post("/", handleCreate(svc))
	r.Get("/{slug}", handleGetBySlug(svc))
	r.With(middleware.ValidateRules(registry, rulesets.StoreUpdate)).
		Put("/{id}", handleUpdate(svc))
	r.Delete("/{id}", handleDelete(svc))

	return r
}

func handleCreate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		st, err := svc.Create(r.Context(), CreateParams{
			Name:        stringField(body, "name"),
			Website:     stringField(body, "website"),
			Description: stringField(body, "description"),
			Category:    stringField(body, "category"),
			LogoURL:     stringField(body, "logoUrl"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, st, nil)
	}
}

func handleGetBySlug(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, st, nil)
	}
}

func handleUpdate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		st, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateParams{
			Name:        optionalString(body, "name"),
			Website:     optionalString(body, "website"),
			Description: optionalString(body, "description"),
			Category:    optionalString(body, "category"),
			LogoURL:     optionalString(body, "logoUrl"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, st, nil)
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
		}

		stores, total, err := svc.List(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, stores, map[string]any{
			"page":    params.Page,
			"perPage": params.PerPage,
			"total":   total,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		_ = dealkit.JSONError(w, dealkit.ErrNotFound)
	case errors.Is(err, ErrSlugExists):
		_ = dealkit.JSONError(w, dealkit.ErrConflict)
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

func optionalString(body map[string]any, key string) *string {
	if s, ok := body[key].(string); ok {
		return &s
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
