package content

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

// Router mounts the blog and review endpoints with their validation
// middlewares.
func Router(svc *Service, registry *rules.Registry) chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateRules(registry, rulesets.Pagination)).
		Get("/blog", handleListArticles(svc))
	r.With(middleware.ValidateRules(registry, rulesets.BlogCreate)).
		Post("/blog", handleCreateArticle(svc))
	r.Get("/blog/{slug}", handleGetArticle(svc))
	r.With(middleware.ValidateRules(registry, rulesets.BlogUpdate)).
		Put("/blog/{slug}", handleUpdateArticle(svc))
	r.Delete("/blog/{slug}", handleDeleteArticle(svc))

	r.With(middleware.ValidateRules(registry, rulesets.ReviewCreate)).
		Post("/reviews", handleCreateReview(svc))
	r.Get("/reviews/{storeId}", handleListReviews(svc))

	return r
}

func handleCreateArticle(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		a, err := svc.CreateArticle(r.Context(), ArticleParams{
			Title:    stringField(body, "title"),
			Content:  stringField(body, "content"),
			CoverURL: stringField(body, "coverUrl"),
			Tags:     stringSlice(body, "tags"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, a, nil)
	}
}

func handleGetArticle(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetArticle(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, a, nil)
	}
}

func handleUpdateArticle(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		a, err := svc.UpdateArticle(r.Context(), chi.URLParam(r, "slug"), UpdateArticleParams{
			Title:    optionalString(body, "title"),
			Content:  optionalString(body, "content"),
			CoverURL: optionalString(body, "coverUrl"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, a, nil)
	}
}

func handleDeleteArticle(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteArticle(r.Context(), chi.URLParam(r, "slug")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListArticles(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r.URL.Query().Get("page"), 1)
		perPage := queryInt(r.URL.Query().Get("perPage"), 20)

		articles, total, err := svc.ListArticles(r.Context(), page, perPage)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, articles, map[string]any{
			"page": page, "perPage": perPage, "total": total,
		})
	}
}

func handleCreateReview(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		review, err := svc.CreateReview(r.Context(), ReviewParams{
			StoreID: stringField(body, "storeId"),
			Rating:  intField(body, "rating"),
			Comment: stringField(body, "comment"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, review, nil)
	}
}

func handleListReviews(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r.URL.Query().Get("page"), 1)
		perPage := queryInt(r.URL.Query().Get("perPage"), 20)

		reviews, total, err := svc.ListReviews(r.Context(), chi.URLParam(r, "storeId"), page, perPage)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, reviews, map[string]any{
			"page": page, "perPage": perPage, "total": total,
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrArticleNotFound):
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

func intField(body map[string]any, key string) int {
	if f, ok := body[key].(float64); ok {
		return int(f)
	}
	return 0
}

func stringSlice(body map[string]any, key string) []string {
	raw, ok := body[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
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
