package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealkit/dealkit"
	"github.com/dealkit/dealkit/middleware"
	"github.com/dealkit/dealkit/pkg/rules"
	"github.com/dealkit/dealkit/pkg/schema"
	"github.com/dealkit/dealkit/rulesets"
)

// Router mounts the account endpoints. Registration and login run token
// rule sets; the profile update runs the whole-payload schema so the stored
// document only ever contains normalized fields.
func Router(svc *Service, registry *rules.Registry, profileSchema *schema.Schema) chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateRules(registry, rulesets.UserRegister)).
		Post("/register", handleRegister(svc))
	r.With(middleware.ValidateRules(registry, rulesets.UserLogin)).
		Post("/login", handleLogin(svc))
	r.Get("/{id}", handleGet(svc))
	r.With(middleware.ValidateSchema(profileSchema)).
		Put("/{id}/profile", handleUpdateProfile(svc))

	return r
}

func handleRegister(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		u, err := svc.Register(r.Context(), RegisterParams{
			Name:     stringField(body, "name"),
			Email:    stringField(body, "email"),
			Password: stringField(body, "password"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusCreated, u, nil)
	}
}

func handleLogin(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := middleware.BodyFromContext(r.Context())

		u, err := svc.Login(r.Context(), stringField(body, "email"), stringField(body, "password"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, u, nil)
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, u, nil)
	}
}

func handleUpdateProfile(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := middleware.PayloadFromContext(r.Context())

		u, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), payload)
		if err != nil {
			writeError(w, err)
			return
		}
		_ = dealkit.JSON(w, http.StatusOK, u, nil)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		_ = dealkit.JSONError(w, dealkit.ErrNotFound)
	case errors.Is(err, ErrEmailExists):
		_ = dealkit.JSONError(w, dealkit.ErrConflict)
	case errors.Is(err, ErrInvalidCredentials):
		_ = dealkit.JSONError(w, dealkit.ErrUnauthorized)
	case errors.Is(err, ErrWeakPassword):
		verr := dealkit.NewValidationError()
		verr.Add("password", "Password must mix at least two of: lowercase, uppercase, digits, symbols")
		_ = dealkit.JSONError(w, verr)
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
