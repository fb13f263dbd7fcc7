// Package middleware wires the validation engine into the HTTP layer. Each
// middleware buffers request data, runs the configured rule set or schema,
// and answers 422 with the standard error envelope before the handler runs.
package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dealkit/dealkit"
	"github.com/dealkit/dealkit/binder"
	"github.com/dealkit/dealkit/pkg/rules"
	"github.com/dealkit/dealkit/pkg/schema"
)

type contextKey struct{ name string }

var (
	bodyKey    = contextKey{"validated-body"}
	payloadKey = contextKey{"normalized-payload"}
)

// BodyFromContext returns the decoded request body stored by ValidateRules.
func BodyFromContext(ctx context.Context) map[string]any {
	body, _ := ctx.Value(bodyKey).(map[string]any)
	return body
}

// PayloadFromContext returns the normalized payload stored by ValidateSchema.
func PayloadFromContext(ctx context.Context) map[string]any {
	payload, _ := ctx.Value(payloadKey).(map[string]any)
	return payload
}

// ValidateRules runs the named rule set against the request before the
// handler. The decoded body is stored in the request context so handlers do
// not decode twice. An unknown rule-set name is a wiring mistake and panics
// at route-registration time.
func ValidateRules(registry *rules.Registry, name string) func(http.Handler) http.Handler {
	if !registry.Has(name) {
		panic("middleware: unknown rule set " + name)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}
			if r.Method != http.MethodGet && r.Method != http.MethodDelete {
				decoded, err := binder.BindJSONMap(r)
				if err != nil {
					_ = dealkit.JSONError(w, dealkit.ErrBadRequest)
					return
				}
				body = decoded
			}

			outcome, err := registry.Apply(name, rules.Request{
				Body:   body,
				Query:  queryValues(r),
				Params: routeParams(r),
			})
			if err != nil {
				_ = dealkit.JSONError(w, err)
				return
			}

			if !outcome.Valid() {
				verr := dealkit.NewValidationError()
				verr.Merge(outcome.Errors)
				_ = dealkit.JSONError(w, verr)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey, body)))
		})
	}
}

// ValidateSchema validates the body against a whole-payload schema. On
// success the normalized payload, with unknown keys stripped and defaults
// applied, replaces the raw body in the request context.
func ValidateSchema(s *schema.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := binder.BindJSONMap(r)
			if err != nil {
				_ = dealkit.JSONError(w, dealkit.ErrBadRequest)
				return
			}

			normalized, outcome := s.Validate(body)
			if !outcome.Valid() {
				verr := dealkit.NewValidationError()
				verr.Merge(outcome.Errors)
				_ = dealkit.JSONError(w, verr)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), payloadKey, normalized)))
		})
	}
}

// ValidateQuerySchema validates query parameters against a schema. Values
// arrive as strings and rely on the schema's numeric coercion. The
// normalized parameter map is stored in the request context.
func ValidateQuerySchema(s *schema.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			normalized, outcome := s.Validate(queryValues(r))
			if !outcome.Valid() {
				verr := dealkit.NewValidationError()
				verr.Merge(outcome.Errors)
				_ = dealkit.JSONError(w, verr)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), payloadKey, normalized)))
		})
	}
}

// queryValues flattens the query string to the first value per key. Values
// stay strings; numeric coercion belongs to the validation engine.
func queryValues(r *http.Request) map[string]any {
	values := r.URL.Query()
	out := make(map[string]any, len(values))
	for key := range values {
		out[key] = values.Get(key)
	}
	return out
}

// routeParams extracts chi URL parameters into a validation section.
func routeParams(r *http.Request) map[string]any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	out := make(map[string]any, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		out[key] = rctx.URLParams.Values[i]
	}
	return out
}
