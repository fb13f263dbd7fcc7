// Package dealkit is the backend for a coupon and cashback consumer platform.
//
// The root package defines the shared request/response vocabulary: the
// ValidationError field-to-messages map produced by the validation layer, the
// HTTPError sentinel type for non-validation failures, and the JSON envelope
// every API response is rendered with.
//
// Domain logic lives under modules/, reusable infrastructure under pkg/, and
// the declarative request validation core under pkg/rules and pkg/schema.
package dealkit
