package binder

import "errors"

var (
	ErrEmptyBody         = errors.New("request body is empty")
	ErrInvalidJSON       = errors.New("request body is not valid JSON")
	ErrInvalidQueryParam = errors.New("invalid query parameter")
	ErrNotStructPointer  = errors.New("bind target must be a non-nil struct pointer")
)
