package store

import "errors"

var (
	ErrNotFound   = errors.New("store not found")
	ErrSlugExists = errors.New("store slug already exists")
	ErrInvalidID  = errors.New("invalid store id")
)
