package content

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrSlugExists      = errors.New("article slug already exists")
	ErrInvalidID       = errors.New("invalid id")
)
