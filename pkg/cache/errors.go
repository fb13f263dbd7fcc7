package cache

import "errors"

var (
	ErrCacheMiss     = errors.New("cache miss")
	ErrFailedToStore = errors.New("failed to store value in cache")
	ErrFailedToLoad  = errors.New("failed to load value from cache")
)
