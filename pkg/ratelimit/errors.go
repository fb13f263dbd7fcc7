package ratelimit

import "errors"

var ErrStoreUnavailable = errors.New("rate limit store unavailable")
