package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// A nil error yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// EventType records an analytics event type under the key "event_type".
func EventType(t string) slog.Attr {
	return slog.String("event_type", t)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// CouponID records the coupon identifier under the key "coupon_id".
func CouponID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("coupon_id", id)
}

// StoreID records the store identifier under the key "store_id".
func StoreID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("store_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// RetryCount records the retry count under the key "retry_count".
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
