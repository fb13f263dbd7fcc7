package coupon

import "errors"

var (
	ErrNotFound   = errors.New("coupon not found")
	ErrCodeExists = errors.New("coupon code already exists")
	ErrExpired    = errors.New("coupon has expired")
	ErrInvalidID  = errors.New("invalid coupon id")
)
