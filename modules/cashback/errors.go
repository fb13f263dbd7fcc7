package cashback

import "errors"

var (
	ErrOfferNotFound       = errors.New("cashback offer not found")
	ErrTransactionNotFound = errors.New("cashback transaction not found")
	ErrOfferExpired        = errors.New("cashback offer has expired")
	ErrInvalidTransition   = errors.New("invalid transaction status transition")
	ErrInvalidID           = errors.New("invalid id")
)
