package qr

import "errors"

var (
	ErrEmptyContent     = errors.New("qr content must not be empty")
	ErrFailedToGenerate = errors.New("failed to generate qr code")
)
