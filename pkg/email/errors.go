package email

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid email configuration")
	ErrInvalidRecipient = errors.New("recipient must be a valid email address")
	ErrEmptySubject     = errors.New("email subject must not be empty")
	ErrEmptyBody        = errors.New("email body must not be empty")
	ErrFailedToSend     = errors.New("failed to send email")
)
