// Package email sends transactional mail for the platform: cashback
// approval notices and account welcome messages. Postmark backs production
// delivery; a logging sender covers local development.
package email

import (
	"context"

	"github.com/dealkit/dealkit/pkg/validator"
)

// Sender is the provider-agnostic delivery contract.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outbound message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the parameters before handing them to a provider.
func (p SendEmailParams) Validate() error {
	switch {
	case !validator.IsEmail(p.SendTo):
		return ErrInvalidRecipient
	case p.Subject == "":
		return ErrEmptySubject
	case p.BodyHTML == "":
		return ErrEmptyBody
	}
	return nil
}

// Config holds delivery configuration. The Postmark tokens are optional so
// development environments can run with the dev sender only.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
