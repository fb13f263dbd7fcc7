package email_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealkit/dealkit/pkg/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Cashback approved",
		BodyHTML: "<p>Your cashback was approved.</p>",
	}

	t.Run("valid params pass", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("bad recipient", func(t *testing.T) {
		p := valid
		p.SendTo = "not-an-email"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidRecipient)
	})

	t.Run("empty subject", func(t *testing.T) {
		p := valid
		p.Subject = ""
		assert.ErrorIs(t, p.Validate(), email.ErrEmptySubject)
	})

	t.Run("empty body", func(t *testing.T) {
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrEmptyBody)
	})
}

func TestNewPostmarkSender(t *testing.T) {
	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@dealkit.example",
		SupportEmail:         "support@dealkit.example",
	}

	t.Run("valid config", func(t *testing.T) {
		sender, err := email.NewPostmarkSender(valid)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})

	t.Run("missing server token", func(t *testing.T) {
		cfg := valid
		cfg.PostmarkServerToken = ""
		_, err := email.NewPostmarkSender(cfg)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("invalid sender email", func(t *testing.T) {
		cfg := valid
		cfg.SenderEmail = "nope"
		_, err := email.NewPostmarkSender(cfg)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}

func TestDevSender(t *testing.T) {
	t.Run("logs instead of sending", func(t *testing.T) {
		var buf bytes.Buffer
		sender := email.NewDevSender(slog.New(slog.NewTextHandler(&buf, nil)))

		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Welcome",
			BodyHTML: "<p>Hi</p>",
			Tag:      "welcome",
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "user@example.com")
		assert.Contains(t, buf.String(), "welcome")
	})

	t.Run("still validates params", func(t *testing.T) {
		sender := email.NewDevSender(slog.New(slog.NewTextHandler(io.Discard, nil)))
		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "bad"})
		assert.ErrorIs(t, err, email.ErrInvalidRecipient)
	})
}
