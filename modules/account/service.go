package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealkit/dealkit/pkg/email"
	"github.com/dealkit/dealkit/pkg/validator"
)

// Service implements account operations.
type Service struct {
	repo        Repository
	mailer      email.Sender
	log         *slog.Logger
	passwordCfg validator.PasswordConfig
	now         func() time.Time
}

// NewService wires an account service with the default password policy.
func NewService(repo Repository, mailer email.Sender, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		mailer:      mailer,
		log:         log,
		passwordCfg: validator.DefaultPasswordConfig,
		now:         time.Now,
	}
}

// RegisterParams carries a validated registration payload.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account with a bcrypt password hash and sends a
// welcome email. Password strength is enforced here, beyond the rule set's
// length checks.
func (s *Service) Register(ctx context.Context, params RegisterParams) (User, error) {
	rule := validator.StrongPassword("password", params.Password, s.passwordCfg)
	if !rule.Check() {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	u := User{
		ID:           bson.NewObjectID(),
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash: hash,
		Currency:     "USD",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		return User{}, err
	}

	s.sendWelcome(ctx, u)
	return u, nil
}

// Login verifies credentials and returns the account. Lookup and hash
// mismatches collapse into one error so callers cannot probe for registered
// emails.
func (s *Service) Login(ctx context.Context, loginEmail, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(loginEmail)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Get loads an account by hex id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}
	return s.repo.FindByID(ctx, oid)
}

// UpdateProfile applies a schema-normalized profile payload. The payload has
// already been validated, defaulted and stripped of unknown keys.
func (s *Service) UpdateProfile(ctx context.Context, id string, payload map[string]any) (User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}

	set := bson.M{"updated_at": s.now().UTC()}
	for key, field := range map[string]string{
		"name":       "name",
		"email":      "email",
		"currency":   "currency",
		"newsletter": "newsletter",
		"address":    "address",
		"interests":  "interests",
	} {
		if value, ok := payload[key]; ok {
			set[field] = value
		}
	}

	return s.repo.UpdateProfile(ctx, oid, set)
}

func (s *Service) sendWelcome(ctx context.Context, u User) {
	err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   u.Email,
		Subject:  "Welcome to DealKit",
		BodyHTML: "<p>Welcome, " + u.Name + "! Start saving with coupons and cashback offers today.</p>",
		Tag:      "welcome",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to send welcome email",
			slog.String("user_id", u.ID.Hex()),
			slog.Any("error", err))
	}
}
