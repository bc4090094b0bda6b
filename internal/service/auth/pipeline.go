package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amity-dating/amity/internal/db"
	svcErr "github.com/amity-dating/amity/internal/errors"
)

// Roles. Exactly one is granted per authentication.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// AuthAttempt carries one raw login submission. Never persisted.
type AuthAttempt struct {
	Email       string
	Password    string
	CaptchaID   int64
	CaptchaText string
}

// Identity is the terminal value handed to session management.
type Identity struct {
	Subject    string
	Credential string
	Roles      []string
}

// CaptchaStore is the single-use challenge collaborator. ConsumeCaptcha must
// delete the challenge as part of the lookup so a challenge id can succeed at
// most once, even under concurrent attempts.
type CaptchaStore interface {
	ConsumeCaptcha(ctx context.Context, id int64) (text string, found bool, err error)
}

// UserLookup resolves a user by normalized email; absent users are (nil, nil).
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*db.User, error)
}

// CredentialMatcher compares a plaintext password against a stored hash.
type CredentialMatcher interface {
	Matches(plain, hashed string) bool
}

// Pipeline runs challenge validation, credential validation and role
// assignment in that order. The ordering is load-bearing: a wrong captcha must
// fail before any credential state is consulted, and every password guess
// burns a challenge.
type Pipeline struct {
	users    UserLookup
	captchas CaptchaStore
	matcher  CredentialMatcher
	log      *slog.Logger
}

// NewPipeline wires the pipeline with its collaborators.
func NewPipeline(users UserLookup, captchas CaptchaStore, matcher CredentialMatcher, log *slog.Logger) *Pipeline {
	return &Pipeline{
		users:    users,
		captchas: captchas,
		matcher:  matcher,
		log:      log,
	}
}

// Authenticate validates one attempt end to end. It either returns a complete
// Identity or exactly one failure kind from the internal/errors taxonomy.
func (p *Pipeline) Authenticate(ctx context.Context, attempt AuthAttempt) (*Identity, error) {
	if err := p.validateChallenge(ctx, attempt.CaptchaID, attempt.CaptchaText); err != nil {
		return nil, err
	}

	user, err := p.validateCredentials(ctx, attempt.Email, attempt.Password)
	if err != nil {
		return nil, err
	}

	role := RoleUser
	if user.Admin {
		role = RoleAdmin
	}

	return &Identity{
		Subject:    user.Email,
		Credential: attempt.Password,
		Roles:      []string{role},
	}, nil
}

func (p *Pipeline) validateChallenge(ctx context.Context, id int64, answer string) error {
	// consuming deletes the challenge even when the answer is wrong
	text, found, err := p.captchas.ConsumeCaptcha(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		p.log.Debug("challenge unknown or already used", "captcha_id", id)
		return svcErr.ErrInvalidChallenge
	}

	if !strings.EqualFold(text, answer) {
		p.log.Debug("challenge answer mismatch", "captcha_id", id)
		return svcErr.ErrChallengeMismatch
	}
	return nil
}

func (p *Pipeline) validateCredentials(ctx context.Context, email, password string) (*db.User, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, svcErr.ErrUnknownUser
	}

	if user.Disabled {
		return nil, svcErr.ErrAccountDisabled
	}

	if password == "" {
		return nil, svcErr.ErrEmptyPassword
	}

	if !p.matcher.Matches(password, user.PasswordHash) {
		return nil, svcErr.ErrCredentialMismatch
	}

	if !user.Confirmed && !user.Admin {
		return nil, svcErr.ErrUnconfirmedAccount
	}

	return user, nil
}
