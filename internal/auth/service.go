package auth

import (
	"context"
	"errors"
	"strings"

	"home-budget/internal/models"
	"home-budget/internal/repository"
)

// ErrUnauthorized covers every failed token resolution: malformed or
// expired tokens and tokens whose subject no longer exists. Keeping the
// failure paths indistinguishable avoids leaking which check failed.
var ErrUnauthorized = errors.New("could not validate credentials")

// NormalizeEmail canonicalizes an email for storage and lookup. Registration
// and login must agree on this, or a mixed-case address could never log in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Service turns raw credentials or bearer tokens into resolved users.
type Service struct {
	users  *repository.UserRepository
	tokens *TokenIssuer
}

func NewService(users *repository.UserRepository, tokens *TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Tokens exposes the issuer, for login handlers that mint tokens.
func (s *Service) Tokens() *TokenIssuer { return s.tokens }

// Authenticate checks an email/password pair. It fails closed: a missing
// user or a wrong password both return (nil, false) and never an error.
// The email is normalized the same way registration stores it, so the
// string typed at login matches regardless of case.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, bool) {
	user, err := s.users.ByEmail(ctx, NormalizeEmail(email))
	if err != nil || user == nil {
		return nil, false
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, false
	}
	return user, true
}

// ResolveCurrentUser verifies a bearer token and loads the user named by
// its subject claim. All failure modes return ErrUnauthorized.
func (s *Service) ResolveCurrentUser(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.ByEmail(ctx, claims.Subject)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// RequireActive gates a resolved user on the active flag. Today every
// resolved user passes; the flag exists so deactivation can be enforced
// here without touching callers.
func (s *Service) RequireActive(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
