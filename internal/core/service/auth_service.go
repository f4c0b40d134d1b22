package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

type tokenIssuer interface {
	tokenValidator
	Issue(subject string) (string, domain.TokenClaims, error)
}

// AuthService implements login and logout.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  tokenIssuer
	revoked ports.TokenRevocations
	logger  zerolog.Logger
}

// NewAuthService builds the service. revoked may be nil, in which case
// Logout only validates the token.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens tokenIssuer, revoked ports.TokenRevocations, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, revoked: revoked, logger: logger}
}

// Login verifies the password and issues a token. Unknown users and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if s.revoked == nil || claims.ID == "" {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info().Str("username", claims.Subject).Str("jti", claims.ID).Msg("token revoked")
	return nil
}
