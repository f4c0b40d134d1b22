package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

type tokenValidator interface {
	Validate(token string) (domain.TokenClaims, error)
}

// IdentityResolver maps a bearer token to the current user record. The
// admin flag always comes from the store, never from the token.
type IdentityResolver struct {
	tokens  tokenValidator
	users   ports.UserRepository
	revoked ports.TokenRevocations
	logger  zerolog.Logger
}

// NewIdentityResolver builds a resolver. revoked may be nil when logout
// revocation is disabled.
func NewIdentityResolver(tokens tokenValidator, users ports.UserRepository, revoked ports.TokenRevocations, logger zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users, revoked: revoked, logger: logger}
}

var errUnauthenticated = domain.NewError(domain.ErrUnauthenticated, "could not validate credentials")

func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := r.tokens.Validate(token)
	if err != nil || claims.Subject == "" {
		return nil, errUnauthenticated
	}

	if r.revoked != nil && claims.ID != "" {
		revoked, err := r.revoked.IsRevoked(ctx, claims.ID)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Str("jti", claims.ID).Msg("revocation lookup failed, accepting token")
		case revoked:
			return nil, errUnauthenticated
		}
	}

	user, err := r.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error().Err(err).Str("subject", claims.Subject).Msg("identity lookup failed")
		}
		return nil, errUnauthenticated
	}
	return user, nil
}
