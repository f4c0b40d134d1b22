package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// Register creates an account. Granting admin requires an admin caller.
func (s *UserService) Register(ctx context.Context, caller *domain.User, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewError(domain.ErrInvalid, "username and password are required")
	}
	if in.IsAdmin {
		if err := RequireAdmin(caller); err != nil {
			return nil, err
		}
	}

	exists, err := s.repo.Exists(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: in.Username, PasswordHash: hash, IsAdmin: in.IsAdmin}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Bool("is_admin", user.IsAdmin).Msg("user registered")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, caller *domain.User, username string) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Str("deleted_by", caller.Username).Msg("user deleted")
	return nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.repo.Exists(ctx, username)
	if err != nil || exists {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &domain.User{Username: username, PasswordHash: hash, IsAdmin: true}); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("bootstrap admin created")
	return nil
}
