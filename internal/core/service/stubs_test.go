package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	finds map[string]int
	// afterFind runs after every successful lookup with the lookup count
	// for that username. Tests use it to change a user between reads.
	afterFind func(username string, n int, users map[string]domain.User)
	findErr   error
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]domain.User), finds: make(map[string]int)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	r.users[user.Username] = *user
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.finds[username]++
	if r.afterFind != nil {
		r.afterFind(username, r.finds[username], r.users)
	}
	return &u, nil
}

func (r *stubUserRepo) Exists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

type stubRevocations struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (r *stubRevocations) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = expiresAt
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[id]
	return ok, nil
}

// plainHasher keeps tests fast; bcrypt is covered by the security package.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

var errStorage = errors.New("storage unavailable")
