// Package memory provides process-local repositories used by tests and by
// DB_DRIVER=memory for local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

// Store holds users and categories.
type Store struct {
	mu sync.RWMutex

	users          map[string]domain.User
	categories     map[int64]domain.Category
	nextCategoryID int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		categories: make(map[int64]domain.Category),
	}
}

// Users returns the store as a ports.UserRepository.
func (s *Store) Users() ports.UserRepository { return userRepo{s} }

// Categories returns the store as a ports.CategoryRepository.
func (s *Store) Categories() ports.CategoryRepository { return categoryRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.s.users[user.Username] = *user
	return nil
}

func (r userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) Exists(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.users[username]
	return ok, nil
}

func (r userRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r userRepo) Delete(_ context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, username)
	return nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return domain.ErrCategoryExists
		}
	}
	r.s.nextCategoryID++
	category.ID = r.s.nextCategoryID
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.s.categories, id)
	return nil
}
