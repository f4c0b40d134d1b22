package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

// ContentStore keeps one content kind in memory. Update works on a copy and
// commits it only when the mutation succeeds.
type ContentStore[T any, P interface {
	*T
	domain.Content
}] struct {
	mu       sync.Mutex
	items    map[int64]T
	nextID   int64
	notFound error
}

func NewContentStore[T any, P interface {
	*T
	domain.Content
}](notFound error) *ContentStore[T, P] {
	return &ContentStore[T, P]{items: make(map[int64]T), notFound: notFound}
}

func (s *ContentStore[T, P]) Create(_ context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := P(item).ContentID()
	if id == 0 {
		s.nextID++
		id = s.nextID
		P(item).SetContentID(id)
	} else if _, exists := s.items[id]; exists {
		return domain.ErrContentExists
	}
	if id > s.nextID {
		s.nextID = id
	}
	s.items[id] = *item
	return nil
}

func (s *ContentStore[T, P]) FindByID(_ context.Context, id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, s.notFound
	}
	return &item, nil
}

func (s *ContentStore[T, P]) List(_ context.Context, publishedOnly bool) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if publishedOnly && !P(&item).Workflow().IsPublished {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return P(&out[i]).ContentID() < P(&out[j]).ContentID()
	})
	return out, nil
}

func (s *ContentStore[T, P]) Update(ctx context.Context, id int64, fn func(ctx context.Context, item *T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, s.notFound
	}

	working := current
	if err := fn(ctx, &working); err != nil {
		return nil, err
	}
	P(&working).SetContentID(id)
	s.items[id] = working

	out := working
	return &out, nil
}

func (s *ContentStore[T, P]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return s.notFound
	}
	delete(s.items, id)
	return nil
}
