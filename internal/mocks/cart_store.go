package mocks

import (
	"context"
	"sync"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

// CartStore keeps insertion order so listings are stable when timestamps tie.
type CartStore struct {
	mu    sync.Mutex
	items []*entity.CartItem
	Err   error
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

func (s *CartStore) Create(ctx context.Context, item *entity.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return repository.ErrDuplicateKey
		}
	}
	clone := *item
	s.items = append(s.items, &clone)
	return nil
}

func (s *CartStore) find(match func(*entity.CartItem) bool) (*entity.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.items {
		if match(item) {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *CartStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	return s.find(func(item *entity.CartItem) bool { return item.ID == id })
}

func (s *CartStore) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	return s.find(func(item *entity.CartItem) bool {
		return item.UserID == userID && item.ProductID == productID
	})
}

func (s *CartStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *CartStore) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, item := range s.items {
		if item.ID == id {
			item.Quantity = quantity
			item.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (s *CartStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func (s *CartStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	kept := s.items[:0]
	var removed int64
	for _, item := range s.items {
		if item.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed, nil
}

var _ repository.CartRepository = (*CartStore)(nil)
