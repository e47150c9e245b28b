package mocks

import (
	"context"
	"sync"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

type WishlistStore struct {
	mu    sync.Mutex
	items []*entity.WishlistItem
	Err   error
}

func NewWishlistStore() *WishlistStore {
	return &WishlistStore{}
}

func (s *WishlistStore) Create(ctx context.Context, item *entity.WishlistItem) error {
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

func (s *WishlistStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.items {
		if item.ID == id {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

// FindByUserID lists newest first, which for the store is reverse insertion.
func (s *WishlistStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	matched := s.forUser(userID)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *WishlistStore) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.forUser(userID))), nil
}

func (s *WishlistStore) UpdateNote(ctx context.Context, id uuid.UUID, note *string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, item := range s.items {
		if item.ID == id {
			item.Note = note
			item.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrWishlistItemNotFound
}

func (s *WishlistStore) Delete(ctx context.Context, id uuid.UUID) error {
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
	return repository.ErrWishlistItemNotFound
}

func (s *WishlistStore) forUser(userID uuid.UUID) []*entity.WishlistItem {
	var out []*entity.WishlistItem
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].UserID == userID {
			clone := *s.items[i]
			out = append(out, &clone)
		}
	}
	return out
}

var _ repository.WishlistRepository = (*WishlistStore)(nil)
