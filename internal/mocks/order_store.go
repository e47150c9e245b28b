package mocks

import (
	"context"
	"slices"
	"sync"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

type OrderStore struct {
	mu     sync.Mutex
	orders []*entity.Order
	Err    error
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func cloneOrder(order *entity.Order) *entity.Order {
	clone := *order
	clone.Items = slices.Clone(order.Items)
	return &clone
}

func (s *OrderStore) Create(ctx context.Context, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.orders = append(s.orders, cloneOrder(order))
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.orders {
		if order.ID == id {
			return cloneOrder(order), nil
		}
	}
	return nil, nil
}

// Listings are newest first, which for the store is reverse insertion.
func (s *OrderStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	return out, nil
}

func (s *OrderStore) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.Order
	for i := len(s.orders) - 1 - offset; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, cloneOrder(s.orders[i]))
	}
	return out, nil
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.orders)), nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, updatedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, order := range s.orders {
		if order.ID == id && order.Status == from {
			order.Status = to
			order.UpdatedAt = updatedAt
			return true, nil
		}
	}
	return false, nil
}

var _ repository.OrderRepository = (*OrderStore)(nil)
