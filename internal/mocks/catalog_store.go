package mocks

import (
	"context"
	"sort"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

type CatalogStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.CatalogItem
	Err   error
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{items: make(map[uuid.UUID]*entity.CatalogItem)}
}

func (s *CatalogStore) Create(ctx context.Context, item *entity.CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.items {
		if existing.Name == item.Name {
			return repository.ErrDuplicateKey
		}
	}
	clone := *item
	s.items[item.ID] = &clone
	return nil
}

func (s *CatalogStore) FindAll(ctx context.Context) ([]*entity.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*entity.CatalogItem, 0, len(s.items))
	for _, item := range s.items {
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *CatalogStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if item, ok := s.items[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, nil
}

var _ repository.CatalogRepository = (*CatalogStore)(nil)
