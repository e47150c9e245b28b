package mocks

import (
	"context"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

type AddressStore struct {
	mu        sync.Mutex
	addresses []*entity.Address
	Err       error
}

func NewAddressStore() *AddressStore {
	return &AddressStore{}
}

func (s *AddressStore) Create(ctx context.Context, address *entity.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	clone := *address
	s.addresses = append(s.addresses, &clone)
	return nil
}

func (s *AddressStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, address := range s.addresses {
		if address.ID == id {
			clone := *address
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *AddressStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.Address
	for _, address := range s.addresses {
		if address.UserID == userID {
			clone := *address
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *AddressStore) Update(ctx context.Context, address *entity.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.addresses {
		if existing.ID == address.ID {
			existing.AddressDetails = address.AddressDetails
			existing.UpdatedAt = address.UpdatedAt
			return nil
		}
	}
	return repository.ErrAddressNotFound
}

func (s *AddressStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, address := range s.addresses {
		if address.ID == id {
			s.addresses = append(s.addresses[:i], s.addresses[i+1:]...)
			return nil
		}
	}
	return repository.ErrAddressNotFound
}

var _ repository.AddressRepository = (*AddressStore)(nil)
