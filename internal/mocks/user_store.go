package mocks

import (
	"context"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

// UserStore is an in-memory repository.UserRepository. A non-nil Err is
// returned by every call.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	Err   error
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]*entity.User)}
}

// Put stores a copy of user without going through Create.
func (s *UserStore) Put(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
}

// Get returns the stored record, nil when absent.
func (s *UserStore) Get(id uuid.UUID) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		clone := *user
		return &clone
	}
	return nil
}

func (s *UserStore) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Get(id), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *UserStore) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.User
	for _, user := range s.users {
		if user.Role == role {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *UserStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return s.update(id, func(u *entity.User) { u.IsVerified = true })
}

func (s *UserStore) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	return s.update(id, func(u *entity.User) { u.IsApproved = approved })
}

func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.update(id, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (s *UserStore) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return s.update(id, func(u *entity.User) { u.Name = name })
}

func (s *UserStore) update(id uuid.UUID, apply func(*entity.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	apply(user)
	return nil
}

var _ repository.UserRepository = (*UserStore)(nil)
