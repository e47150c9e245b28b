package mocks

import (
	"context"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

// OTPStore is an in-memory repository.OTPRepository.
type OTPStore struct {
	mu   sync.Mutex
	otps []*entity.OTP
	Err  error
}

func NewOTPStore() *OTPStore {
	return &OTPStore{}
}

// ForUser returns every stored code of the user.
func (s *OTPStore) ForUser(userID uuid.UUID) []*entity.OTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.OTP
	for _, otp := range s.otps {
		if otp.UserID == userID {
			clone := *otp
			out = append(out, &clone)
		}
	}
	return out
}

func (s *OTPStore) Create(ctx context.Context, otp *entity.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	clone := *otp
	s.otps = append(s.otps, &clone)
	return nil
}

func (s *OTPStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.OTP, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	codes := s.ForUser(userID)
	if len(codes) == 0 {
		return nil, nil
	}
	newest := codes[0]
	for _, otp := range codes[1:] {
		if otp.CreatedAt.After(newest.CreatedAt) {
			newest = otp
		}
	}
	return newest, nil
}

func (s *OTPStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.otps[:0]
	for _, otp := range s.otps {
		if otp.ID != id {
			kept = append(kept, otp)
		}
	}
	s.otps = kept
	return nil
}

func (s *OTPStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var deleted int64
	kept := s.otps[:0]
	for _, otp := range s.otps {
		if otp.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, otp)
	}
	s.otps = kept
	return deleted, nil
}

// ResetTokenStore is an in-memory repository.ResetTokenRepository.
type ResetTokenStore struct {
	mu     sync.Mutex
	tokens []*entity.PasswordResetToken
	Err    error
}

func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{}
}

func (s *ResetTokenStore) ForUser(userID uuid.UUID) []*entity.PasswordResetToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.PasswordResetToken
	for _, token := range s.tokens {
		if token.UserID == userID {
			clone := *token
			out = append(out, &clone)
		}
	}
	return out
}

func (s *ResetTokenStore) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	clone := *token
	s.tokens = append(s.tokens, &clone)
	return nil
}

func (s *ResetTokenStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PasswordResetToken, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	tokens := s.ForUser(userID)
	if len(tokens) == 0 {
		return nil, nil
	}
	newest := tokens[0]
	for _, token := range tokens[1:] {
		if token.CreatedAt.After(newest.CreatedAt) {
			newest = token
		}
	}
	return newest, nil
}

func (s *ResetTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.tokens[:0]
	for _, token := range s.tokens {
		if token.ID != id {
			kept = append(kept, token)
		}
	}
	s.tokens = kept
	return nil
}

func (s *ResetTokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var deleted int64
	kept := s.tokens[:0]
	for _, token := range s.tokens {
		if token.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, token)
	}
	s.tokens = kept
	return deleted, nil
}

var (
	_ repository.OTPRepository        = (*OTPStore)(nil)
	_ repository.ResetTokenRepository = (*ResetTokenStore)(nil)
)
