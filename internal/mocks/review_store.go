package mocks

import (
	"context"
	"sort"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

type ReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
	Err     error
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (s *ReviewStore) Create(ctx context.Context, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return repository.ErrDuplicateKey
		}
	}
	clone := *review
	s.reviews[review.ID] = &clone
	return nil
}

func (s *ReviewStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if review, ok := s.reviews[id]; ok {
		clone := *review
		return &clone, nil
	}
	return nil, nil
}

func (s *ReviewStore) FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	matched := s.forProduct(productID)
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *ReviewStore) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, review := range s.reviews {
		if review.UserID == userID && review.ProductID == productID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *ReviewStore) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.forProduct(productID))), nil
}

func (s *ReviewStore) Update(ctx context.Context, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.reviews[review.ID]
	if !ok {
		return repository.ErrReviewNotFound
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	existing.UpdatedAt = review.UpdatedAt
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *ReviewStore) GetProductReviewStats(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	reviews := s.forProduct(productID)
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews)), int64(len(reviews)), nil
}

func (s *ReviewStore) forProduct(productID uuid.UUID) []*entity.Review {
	var out []*entity.Review
	for _, review := range s.reviews {
		if review.ProductID == productID {
			clone := *review
			out = append(out, &clone)
		}
	}
	return out
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)
