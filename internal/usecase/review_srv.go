package usecase

import (
	"context"
	"errors"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, caller *utils.Identity, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetProductReviews(ctx context.Context, productID uuid.UUID, req *request.PaginatedRequest) (*response.ProductReviewsResponse, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error

	// ReviewOwner backs the review ownership guard: the owner is the author.
	ReviewOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, caller *utils.Identity, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	productID, _ := uuid.Parse(req.ProductID)

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product for review", zap.Error(err), zap.String("product_id", req.ProductID))
		return nil, internalError("Error adding review, please try again later")
	}
	if product == nil || product.IsDeleted {
		return nil, newError(ErrNotFound, "Product not found")
	}

	existing, err := s.repo.Review.FindByUserAndProduct(ctx, caller.UserID, productID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, internalError("Error adding review, please try again later")
	}
	if existing != nil {
		return nil, newError(ErrConflict, "You have already reviewed this product")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    caller.UserID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, "You have already reviewed this product")
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", caller.UserID.String()),
			zap.String("product_id", req.ProductID),
		)
		return nil, internalError("Error adding review, please try again later")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", req.ProductID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review, caller.Name)
	return &resp, nil
}

func (s *reviewService) GetProductReviews(ctx context.Context, productID uuid.UUID, req *request.PaginatedRequest) (*response.ProductReviewsResponse, error) {
	limit := req.PerPage()
	offset := req.Offset()

	reviews, err := s.repo.Review.FindByProductID(ctx, productID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get product reviews", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, internalError("Error fetching reviews, please try again later")
	}

	avg, count, err := s.repo.Review.GetProductReviewStats(ctx, productID)
	if err != nil {
		s.log.Error("Failed to get review stats", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, internalError("Error fetching reviews, please try again later")
	}

	names := make(map[uuid.UUID]string)
	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		name, ok := names[review.UserID]
		if !ok {
			if user, err := s.repo.User.FindByID(ctx, review.UserID); err != nil {
				s.log.Warn("Failed to load review author", zap.Error(err), zap.String("user_id", review.UserID.String()))
			} else if user != nil {
				name = user.Name
			}
			names[review.UserID] = name
		}
		items = append(items, response.ReviewToResponse(review, name))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	return &response.ProductReviewsResponse{
		PaginatedResponse: response.NewPaginatedResponse(items, page, limit, count),
		Stats: response.ReviewStats{
			AverageRating: avg,
			ReviewCount:   count,
		},
	}, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, internalError("Error updating review, please try again later")
	}
	if review == nil {
		return nil, newError(ErrNotFound, "Review not found")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, newError(ErrNotFound, "Review not found")
		}
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, internalError("Error updating review, please try again later")
	}

	resp := response.ReviewToResponse(review, "")
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return newError(ErrNotFound, "Review not found")
		}
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return internalError("Error deleting review, please try again later")
	}

	s.log.Info("Review deleted", zap.String("review_id", reviewID.String()))
	return nil
}

func (s *reviewService) ReviewOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil || review == nil {
		return uuid.Nil, false, err
	}
	return review.UserID, true, nil
}
