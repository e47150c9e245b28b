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

type WishlistService interface {
	AddToWishlist(ctx context.Context, caller *utils.Identity, req *request.AddToWishlistRequest) (*response.WishlistItemResponse, error)
	GetWishlist(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.WishlistPage, error)
	UpdateWishlistItem(ctx context.Context, itemID uuid.UUID, req *request.UpdateWishlistItemRequest) (*response.WishlistItemResponse, error)
	RemoveWishlistItem(ctx context.Context, itemID uuid.UUID) error

	WishlistItemOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type wishlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWishlistService(repo *repository.Repository, log *zap.Logger) WishlistService {
	return &wishlistService{
		repo: repo,
		log:  log.With(zap.String("service", "wishlist")),
	}
}

func (s *wishlistService) AddToWishlist(ctx context.Context, caller *utils.Identity, req *request.AddToWishlistRequest) (*response.WishlistItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to wishlist validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	productID, _ := uuid.Parse(req.ProductID)

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product for wishlist", zap.Error(err), zap.String("product_id", req.ProductID))
		return nil, internalError("Error adding product to wishlist, please try again later")
	}
	if product == nil || product.IsDeleted {
		return nil, newError(ErrNotFound, "Product not found")
	}

	now := time.Now()
	item := &entity.WishlistItem{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    caller.UserID,
		ProductID: productID,
		Note:      req.Note,
	}

	if err := s.repo.Wishlist.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, "Product is already in your wishlist")
		}
		s.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("user_id", caller.UserID.String()),
			zap.String("product_id", req.ProductID),
		)
		return nil, internalError("Error adding product to wishlist, please try again later")
	}

	resp := response.WishlistItemToResponse(item, product)
	return &resp, nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.WishlistPage, error) {
	items, err := s.repo.Wishlist.FindByUserID(ctx, userID, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get wishlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Error fetching your wishlist, please try again later")
	}

	total, err := s.repo.Wishlist.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count wishlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Error fetching your wishlist, please try again later")
	}

	products := newProductLoader(s.repo.Product)
	out := make([]response.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		product, err := products.load(ctx, item.ProductID)
		if err != nil {
			s.log.Error("Failed to load wishlist product", zap.Error(err), zap.String("product_id", item.ProductID.String()))
			return nil, internalError("Error fetching your wishlist, please try again later")
		}
		out = append(out, response.WishlistItemToResponse(item, product))
	}

	return &response.WishlistPage{Items: out, Total: total}, nil
}

func (s *wishlistService) UpdateWishlistItem(ctx context.Context, itemID uuid.UUID, req *request.UpdateWishlistItemRequest) (*response.WishlistItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	item, err := s.repo.Wishlist.FindByID(ctx, itemID)
	if err != nil {
		s.log.Error("Failed to find wishlist item", zap.Error(err), zap.String("wishlist_item_id", itemID.String()))
		return nil, internalError("Error updating wishlist item, please try again later")
	}
	if item == nil {
		return nil, newError(ErrNotFound, "Wishlist item not found")
	}

	item.Note = req.Note
	item.UpdatedAt = time.Now()
	if err := s.repo.Wishlist.UpdateNote(ctx, item.ID, item.Note, item.UpdatedAt); err != nil {
		if errors.Is(err, repository.ErrWishlistItemNotFound) {
			return nil, newError(ErrNotFound, "Wishlist item not found")
		}
		s.log.Error("Failed to update wishlist item", zap.Error(err), zap.String("wishlist_item_id", itemID.String()))
		return nil, internalError("Error updating wishlist item, please try again later")
	}

	product, err := s.repo.Product.FindByID(ctx, item.ProductID)
	if err != nil {
		s.log.Warn("Failed to load wishlist product", zap.Error(err), zap.String("product_id", item.ProductID.String()))
	}

	resp := response.WishlistItemToResponse(item, product)
	return &resp, nil
}

func (s *wishlistService) RemoveWishlistItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.repo.Wishlist.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrWishlistItemNotFound) {
			return newError(ErrNotFound, "Wishlist item not found")
		}
		s.log.Error("Failed to delete wishlist item", zap.Error(err), zap.String("wishlist_item_id", itemID.String()))
		return internalError("Error removing wishlist item, please try again later")
	}
	return nil
}

func (s *wishlistService) WishlistItemOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	item, err := s.repo.Wishlist.FindByID(ctx, id)
	if err != nil || item == nil {
		return uuid.Nil, false, err
	}
	return item.UserID, true, nil
}
