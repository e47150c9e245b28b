package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	AddToCart(ctx context.Context, caller *utils.Identity, req *request.AddToCartRequest) (*response.CartItemResponse, error)
	GetCart(ctx context.Context, userID uuid.UUID) ([]response.CartItemResponse, error)
	UpdateCartItem(ctx context.Context, itemID uuid.UUID, req *request.UpdateCartItemRequest) (*response.CartItemResponse, error)
	RemoveCartItem(ctx context.Context, itemID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error

	CartItemOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) AddToCart(ctx context.Context, caller *utils.Identity, req *request.AddToCartRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to cart validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	productID, _ := uuid.Parse(req.ProductID)

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to find product for cart", zap.Error(err), zap.String("product_id", req.ProductID))
		return nil, internalError("Error adding product to cart, please try again later")
	}
	if product == nil || product.IsDeleted {
		return nil, newError(ErrNotFound, "Product not found")
	}
	if err := checkStock(product, quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.CartItem{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    caller.UserID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, "Product is already in your cart")
		}
		s.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", caller.UserID.String()),
			zap.String("product_id", req.ProductID),
		)
		return nil, internalError("Error adding product to cart, please try again later")
	}

	s.log.Info("Product added to cart",
		zap.String("user_id", caller.UserID.String()),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", quantity),
	)

	resp := response.CartItemToResponse(item, product)
	return &resp, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]response.CartItemResponse, error) {
	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Error fetching cart items, please try again later")
	}

	products := newProductLoader(s.repo.Product)
	out := make([]response.CartItemResponse, 0, len(items))
	for _, item := range items {
		product, err := products.load(ctx, item.ProductID)
		if err != nil {
			s.log.Error("Failed to load cart product", zap.Error(err), zap.String("product_id", item.ProductID.String()))
			return nil, internalError("Error fetching cart items, please try again later")
		}
		out = append(out, response.CartItemToResponse(item, product))
	}
	return out, nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, itemID uuid.UUID, req *request.UpdateCartItemRequest) (*response.CartItemResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	item, err := s.repo.Cart.FindByID(ctx, itemID)
	if err != nil {
		s.log.Error("Failed to find cart item", zap.Error(err), zap.String("cart_item_id", itemID.String()))
		return nil, internalError("Error updating cart item, please try again later")
	}
	if item == nil {
		return nil, newError(ErrNotFound, "Cart item not found")
	}

	product, err := s.repo.Product.FindByID(ctx, item.ProductID)
	if err != nil {
		s.log.Error("Failed to find product for cart item", zap.Error(err), zap.String("product_id", item.ProductID.String()))
		return nil, internalError("Error updating cart item, please try again later")
	}
	if product == nil || product.IsDeleted {
		return nil, newError(ErrNotFound, "Product not found")
	}
	if err := checkStock(product, req.Quantity); err != nil {
		return nil, err
	}

	item.Quantity = req.Quantity
	item.UpdatedAt = time.Now()
	if err := s.repo.Cart.UpdateQuantity(ctx, item.ID, item.Quantity, item.UpdatedAt); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, newError(ErrNotFound, "Cart item not found")
		}
		s.log.Error("Failed to update cart item", zap.Error(err), zap.String("cart_item_id", itemID.String()))
		return nil, internalError("Error updating cart item, please try again later")
	}

	resp := response.CartItemToResponse(item, product)
	return &resp, nil
}

func (s *cartService) RemoveCartItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.repo.Cart.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return newError(ErrNotFound, "Cart item not found")
		}
		s.log.Error("Failed to delete cart item", zap.Error(err), zap.String("cart_item_id", itemID.String()))
		return internalError("Error removing cart item, please try again later")
	}
	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	removed, err := s.repo.Cart.DeleteByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return internalError("Error resetting your cart, please try again later")
	}

	s.log.Info("Cart cleared", zap.String("user_id", userID.String()), zap.Int64("removed", removed))
	return nil
}

func (s *cartService) CartItemOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	item, err := s.repo.Cart.FindByID(ctx, id)
	if err != nil || item == nil {
		return uuid.Nil, false, err
	}
	return item.UserID, true, nil
}

func checkStock(product *entity.Product, quantity int) error {
	if quantity > product.StockQuantity {
		return newError(ErrBadRequest, fmt.Sprintf("Only %d units of %s are in stock", product.StockQuantity, product.Title))
	}
	return nil
}

// productLoader memoises product lookups for one listing. Missing products
// are cached as nil.
type productLoader struct {
	repo  repository.ProductRepository
	cache map[uuid.UUID]*entity.Product
}

func newProductLoader(repo repository.ProductRepository) *productLoader {
	return &productLoader{repo: repo, cache: make(map[uuid.UUID]*entity.Product)}
}

func (l *productLoader) load(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if product, ok := l.cache[id]; ok {
		return product, nil
	}
	product, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.cache[id] = product
	return product, nil
}
