package usecase

import (
	"context"
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

type OrderService interface {
	// PlaceOrder turns the caller's cart into an order shipped to one of
	// their saved addresses. Stock is reserved per line; on any failure the
	// lines already reserved are released again.
	PlaceOrder(ctx context.Context, caller *utils.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, req *request.PaginatedRequest) (*response.OrderList, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)

	OrderOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, caller *utils.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Place order validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}
	addressID, _ := uuid.Parse(req.AddressID)

	address, err := s.repo.Address.FindByID(ctx, addressID)
	if err != nil {
		s.log.Error("Failed to find order address", zap.Error(err), zap.String("address_id", req.AddressID))
		return nil, internalError("Error creating order, please try again later")
	}
	if address == nil || address.UserID != caller.UserID {
		return nil, newError(ErrNotFound, "Address not found")
	}

	cart, err := s.repo.Cart.FindByUserID(ctx, caller.UserID)
	if err != nil {
		s.log.Error("Failed to load cart for order", zap.Error(err), zap.String("user_id", caller.UserID.String()))
		return nil, internalError("Error creating order, please try again later")
	}
	if len(cart) == 0 {
		return nil, newError(ErrBadRequest, "Your cart is empty")
	}

	items := make([]entity.OrderItem, 0, len(cart))
	for _, line := range cart {
		product, err := s.repo.Product.FindByID(ctx, line.ProductID)
		if err != nil {
			s.log.Error("Failed to load order product", zap.Error(err), zap.String("product_id", line.ProductID.String()))
			s.releaseStock(ctx, items)
			return nil, internalError("Error creating order, please try again later")
		}
		if product == nil || product.IsDeleted {
			s.releaseStock(ctx, items)
			return nil, newError(ErrBadRequest, "A product in your cart is no longer available")
		}

		reserved, err := s.repo.Product.AdjustStock(ctx, product.ID, -line.Quantity)
		if err != nil {
			s.log.Error("Failed to reserve stock", zap.Error(err), zap.String("product_id", product.ID.String()))
			s.releaseStock(ctx, items)
			return nil, internalError("Error creating order, please try again later")
		}
		if !reserved {
			s.releaseStock(ctx, items)
			return nil, newError(ErrBadRequest, fmt.Sprintf("%s is out of stock", product.Title))
		}

		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Thumbnail: product.Thumbnail,
			Price:     entity.UnitPrice(product),
			Quantity:  line.Quantity,
		})
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      caller.UserID,
		Items:       items,
		Address:     address.AddressDetails,
		Status:      entity.OrderPending,
		PaymentMode: entity.PaymentMode(req.PaymentMode),
		Total:       entity.OrderTotal(items),
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", caller.UserID.String()))
		s.releaseStock(ctx, items)
		return nil, internalError("Error creating order, please try again later")
	}

	if _, err := s.repo.Cart.DeleteByUserID(ctx, caller.UserID); err != nil {
		s.log.Warn("Failed to clear cart after order", zap.Error(err), zap.String("order_id", order.ID.String()))
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", caller.UserID.String()),
		zap.Int("items", len(items)),
		zap.Float64("total", order.Total),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrders(ctx context.Context, req *request.PaginatedRequest) (*response.OrderList, error) {
	orders, err := s.repo.Order.FindAll(ctx, req.PerPage(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get orders", zap.Error(err))
		return nil, internalError("Error fetching orders, please try again later")
	}

	total, err := s.repo.Order.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err))
		return nil, internalError("Error fetching orders, please try again later")
	}

	return &response.OrderList{Orders: response.OrdersToResponse(orders), Total: total}, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Error fetching orders, please try again later")
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if !entity.IsOrderStatus(req.Status) {
		return nil, validationError(map[string]string{
			"status": "Must be one of: Pending, Dispatched, Out for delivery, Delivered, Cancelled",
		})
	}
	target := entity.OrderStatus(req.Status)

	order, err := s.findOrder(ctx, orderID, "Error updating order, please try again later")
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		resp := response.OrderToResponse(order)
		return &resp, nil
	}
	if order.Status == entity.OrderCancelled {
		return nil, newError(ErrBadRequest, "Cancelled orders cannot be updated")
	}

	if err := s.transition(ctx, order, target, "Error updating order, please try again later"); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	order, err := s.findOrder(ctx, orderID, "Error cancelling order, please try again later")
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderPending {
		return nil, newError(ErrBadRequest, "Only pending orders can be cancelled")
	}

	if err := s.transition(ctx, order, entity.OrderCancelled, "Error cancelling order, please try again later"); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) OrderOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil || order == nil {
		return uuid.Nil, false, err
	}
	return order.UserID, true, nil
}

func (s *orderService) findOrder(ctx context.Context, orderID uuid.UUID, failure string) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID.String()))
		return nil, internalError(failure)
	}
	if order == nil {
		return nil, newError(ErrNotFound, "Order not found")
	}
	return order, nil
}

// transition moves order to target if nobody changed its status since it
// was read. Cancelling puts the reserved stock back.
func (s *orderService) transition(ctx context.Context, order *entity.Order, target entity.OrderStatus, failure string) error {
	now := time.Now()
	moved, err := s.repo.Order.UpdateStatus(ctx, order.ID, order.Status, target, now)
	if err != nil {
		return internalError(failure)
	}
	if !moved {
		return newError(ErrConflict, "Order status has changed, please refresh and try again")
	}

	s.log.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(target)),
	)

	order.Status = target
	order.UpdatedAt = now
	if target == entity.OrderCancelled {
		s.releaseStock(ctx, order.Items)
	}
	return nil
}

// releaseStock returns reserved units. Failures are only logged.
func (s *orderService) releaseStock(ctx context.Context, items []entity.OrderItem) {
	for _, item := range items {
		restored, err := s.repo.Product.AdjustStock(ctx, item.ProductID, item.Quantity)
		if err != nil || !restored {
			s.log.Warn("Failed to release stock",
				zap.Error(err),
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
			)
		}
	}
}
