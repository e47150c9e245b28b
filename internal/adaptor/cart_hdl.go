package adaptor

import (
	"net/http"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// AddToCart handles POST /cart (customer)
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddToCart(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseCreated(w, item)
}

// GetCart handles GET /cart/user/{id} (self or admin)
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	items, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, items)
}

// UpdateCartItem handles PATCH /cart/{id}
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "cart item")
	if !ok {
		return
	}

	var req request.UpdateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateCartItem(r.Context(), itemID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cart item")
		return
	}

	utils.ResponseSuccess(w, item)
}

// RemoveCartItem handles DELETE /cart/{id}
func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "cart item")
	if !ok {
		return
	}

	if err := h.service.RemoveCartItem(r.Context(), itemID); err != nil {
		handleServiceError(w, h.log, err, "remove cart item")
		return
	}

	utils.ResponseMessage(w, http.StatusOK, "Product removed from cart")
}

// ClearCart handles DELETE /cart/user/{id}
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseMessage(w, http.StatusOK, "Cart cleared")
}
