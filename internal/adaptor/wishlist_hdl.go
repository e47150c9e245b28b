package adaptor

import (
	"net/http"
	"strconv"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type WishlistHandler struct {
	service usecase.WishlistService
	log     *zap.Logger
}

func NewWishlistHandler(service usecase.WishlistService, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		log:     log.With(zap.String("handler", "wishlist")),
	}
}

// AddToWishlist handles POST /wishlist (customer)
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.AddToWishlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddToWishlist(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to wishlist")
		return
	}

	utils.ResponseCreated(w, item)
}

// GetWishlist handles GET /wishlist/user/{id}?page=&limit= (self or admin)
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 10),
	}

	page, err := h.service.GetWishlist(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get wishlist")
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(page.Total, 10))
	utils.ResponseSuccess(w, page.Items)
}

// UpdateWishlistItem handles PATCH /wishlist/{id}
func (h *WishlistHandler) UpdateWishlistItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "wishlist item")
	if !ok {
		return
	}

	var req request.UpdateWishlistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateWishlistItem(r.Context(), itemID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update wishlist item")
		return
	}

	utils.ResponseSuccess(w, item)
}

// RemoveWishlistItem handles DELETE /wishlist/{id}
func (h *WishlistHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "wishlist item")
	if !ok {
		return
	}

	if err := h.service.RemoveWishlistItem(r.Context(), itemID); err != nil {
		handleServiceError(w, h.log, err, "remove wishlist item")
		return
	}

	utils.ResponseMessage(w, http.StatusOK, "Product removed from wishlist")
}
