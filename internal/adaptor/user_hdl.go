package adaptor

import (
	"net/http"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUser handles GET /users/{id} (self or admin)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// UpdateUser handles PATCH /users/{id} (self or admin)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// ListVendors handles GET /users/vendors/all (admin only)
func (h *UserHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.service.ListVendors(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list vendors")
		return
	}

	utils.ResponseSuccess(w, vendors)
}

// ApproveVendor handles PATCH /users/vendors/approve/{id} (admin only)
func (h *UserHandler) ApproveVendor(w http.ResponseWriter, r *http.Request) {
	var req request.ApproveVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.service.ApproveVendor(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "approve vendor")
		return
	}

	utils.ResponseSuccess(w, vendor)
}
