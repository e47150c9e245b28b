package adaptor

import (
	"net/http"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type AddressHandler struct {
	service usecase.AddressService
	log     *zap.Logger
}

func NewAddressHandler(service usecase.AddressService, log *zap.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		log:     log.With(zap.String("handler", "address")),
	}
}

func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.CreateAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := h.service.CreateAddress(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create address")
		return
	}

	utils.ResponseCreated(w, address)
}

func (h *AddressHandler) GetUserAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	addresses, err := h.service.GetUserAddresses(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get addresses")
		return
	}

	utils.ResponseSuccess(w, addresses)
}

func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, ok := pathID(w, r, "address")
	if !ok {
		return
	}

	var req request.UpdateAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), addressID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update address")
		return
	}

	utils.ResponseSuccess(w, address)
}

func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, ok := pathID(w, r, "address")
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(r.Context(), addressID); err != nil {
		handleServiceError(w, h.log, err, "delete address")
		return
	}

	utils.ResponseMessage(w, http.StatusOK, "Address deleted")
}
