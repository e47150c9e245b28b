package adaptor

import (
	"net/http"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

// CatalogHandler serves one catalog list, brands or categories.
type CatalogHandler struct {
	service usecase.CatalogService
	kind    string
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, kind string, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		kind:    kind,
		log:     log.With(zap.String("handler", kind)),
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list "+h.kind)
		return
	}

	utils.ResponseSuccess(w, items)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCatalogItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create "+h.kind)
		return
	}

	utils.ResponseCreated(w, item)
}
