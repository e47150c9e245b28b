package adaptor

import (
	"net/http"
	"strconv"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// CreateProduct handles POST /products (approved vendor or admin)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, product)
}

// GetProducts handles GET /products (public, identity optional)
// Query: brand and category (repeatable), vendor, user, myProducts, sort,
// order, page, limit.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := &request.ProductListQuery{
		Brands:     query["brand"],
		Categories: query["category"],
		Vendor:     query.Get("vendor"),
		User:       queryFlag(query.Get("user")),
		MyProducts: queryFlag(query.Get("myProducts")),
		Sort:       query.Get("sort"),
		Order:      query.Get("order"),
		Page:       utils.ParseInt(query.Get("page"), 0),
		Limit:      utils.ParseInt(query.Get("limit"), 0),
	}

	// nil for anonymous callers
	identity, _ := utils.GetIdentity(r.Context())

	result, err := h.service.List(r.Context(), identity, listQuery)
	if err != nil {
		handleServiceError(w, h.log, err, "list products")
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(result.Total, 10))
	utils.ResponseSuccess(w, result.Products)
}

// GetProductByID handles GET /products/{id} (public, soft-deleted included)
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// GetMyProducts handles GET /products/vendor/my-products (vendor only)
func (h *ProductHandler) GetMyProducts(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	products, err := h.service.ListVendorProducts(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, h.log, err, "list vendor products")
		return
	}

	utils.ResponseSuccess(w, products)
}

// UpdateProduct handles PATCH /products/{id} (owner or admin)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// DeleteProduct handles DELETE /products/{id} (owner or admin)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	product, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// UndeleteProduct handles PATCH /products/undelete/{id} (owner or admin)
func (h *ProductHandler) UndeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "product")
	if !ok {
		return
	}

	product, err := h.service.Undelete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "undelete product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// any value except empty, "false" and "0" switches a flag on
func queryFlag(value string) bool {
	return value != "" && value != "false" && value != "0"
}
