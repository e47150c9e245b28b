package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, caller *utils.Identity, req *request.CreateProductRequest) (*response.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	List(ctx context.Context, caller *utils.Identity, query *request.ProductListQuery) (*response.ProductList, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]response.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	Undelete(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)

	// ProductOwner backs the product ownership guard: the owner is the vendor.
	ProductOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) Create(ctx context.Context, caller *utils.Identity, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	brandID, categoryID, err := s.resolveCatalog(ctx, req.Brand, req.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Price:              *req.Price,
		DiscountPercentage: req.DiscountPercentage,
		CategoryID:         categoryID,
		BrandID:            brandID,
		StockQuantity:      *req.StockQuantity,
		Thumbnail:          req.Thumbnail,
		Images:             req.Images,
		// the owner is always the caller, whatever the body says
		VendorID:  caller.UserID,
		IsDeleted: false,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product", zap.Error(err), zap.String("vendor_id", caller.UserID.String()))
		return nil, internalError("Error adding product, please trying again later")
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", product.VendorID.String()),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, internalError("Error getting product details, please try again later")
	}
	if product == nil {
		return nil, newError(ErrNotFound, "Product not found")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, caller *utils.Identity, query *request.ProductListQuery) (*response.ProductList, error) {
	filter, err := buildProductFilter(caller, query)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, internalError("Error fetching products, please try again later")
	}

	products, err := s.repo.Product.Find(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list products",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, internalError("Error fetching products, please try again later")
	}

	return &response.ProductList{
		Products: response.ProductsToResponse(products),
		Total:    total,
	}, nil
}

func (s *productService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.Find(ctx, entity.ProductFilter{VendorID: &vendorID})
	if err != nil {
		s.log.Error("Failed to list vendor products", zap.Error(err), zap.String("vendor_id", vendorID.String()))
		return nil, internalError("Error fetching vendor products")
	}
	return response.ProductsToResponse(products), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load product for update", zap.Error(err), zap.String("product_id", id.String()))
		return nil, internalError("Error updating product, please try again later")
	}
	if product == nil {
		return nil, newError(ErrNotFound, "Product not found")
	}

	if req.Brand != nil || req.Category != nil {
		brand, category := product.BrandID.String(), product.CategoryID.String()
		if req.Brand != nil {
			brand = *req.Brand
		}
		if req.Category != nil {
			category = *req.Category
		}
		brandID, categoryID, err := s.resolveCatalog(ctx, brand, category)
		if err != nil {
			return nil, err
		}
		product.BrandID, product.CategoryID = brandID, categoryID
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountPercentage != nil {
		product.DiscountPercentage = *req.DiscountPercentage
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Thumbnail != nil {
		product.Thumbnail = *req.Thumbnail
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, newError(ErrNotFound, "Product not found")
		}
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, internalError("Error updating product, please try again later")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	return s.setDeleted(ctx, id, true, "Error deleting product, please try again later")
}

func (s *productService) Undelete(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	return s.setDeleted(ctx, id, false, "Error restoring product, please try again later")
}

func (s *productService) ProductOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil || product == nil {
		return uuid.Nil, false, err
	}
	return product.VendorID, true, nil
}

// ==================== HELPER METHODS ====================

// setDeleted only flips the flag, the document itself is kept.
func (s *productService) setDeleted(ctx context.Context, id uuid.UUID, deleted bool, failure string) (*response.ProductResponse, error) {
	if err := s.repo.Product.SetDeleted(ctx, id, deleted); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, newError(ErrNotFound, "Product not found")
		}
		s.log.Error("Failed to set product deleted flag",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Bool("deleted", deleted),
		)
		return nil, internalError(failure)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil || product == nil {
		s.log.Error("Failed to reload product", zap.Error(err), zap.String("product_id", id.String()))
		return nil, internalError(failure)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) resolveCatalog(ctx context.Context, brand, category string) (uuid.UUID, uuid.UUID, error) {
	brandID, err := s.lookupCatalog(ctx, s.repo.Brand, brand, "Brand")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	categoryID, err := s.lookupCatalog(ctx, s.repo.Category, category, "Category")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return brandID, categoryID, nil
}

func (s *productService) lookupCatalog(ctx context.Context, repo repository.CatalogRepository, raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newError(ErrBadRequest, label+" not found")
	}

	item, err := repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to look up catalog item", zap.Error(err), zap.String("kind", label), zap.String("id", raw))
		return uuid.Nil, internalError("Error saving product, please try again later")
	}
	if item == nil {
		return uuid.Nil, newError(ErrBadRequest, label+" not found")
	}
	return id, nil
}

func buildProductFilter(caller *utils.Identity, query *request.ProductListQuery) (entity.ProductFilter, error) {
	var filter entity.ProductFilter

	for _, raw := range query.Brands {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, newError(ErrBadRequest, "Invalid brand id")
		}
		filter.BrandIDs = append(filter.BrandIDs, id)
	}
	for _, raw := range query.Categories {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, newError(ErrBadRequest, "Invalid category id")
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	if query.User {
		filter.OnlyActive = true
	}

	if query.Vendor != "" {
		id, err := uuid.Parse(query.Vendor)
		if err != nil {
			return filter, newError(ErrBadRequest, "Invalid vendor id")
		}
		filter.VendorID = &id
	}

	// myProducts wins over any vendor filter the client sent
	if query.MyProducts && caller != nil && caller.Role == string(entity.RoleVendor) {
		own := caller.UserID
		filter.VendorID = &own
	}

	if query.Sort != "" {
		if !entity.IsProductSortField(query.Sort) {
			return filter, newError(ErrBadRequest, "Invalid sort field")
		}
		filter.SortField = query.Sort
		filter.SortOrder = entity.SortAsc
		if query.Order != "" && query.Order != "asc" {
			filter.SortOrder = entity.SortDesc
		}
	}

	// pagination applies only when both page and limit are given
	if query.Page > 0 && query.Limit > 0 {
		filter.Limit = utils.ClampLimit(query.Limit)
		filter.Offset = utils.CalculateOffset(query.Page, filter.Limit)
	}

	return filter, nil
}
