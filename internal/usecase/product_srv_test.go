package usecase

import (
	"context"
	"testing"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/mocks"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	stores   *mocks.Stores
	svc      ProductService
	brand    uuid.UUID
	category uuid.UUID
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	stores := mocks.NewStores()
	f := &productFixture{
		stores:   stores,
		svc:      NewProductService(stores.Repository(), zap.NewNop()),
		brand:    uuid.New(),
		category: uuid.New(),
	}
	now := time.Now()
	require.NoError(t, stores.Brand.Create(context.Background(), &entity.CatalogItem{
		BaseSimple: entity.BaseSimple{ID: f.brand, CreatedAt: now}, Name: "Acme",
	}))
	require.NoError(t, stores.Category.Create(context.Background(), &entity.CatalogItem{
		BaseSimple: entity.BaseSimple{ID: f.category, CreatedAt: now}, Name: "Tools",
	}))
	return f
}

func (f *productFixture) createRequest(title string, price float64) *request.CreateProductRequest {
	stock := 5
	return &request.CreateProductRequest{
		Title:         title,
		Description:   "desc",
		Price:         &price,
		Category:      f.category.String(),
		Brand:         f.brand.String(),
		StockQuantity: &stock,
		Thumbnail:     "thumb.png",
	}
}

func (f *productFixture) seed(vendor uuid.UUID, title string, price float64, deleted bool, age time.Duration) *entity.Product {
	now := time.Now().Add(-age)
	p := &entity.Product{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:      title,
		Price:      price,
		BrandID:    f.brand,
		CategoryID: f.category,
		VendorID:   vendor,
		IsDeleted:  deleted,
	}
	_ = f.stores.Product.Create(context.Background(), p)
	return p
}

func TestProductService_CreateForcesVendor(t *testing.T) {
	f := newProductFixture(t)
	caller := &utils.Identity{UserID: uuid.New(), Role: "vendor", IsApproved: true}

	got, err := f.svc.Create(context.Background(), caller, f.createRequest("Hammer", 10))
	require.NoError(t, err)
	assert.Equal(t, caller.UserID.String(), got.Vendor)
	assert.False(t, got.IsDeleted)
	assert.Equal(t, []string{}, got.Images)

	stored := f.stores.Product.Get(uuid.MustParse(got.ID))
	require.NotNil(t, stored)
	assert.Equal(t, caller.UserID, stored.VendorID)
}

func TestProductService_CreateRejectsUnknownCatalog(t *testing.T) {
	f := newProductFixture(t)
	caller := &utils.Identity{UserID: uuid.New(), Role: "vendor", IsApproved: true}

	req := f.createRequest("Hammer", 10)
	req.Brand = uuid.NewString()
	_, err := f.svc.Create(context.Background(), caller, req)
	assertKind(t, err, ErrBadRequest, "Brand not found")

	req = f.createRequest("Hammer", 10)
	req.Category = uuid.NewString()
	_, err = f.svc.Create(context.Background(), caller, req)
	assertKind(t, err, ErrBadRequest, "Category not found")

	req = f.createRequest("", 10)
	req.Price = nil
	_, err = f.svc.Create(context.Background(), caller, req)
	assertKind(t, err, ErrValidation, "")
}

func TestProductService_SoftDeleteKeepsProduct(t *testing.T) {
	f := newProductFixture(t)
	p := f.seed(uuid.New(), "Saw", 20, false, 0)

	deleted, err := f.svc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	found, err := f.svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, found.IsDeleted)

	restored, err := f.svc.Undelete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.NotNil(t, f.stores.Product.Get(p.ID))

	_, err = f.svc.Delete(context.Background(), uuid.New())
	assertKind(t, err, ErrNotFound, "Product not found")
}

func TestProductService_UpdateKeepsOwnerAndFlag(t *testing.T) {
	f := newProductFixture(t)
	vendor := uuid.New()
	p := f.seed(vendor, "Saw", 20, true, 0)

	title := "Better Saw"
	price := 25.5
	got, err := f.svc.Update(context.Background(), p.ID, &request.UpdateProductRequest{Title: &title, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Better Saw", got.Title)
	assert.Equal(t, 25.5, got.Price)
	assert.Equal(t, vendor.String(), got.Vendor)
	assert.True(t, got.IsDeleted)

	unknown := uuid.NewString()
	_, err = f.svc.Update(context.Background(), p.ID, &request.UpdateProductRequest{Brand: &unknown})
	assertKind(t, err, ErrBadRequest, "Brand not found")

	_, err = f.svc.Update(context.Background(), uuid.New(), &request.UpdateProductRequest{Title: &title})
	assertKind(t, err, ErrNotFound, "Product not found")
}

func TestProductService_List(t *testing.T) {
	f := newProductFixture(t)
	vendorA, vendorB := uuid.New(), uuid.New()
	f.seed(vendorA, "A1", 30, false, 3*time.Hour)
	f.seed(vendorA, "A2", 10, true, 2*time.Hour)
	f.seed(vendorB, "B1", 20, false, time.Hour)

	list := func(t *testing.T, caller *utils.Identity, q request.ProductListQuery) []string {
		t.Helper()
		got, err := f.svc.List(context.Background(), caller, &q)
		require.NoError(t, err)
		titles := make([]string, 0, len(got.Products))
		for _, p := range got.Products {
			titles = append(titles, p.Title)
		}
		return titles
	}

	assert.Equal(t, []string{"A1", "A2", "B1"}, list(t, nil, request.ProductListQuery{}))
	assert.Equal(t, []string{"A1", "B1"}, list(t, nil, request.ProductListQuery{User: true}))
	assert.Equal(t, []string{"A1", "A2"}, list(t, nil, request.ProductListQuery{Vendor: vendorA.String()}))
	assert.Equal(t, []string{"A2", "B1", "A1"}, list(t, nil, request.ProductListQuery{Sort: "price"}))
	assert.Equal(t, []string{"A1", "B1", "A2"}, list(t, nil, request.ProductListQuery{Sort: "price", Order: "desc"}))
	assert.Equal(t, []string{"A2"}, list(t, nil, request.ProductListQuery{Page: 2, Limit: 1}))

	t.Run("myProducts overrides vendor filter", func(t *testing.T) {
		caller := &utils.Identity{UserID: vendorB, Role: "vendor"}
		assert.Equal(t, []string{"B1"}, list(t, caller, request.ProductListQuery{MyProducts: true, Vendor: vendorA.String()}))
	})

	t.Run("myProducts ignored for customers", func(t *testing.T) {
		caller := &utils.Identity{UserID: uuid.New(), Role: "customer"}
		assert.Len(t, list(t, caller, request.ProductListQuery{MyProducts: true}), 3)
	})

	t.Run("total ignores pagination", func(t *testing.T) {
		got, err := f.svc.List(context.Background(), nil, &request.ProductListQuery{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got.Products, 2)
		assert.Equal(t, int64(3), got.Total)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := f.svc.List(context.Background(), nil, &request.ProductListQuery{Sort: "password"})
		assertKind(t, err, ErrBadRequest, "Invalid sort field")

		_, err = f.svc.List(context.Background(), nil, &request.ProductListQuery{Brands: []string{"x"}})
		assertKind(t, err, ErrBadRequest, "Invalid brand id")
	})
}

func TestProductService_ListVendorProducts(t *testing.T) {
	f := newProductFixture(t)
	vendor := uuid.New()
	f.seed(vendor, "Mine", 1, false, 0)
	f.seed(vendor, "Mine deleted", 1, true, 0)
	f.seed(uuid.New(), "Theirs", 1, false, 0)

	got, err := f.svc.ListVendorProducts(context.Background(), vendor)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, vendor.String(), p.Vendor)
	}
}

func TestProductService_ProductOwner(t *testing.T) {
	f := newProductFixture(t)
	vendor := uuid.New()
	p := f.seed(vendor, "Saw", 1, true, 0)

	owner, found, err := f.svc.ProductOwner(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, vendor, owner)

	_, found, err = f.svc.ProductOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}
