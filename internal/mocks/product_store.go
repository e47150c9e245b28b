package mocks

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"

	"github.com/google/uuid"
)

// ProductStore is an in-memory repository.ProductRepository that applies
// ProductFilter the way the database queries do.
type ProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	Err      error
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]*entity.Product)}
}

func (s *ProductStore) Get(id uuid.UUID) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product, ok := s.products[id]; ok {
		return cloneProduct(product)
	}
	return nil
}

func (s *ProductStore) Create(ctx context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.products[product.ID] = cloneProduct(product)
	return nil
}

func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Get(id), nil
}

func (s *ProductStore) Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	matched := s.match(filter)
	sortProducts(matched, filter.SortField, filter.SortOrder)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *ProductStore) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.match(filter))), nil
}

func (s *ProductStore) Update(ctx context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	updated := cloneProduct(product)
	// vendor and the deleted flag are not part of an update
	updated.VendorID = existing.VendorID
	updated.IsDeleted = existing.IsDeleted
	updated.CreatedAt = existing.CreatedAt
	s.products[product.ID] = updated
	return nil
}

func (s *ProductStore) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	product, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.IsDeleted = deleted
	return nil
}

func (s *ProductStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	product, ok := s.products[id]
	if !ok || product.StockQuantity+delta < 0 {
		return false, nil
	}
	product.StockQuantity += delta
	return true, nil
}

func (s *ProductStore) match(filter entity.ProductFilter) []*entity.Product {
	var out []*entity.Product
	for _, p := range s.products {
		if len(filter.BrandIDs) > 0 && !slices.Contains(filter.BrandIDs, p.BrandID) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !slices.Contains(filter.CategoryIDs, p.CategoryID) {
			continue
		}
		if filter.VendorID != nil && p.VendorID != *filter.VendorID {
			continue
		}
		if filter.OnlyActive && p.IsDeleted {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out
}

func sortProducts(products []*entity.Product, field string, order entity.SortOrder) {
	less := func(a, b *entity.Product) int {
		switch field {
		case entity.SortByPrice:
			return compareFloat(a.Price, b.Price)
		case entity.SortByDiscountPercentage:
			return compareFloat(a.DiscountPercentage, b.DiscountPercentage)
		case entity.SortByStockQuantity:
			return a.StockQuantity - b.StockQuantity
		case entity.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	}

	sort.SliceStable(products, func(i, j int) bool {
		c := less(products[i], products[j])
		if c == 0 {
			c = strings.Compare(products[i].ID.String(), products[j].ID.String())
		}
		if order == entity.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cloneProduct(p *entity.Product) *entity.Product {
	clone := *p
	clone.Images = slices.Clone(p.Images)
	return &clone
}

var _ repository.ProductRepository = (*ProductStore)(nil)
