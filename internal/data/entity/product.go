package entity

import (
	"github.com/google/uuid"
)

type Product struct {
	Base
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	Price              float64   `db:"price"`
	DiscountPercentage float64   `db:"discount_percentage"`
	CategoryID         uuid.UUID `db:"category_id"`
	BrandID            uuid.UUID `db:"brand_id"`
	StockQuantity      int       `db:"stock_quantity"`
	Thumbnail          string    `db:"thumbnail"`
	Images             []string  `db:"images"`
	VendorID           uuid.UUID `db:"vendor_id"`
	IsDeleted          bool      `db:"is_deleted"`
}

type SortOrder int

const (
	SortAsc  SortOrder = 1
	SortDesc SortOrder = -1
)

// ProductFilter is the store-agnostic form of a product list query.
type ProductFilter struct {
	BrandIDs    []uuid.UUID
	CategoryIDs []uuid.UUID
	VendorID    *uuid.UUID
	OnlyActive  bool
	SortField   string
	SortOrder   SortOrder
	Limit       int
	Offset      int
}

// Sortable product fields, keyed by their JSON name.
const (
	SortByPrice              = "price"
	SortByTitle              = "title"
	SortByDiscountPercentage = "discountPercentage"
	SortByStockQuantity      = "stockQuantity"
	SortByCreatedAt          = "createdAt"
)

func IsProductSortField(field string) bool {
	switch field {
	case SortByPrice, SortByTitle, SortByDiscountPercentage, SortByStockQuantity, SortByCreatedAt:
		return true
	}
	return false
}
