package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

type ProductResponse struct {
	ID                 string    `json:"_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discountPercentage"`
	Category           string    `json:"category"`
	Brand              string    `json:"brand"`
	StockQuantity      int       `json:"stockQuantity"`
	Thumbnail          string    `json:"thumbnail"`
	Images             []string  `json:"images"`
	Vendor             string    `json:"vendor"`
	IsDeleted          bool      `json:"isDeleted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Category:           p.CategoryID.String(),
		Brand:              p.BrandID.String(),
		StockQuantity:      p.StockQuantity,
		Thumbnail:          p.Thumbnail,
		Images:             images,
		Vendor:             p.VendorID.String(),
		IsDeleted:          p.IsDeleted,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out
}

// ProductList is a page of products plus the total match count that goes
// into the X-Total-Count header.
type ProductList struct {
	Products []ProductResponse
	Total    int64
}
