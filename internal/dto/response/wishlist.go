package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

type WishlistItemResponse struct {
	ID        string           `json:"_id"`
	User      string           `json:"user"`
	Product   *ProductResponse `json:"product"`
	Note      *string          `json:"note,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func WishlistItemToResponse(item *entity.WishlistItem, product *entity.Product) WishlistItemResponse {
	resp := WishlistItemResponse{
		ID:        item.ID.String(),
		User:      item.UserID.String(),
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if product != nil {
		p := ProductToResponse(product)
		resp.Product = &p
	}
	return resp
}

// WishlistPage is one page of a wishlist; Total goes into X-Total-Count.
type WishlistPage struct {
	Items []WishlistItemResponse
	Total int64
}
