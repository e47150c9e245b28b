package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

// CartItemResponse carries the product inline. Product is nil when the
// product no longer exists.
type CartItemResponse struct {
	ID        string           `json:"_id"`
	User      string           `json:"user"`
	Product   *ProductResponse `json:"product"`
	Quantity  int              `json:"quantity"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func CartItemToResponse(item *entity.CartItem, product *entity.Product) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID.String(),
		User:      item.UserID.String(),
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if product != nil {
		p := ProductToResponse(product)
		resp.Product = &p
	}
	return resp
}
