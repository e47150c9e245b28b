package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

type OrderResponse struct {
	ID          string                `json:"_id"`
	User        string                `json:"user"`
	Items       []entity.OrderItem    `json:"items"`
	Address     entity.AddressDetails `json:"address"`
	Status      string                `json:"status"`
	PaymentMode string                `json:"paymentMode"`
	Total       float64               `json:"total"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	items := order.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	return OrderResponse{
		ID:          order.ID.String(),
		User:        order.UserID.String(),
		Items:       items,
		Address:     order.Address,
		Status:      string(order.Status),
		PaymentMode: string(order.PaymentMode),
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, OrderToResponse(order))
	}
	return out
}

// OrderList is a page of orders; Total goes into X-Total-Count.
type OrderList struct {
	Orders []OrderResponse
	Total  int64
}
