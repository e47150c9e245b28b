package entity

import (
	"math"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "Pending"
	OrderDispatched     OrderStatus = "Dispatched"
	OrderOutForDelivery OrderStatus = "Out for delivery"
	OrderDelivered      OrderStatus = "Delivered"
	OrderCancelled      OrderStatus = "Cancelled"
)

func IsOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderPending, OrderDispatched, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentCOD  PaymentMode = "COD"
	PaymentUPI  PaymentMode = "UPI"
	PaymentCard PaymentMode = "CARD"
)

// OrderItem freezes the product as it was sold. Price is the unit price
// after discount.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

type Order struct {
	Base
	UserID      uuid.UUID      `db:"user_id"`
	Items       []OrderItem    `db:"items"`
	Address     AddressDetails `db:"address"`
	Status      OrderStatus    `db:"status"`
	PaymentMode PaymentMode    `db:"payment_mode"`
	Total       float64        `db:"total"`
}

// UnitPrice applies the product discount and rounds to cents.
func UnitPrice(product *Product) float64 {
	price := product.Price * (1 - product.DiscountPercentage/100)
	return math.Round(price*100) / 100
}

// OrderTotal sums the item lines, rounded to cents.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
