package entity

import (
	"github.com/google/uuid"
)

// CartItem is one product line in a customer's cart. A product appears at
// most once per cart.
type CartItem struct {
	Base
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
}
