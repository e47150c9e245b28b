package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitPrice(t *testing.T) {
	assert.InDelta(t, 16.99, UnitPrice(&Product{Price: 19.99, DiscountPercentage: 15}), 0.0001)
	assert.InDelta(t, 20.0, UnitPrice(&Product{Price: 20}), 0.0001)
	assert.InDelta(t, 0.0, UnitPrice(&Product{Price: 20, DiscountPercentage: 100}), 0.0001)
}

func TestOrderTotal(t *testing.T) {
	total := OrderTotal([]OrderItem{
		{Price: 16.99, Quantity: 3},
		{Price: 0.1, Quantity: 3},
	})
	assert.InDelta(t, 51.27, total, 0.0001)
	assert.Zero(t, OrderTotal(nil))
}

func TestIsOrderStatus(t *testing.T) {
	assert.True(t, IsOrderStatus("Out for delivery"))
	assert.True(t, IsOrderStatus("Cancelled"))
	assert.False(t, IsOrderStatus("cancelled"))
	assert.False(t, IsOrderStatus(""))
}
