package usecase

import (
	"context"
	"errors"
	"testing"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/internal/mocks"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	stores    *mocks.Stores
	orders    OrderService
	caller    *utils.Identity
	addressID string
	hammer    *entity.Product
	saw       *entity.Product
}

// newOrderFixture fills the caller's cart with 2 hammers and 1 saw.
func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	stores := mocks.NewStores()
	repo := stores.Repository()
	f := &orderFixture{
		stores: stores,
		orders: NewOrderService(repo, zap.NewNop()),
		caller: &utils.Identity{UserID: uuid.New(), Role: "customer"},
		hammer: seedProduct(t, stores, "Hammer", 20, 0, 5),
		saw:    seedProduct(t, stores, "Saw", 35, 10, 2),
	}

	address, err := NewAddressService(repo.Address, zap.NewNop()).CreateAddress(context.Background(), f.caller, homeAddress())
	require.NoError(t, err)
	f.addressID = address.ID

	cart := NewCartService(repo, zap.NewNop())
	_, err = cart.AddToCart(context.Background(), f.caller, &request.AddToCartRequest{ProductID: f.hammer.ID.String(), Quantity: intPtr(2)})
	require.NoError(t, err)
	_, err = cart.AddToCart(context.Background(), f.caller, &request.AddToCartRequest{ProductID: f.saw.ID.String()})
	require.NoError(t, err)
	return f
}

func (f *orderFixture) stock(t *testing.T, product *entity.Product) int {
	t.Helper()
	got, err := f.stores.Product.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	return got.StockQuantity
}

func (f *orderFixture) cartSize(t *testing.T) int {
	t.Helper()
	items, err := f.stores.Cart.FindByUserID(context.Background(), f.caller.UserID)
	require.NoError(t, err)
	return len(items)
}

func (f *orderFixture) place(t *testing.T) *response.OrderResponse {
	t.Helper()
	order, err := f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
		AddressID:   f.addressID,
		PaymentMode: "COD",
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderFixture(t)

	order := f.place(t)
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, "COD", order.PaymentMode)
	assert.Equal(t, "London", order.Address.City)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Hammer", order.Items[0].Title)
	assert.InDelta(t, 20.0, order.Items[0].Price, 0.001)
	assert.InDelta(t, 31.5, order.Items[1].Price, 0.001)
	assert.InDelta(t, 71.5, order.Total, 0.001)

	assert.Equal(t, 3, f.stock(t, f.hammer))
	assert.Equal(t, 1, f.stock(t, f.saw))
	assert.Zero(t, f.cartSize(t))

	_, err := f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
		AddressID:   f.addressID,
		PaymentMode: "COD",
	})
	assertKind(t, err, ErrBadRequest, "Your cart is empty")
}

func TestOrderService_PlaceOrderRejects(t *testing.T) {
	t.Run("address of another user", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.orders.PlaceOrder(context.Background(), &utils.Identity{UserID: uuid.New()}, &request.CreateOrderRequest{
			AddressID:   f.addressID,
			PaymentMode: "UPI",
		})
		assertKind(t, err, ErrNotFound, "Address not found")
	})

	t.Run("unknown payment mode", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
			AddressID:   f.addressID,
			PaymentMode: "CHEQUE",
		})
		assertKind(t, err, ErrValidation, "")
	})

	t.Run("out of stock releases earlier lines", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.stores.Product.AdjustStock(context.Background(), f.saw.ID, -2)
		require.NoError(t, err)

		_, err = f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
			AddressID:   f.addressID,
			PaymentMode: "CARD",
		})
		assertKind(t, err, ErrBadRequest, "Saw is out of stock")
		assert.Equal(t, 5, f.stock(t, f.hammer))
		assert.Equal(t, 2, f.cartSize(t))
	})

	t.Run("deleted product", func(t *testing.T) {
		f := newOrderFixture(t)
		require.NoError(t, f.stores.Product.SetDeleted(context.Background(), f.saw.ID, true))

		_, err := f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
			AddressID:   f.addressID,
			PaymentMode: "COD",
		})
		assertKind(t, err, ErrBadRequest, "A product in your cart is no longer available")
		assert.Equal(t, 5, f.stock(t, f.hammer))
	})

	t.Run("failed write releases stock", func(t *testing.T) {
		f := newOrderFixture(t)
		f.stores.Order.Err = errors.New("connection reset")

		_, err := f.orders.PlaceOrder(context.Background(), f.caller, &request.CreateOrderRequest{
			AddressID:   f.addressID,
			PaymentMode: "COD",
		})
		assertKind(t, err, ErrInternal, "Error creating order, please try again later")
		assert.Equal(t, 5, f.stock(t, f.hammer))
		assert.Equal(t, 2, f.stock(t, f.saw))
		assert.Equal(t, 2, f.cartSize(t))
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.MustParse(f.place(t).ID)

	cancelled, err := f.orders.CancelOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)
	assert.Equal(t, 5, f.stock(t, f.hammer))
	assert.Equal(t, 2, f.stock(t, f.saw))

	_, err = f.orders.CancelOrder(context.Background(), orderID)
	assertKind(t, err, ErrBadRequest, "Only pending orders can be cancelled")

	_, err = f.orders.UpdateOrderStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Dispatched"})
	assertKind(t, err, ErrBadRequest, "Cancelled orders cannot be updated")

	_, err = f.orders.CancelOrder(context.Background(), uuid.New())
	assertKind(t, err, ErrNotFound, "Order not found")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	orderID := uuid.MustParse(f.place(t).ID)

	_, err := f.orders.UpdateOrderStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Lost"})
	assertKind(t, err, ErrValidation, "")

	got, err := f.orders.UpdateOrderStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Out for delivery"})
	require.NoError(t, err)
	assert.Equal(t, "Out for delivery", got.Status)

	same, err := f.orders.UpdateOrderStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Out for delivery"})
	require.NoError(t, err)
	assert.Equal(t, "Out for delivery", same.Status)

	_, err = f.orders.CancelOrder(context.Background(), orderID)
	assertKind(t, err, ErrBadRequest, "Only pending orders can be cancelled")

	got, err = f.orders.UpdateOrderStatus(context.Background(), orderID, &request.UpdateOrderStatusRequest{Status: "Cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", got.Status)
	assert.Equal(t, 5, f.stock(t, f.hammer))
}

func TestOrderService_Listings(t *testing.T) {
	f := newOrderFixture(t)
	first := f.place(t)

	cart := NewCartService(f.stores.Repository(), zap.NewNop())
	_, err := cart.AddToCart(context.Background(), f.caller, &request.AddToCartRequest{ProductID: f.hammer.ID.String()})
	require.NoError(t, err)
	second := f.place(t)

	mine, err := f.orders.GetUserOrders(context.Background(), f.caller.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	page, err := f.orders.GetOrders(context.Background(), &request.PaginatedRequest{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, first.ID, page.Orders[0].ID)

	owner, found, err := f.orders.OrderOwner(context.Background(), uuid.MustParse(first.ID))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, f.caller.UserID, owner)

	none, err := f.orders.GetUserOrders(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
