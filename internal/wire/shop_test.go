package wire

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeList(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list), string(body))
	return list
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.loginAdmin()
	brand, category := s.createCatalog(admin)

	rec := s.do(http.MethodPost, "/products", productBody(brand, category), admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	productID := decode(t, rec)["_id"].(string)

	buyerID, buyer := s.signup("C", "c@x.com", "")
	_, other := s.signup("D", "d@x.com", "")

	// cart
	rec = s.do(http.MethodPost, "/cart", map[string]any{"productId": productID, "quantity": 2}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode(t, rec)
	itemID := item["_id"].(string)
	assert.Equal(t, "Hammer", item["product"].(map[string]any)["title"])

	rec = s.do(http.MethodPost, "/cart", map[string]any{"productId": productID}, admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/cart/"+itemID, map[string]any{"quantity": 1}, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not authorized to perform this action on this cart item", decode(t, rec)["message"])

	rec = s.do(http.MethodGet, "/cart/user/"+buyerID, nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/cart/user/"+buyerID, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec.Body.Bytes()), 1)

	rec = s.do(http.MethodPatch, "/cart/"+uuid.NewString(), map[string]any{"quantity": 1}, buyer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart item not found", decode(t, rec)["message"])

	// address
	rec = s.do(http.MethodPost, "/address", map[string]string{
		"type": "Home", "street": "1 Main St", "city": "Springfield", "state": "IL",
		"postalCode": "62701", "country": "US", "phoneNumber": "+12175550100",
	}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	addressID := decode(t, rec)["_id"].(string)

	rec = s.do(http.MethodPatch, "/address/"+addressID, map[string]string{"city": "Chicago"}, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// order
	rec = s.do(http.MethodPost, "/orders", map[string]string{"addressId": addressID, "paymentMode": "UPI"}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	orderID := order["_id"].(string)
	assert.Equal(t, "Pending", order["status"])
	assert.Equal(t, float64(25), order["total"])
	assert.Equal(t, "Springfield", order["address"].(map[string]any)["city"])

	rec = s.do(http.MethodGet, "/products/"+productID, nil, nil)
	assert.Equal(t, float64(1), decode(t, rec)["stockQuantity"])

	rec = s.do(http.MethodGet, "/cart/user/"+buyerID, nil, buyer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(http.MethodPost, "/orders", map[string]string{"addressId": addressID, "paymentMode": "UPI"}, buyer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Your cart is empty", decode(t, rec)["message"])

	// fulfilment is admin only, cancelling is the buyer's
	rec = s.do(http.MethodPatch, "/orders/"+orderID, map[string]string{"status": "Dispatched"}, buyer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/cancel/"+orderID, nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not authorized to perform this action on this order", decode(t, rec)["message"])

	rec = s.do(http.MethodGet, "/orders", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = s.do(http.MethodGet, "/orders", nil, buyer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/cancel/"+orderID, nil, buyer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Cancelled", decode(t, rec)["status"])

	rec = s.do(http.MethodGet, "/products/"+productID, nil, nil)
	assert.Equal(t, float64(3), decode(t, rec)["stockQuantity"])

	rec = s.do(http.MethodPatch, "/orders/"+orderID, map[string]string{"status": "Delivered"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cancelled orders cannot be updated", decode(t, rec)["message"])

	rec = s.do(http.MethodGet, "/orders/user/"+buyerID, nil, buyer)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decodeList(t, rec.Body.Bytes())
	require.Len(t, mine, 1)
	assert.Equal(t, "Cancelled", mine[0]["status"])
}

func TestAdminFulfilsOrder(t *testing.T) {
	s := newTestServer(t)
	admin := s.loginAdmin()
	brand, category := s.createCatalog(admin)

	rec := s.do(http.MethodPost, "/products", productBody(brand, category), admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := decode(t, rec)["_id"].(string)

	_, buyer := s.signup("C", "c@x.com", "")
	rec = s.do(http.MethodPost, "/cart", map[string]any{"productId": productID}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/address", map[string]string{
		"type": "Office", "street": "2 Side St", "city": "Austin", "state": "TX",
		"postalCode": "73301", "country": "US", "phoneNumber": "+15125550100",
	}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code)
	addressID := decode(t, rec)["_id"].(string)

	rec = s.do(http.MethodPost, "/orders", map[string]string{"addressId": addressID, "paymentMode": "CARD"}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	orderID := decode(t, rec)["_id"].(string)

	rec = s.do(http.MethodPatch, "/orders/"+orderID, map[string]string{"status": "Shipped"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/orders/"+orderID, map[string]string{"status": "Out for delivery"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Out for delivery", decode(t, rec)["status"])

	rec = s.do(http.MethodPatch, "/orders/cancel/"+orderID, nil, buyer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only pending orders can be cancelled", decode(t, rec)["message"])
}

func TestWishlistRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.loginAdmin()
	brand, category := s.createCatalog(admin)

	rec := s.do(http.MethodPost, "/products", productBody(brand, category), admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := decode(t, rec)["_id"].(string)

	buyerID, buyer := s.signup("C", "c@x.com", "")
	_, other := s.signup("D", "d@x.com", "")

	rec = s.do(http.MethodPost, "/wishlist", map[string]any{"productId": productID, "note": "birthday"}, buyer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	itemID := decode(t, rec)["_id"].(string)

	rec = s.do(http.MethodPost, "/wishlist", map[string]any{"productId": productID}, buyer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product is already in your wishlist", decode(t, rec)["message"])

	rec = s.do(http.MethodGet, "/wishlist/user/"+buyerID+"?page=1&limit=1", nil, buyer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	list := decodeList(t, rec.Body.Bytes())
	require.Len(t, list, 1)
	assert.Equal(t, "birthday", list[0]["note"])

	rec = s.do(http.MethodGet, "/wishlist/user/"+buyerID, nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/wishlist/"+itemID, nil, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/wishlist/"+itemID, nil, buyer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product removed from wishlist", decode(t, rec)["message"])

	rec = s.do(http.MethodDelete, "/wishlist/"+itemID, nil, buyer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Wishlist item not found", decode(t, rec)["message"])
}
