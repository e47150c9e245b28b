package usecase

import (
	"context"
	"testing"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/mocks"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWishlistService_AddAndList(t *testing.T) {
	stores := mocks.NewStores()
	svc := NewWishlistService(stores.Repository(), zap.NewNop())
	caller := &utils.Identity{UserID: uuid.New()}

	titles := []string{"Hammer", "Saw", "Drill"}
	for _, title := range titles {
		product := seedProduct(t, stores, title, 10, 0, 1)
		_, err := svc.AddToWishlist(context.Background(), caller, &request.AddToWishlistRequest{ProductID: product.ID.String()})
		require.NoError(t, err)
	}

	page, err := svc.GetWishlist(context.Background(), caller.UserID, &request.PaginatedRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Drill", page.Items[0].Product.Title)

	page, err = svc.GetWishlist(context.Background(), caller.UserID, &request.PaginatedRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hammer", page.Items[0].Product.Title)

	empty, err := svc.GetWishlist(context.Background(), uuid.New(), &request.PaginatedRequest{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestWishlistService_Rules(t *testing.T) {
	stores := mocks.NewStores()
	svc := NewWishlistService(stores.Repository(), zap.NewNop())
	product := seedProduct(t, stores, "Hammer", 10, 0, 1)
	caller := &utils.Identity{UserID: uuid.New()}
	note := "for the shed"

	created, err := svc.AddToWishlist(context.Background(), caller, &request.AddToWishlistRequest{
		ProductID: product.ID.String(),
		Note:      &note,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Note)
	assert.Equal(t, note, *created.Note)

	_, err = svc.AddToWishlist(context.Background(), caller, &request.AddToWishlistRequest{ProductID: product.ID.String()})
	assertKind(t, err, ErrConflict, "Product is already in your wishlist")

	_, err = svc.AddToWishlist(context.Background(), caller, &request.AddToWishlistRequest{ProductID: uuid.NewString()})
	assertKind(t, err, ErrNotFound, "Product not found")

	itemID := uuid.MustParse(created.ID)
	cleared, err := svc.UpdateWishlistItem(context.Background(), itemID, &request.UpdateWishlistItemRequest{})
	require.NoError(t, err)
	assert.Nil(t, cleared.Note)
	assert.Equal(t, "Hammer", cleared.Product.Title)

	owner, found, err := svc.WishlistItemOwner(context.Background(), itemID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, caller.UserID, owner)

	require.NoError(t, svc.RemoveWishlistItem(context.Background(), itemID))
	assertKind(t, svc.RemoveWishlistItem(context.Background(), itemID), ErrNotFound, "Wishlist item not found")

	_, found, err = svc.WishlistItemOwner(context.Background(), itemID)
	require.NoError(t, err)
	assert.False(t, found)
}
