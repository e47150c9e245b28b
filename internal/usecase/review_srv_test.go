package usecase

import (
	"context"
	"testing"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/mocks"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReviewFixture(t *testing.T) (*mocks.Stores, ReviewService, *entity.Product) {
	t.Helper()
	stores := mocks.NewStores()
	now := time.Now()
	product := &entity.Product{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:    "Hammer",
		VendorID: uuid.New(),
	}
	require.NoError(t, stores.Product.Create(context.Background(), product))
	return stores, NewReviewService(stores.Repository(), zap.NewNop()), product
}

func TestReviewService_CreateReview(t *testing.T) {
	stores, svc, product := newReviewFixture(t)
	customer := seedUser(stores.User, entity.RoleCustomer, true)
	caller := &utils.Identity{UserID: customer.ID, Name: customer.Name, Role: "customer"}
	comment := "solid"

	got, err := svc.CreateReview(context.Background(), caller, &request.CreateReviewRequest{
		ProductID: product.ID.String(),
		Rating:    4,
		Comment:   &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID.String(), got.User)
	assert.Equal(t, customer.Name, got.UserName)
	assert.Equal(t, 4, got.Rating)

	_, err = svc.CreateReview(context.Background(), caller, &request.CreateReviewRequest{
		ProductID: product.ID.String(),
		Rating:    2,
	})
	assertKind(t, err, ErrConflict, "You have already reviewed this product")

	_, err = svc.CreateReview(context.Background(), caller, &request.CreateReviewRequest{
		ProductID: uuid.NewString(),
		Rating:    2,
	})
	assertKind(t, err, ErrNotFound, "Product not found")

	_, err = svc.CreateReview(context.Background(), caller, &request.CreateReviewRequest{
		ProductID: product.ID.String(),
		Rating:    6,
	})
	assertKind(t, err, ErrValidation, "")
}

func TestReviewService_CreateReviewOnDeletedProduct(t *testing.T) {
	stores, svc, product := newReviewFixture(t)
	require.NoError(t, stores.Product.SetDeleted(context.Background(), product.ID, true))

	_, err := svc.CreateReview(context.Background(), &utils.Identity{UserID: uuid.New()}, &request.CreateReviewRequest{
		ProductID: product.ID.String(),
		Rating:    5,
	})
	assertKind(t, err, ErrNotFound, "Product not found")
}

func TestReviewService_GetProductReviews(t *testing.T) {
	stores, svc, product := newReviewFixture(t)

	for i, rating := range []int{5, 4, 3} {
		user := seedUser(stores.User, entity.RoleCustomer, true)
		caller := &utils.Identity{UserID: user.ID, Name: user.Name}
		_, err := svc.CreateReview(context.Background(), caller, &request.CreateReviewRequest{
			ProductID: product.ID.String(),
			Rating:    rating,
		})
		require.NoError(t, err, "review %d", i)
	}

	got, err := svc.GetProductReviews(context.Background(), product.ID, &request.PaginatedRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, int64(3), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)
	assert.Equal(t, int64(3), got.Stats.ReviewCount)
	assert.InDelta(t, 4.0, got.Stats.AverageRating, 0.001)
	for _, review := range got.Data {
		assert.NotEmpty(t, review.UserName)
	}

	empty, err := svc.GetProductReviews(context.Background(), uuid.New(), &request.PaginatedRequest{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
	assert.Equal(t, 1, empty.Pagination.Page)
	assert.Equal(t, 10, empty.Pagination.Limit)
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	stores, svc, product := newReviewFixture(t)
	user := seedUser(stores.User, entity.RoleCustomer, true)
	created, err := svc.CreateReview(context.Background(), &utils.Identity{UserID: user.ID}, &request.CreateReviewRequest{
		ProductID: product.ID.String(),
		Rating:    2,
	})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	rating := 5
	updated, err := svc.UpdateReview(context.Background(), reviewID, &request.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	owner, found, err := svc.ReviewOwner(context.Background(), reviewID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, user.ID, owner)

	require.NoError(t, svc.DeleteReview(context.Background(), reviewID))
	assertKind(t, svc.DeleteReview(context.Background(), reviewID), ErrNotFound, "Review not found")

	_, found, err = svc.ReviewOwner(context.Background(), reviewID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.UpdateReview(context.Background(), reviewID, &request.UpdateReviewRequest{Rating: &rating})
	assertKind(t, err, ErrNotFound, "Review not found")
}
