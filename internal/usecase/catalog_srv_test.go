package usecase

import (
	"context"
	"errors"
	"testing"

	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService(t *testing.T) {
	store := mocks.NewCatalogStore()
	svc := NewCatalogService(store, "Brand", zap.NewNop())

	for _, name := range []string{"Zeta", " Acme "} {
		_, err := svc.Create(context.Background(), &request.CreateCatalogItemRequest{Name: name})
		require.NoError(t, err)
	}

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Acme", items[0].Name)
	assert.Equal(t, "Acme", items[0].Label)
	assert.Equal(t, items[0].ID, items[0].Value)

	_, err = svc.Create(context.Background(), &request.CreateCatalogItemRequest{Name: "Acme"})
	assertKind(t, err, ErrConflict, "Brand already exists")

	_, err = svc.Create(context.Background(), &request.CreateCatalogItemRequest{})
	assertKind(t, err, ErrValidation, "")

	store.Err = errors.New("db down")
	_, err = svc.List(context.Background())
	assertKind(t, err, ErrInternal, "Error fetching brands")
}
