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

func homeAddress() *request.CreateAddressRequest {
	return &request.CreateAddressRequest{
		Type:        "Home",
		Street:      "12 Baker Street",
		City:        "London",
		State:       "Greater London",
		PostalCode:  "NW1 6XE",
		Country:     "UK",
		PhoneNumber: "+447700900123",
	}
}

func TestAddressService(t *testing.T) {
	svc := NewAddressService(mocks.NewAddressStore(), zap.NewNop())
	caller := &utils.Identity{UserID: uuid.New()}

	created, err := svc.CreateAddress(context.Background(), caller, homeAddress())
	require.NoError(t, err)
	assert.Equal(t, "London", created.City)
	assert.Equal(t, caller.UserID.String(), created.User)

	invalid := homeAddress()
	invalid.Street = ""
	_, err = svc.CreateAddress(context.Background(), caller, invalid)
	assertKind(t, err, ErrValidation, "")

	addressID := uuid.MustParse(created.ID)
	city := "Leeds"
	updated, err := svc.UpdateAddress(context.Background(), addressID, &request.UpdateAddressRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Leeds", updated.City)
	assert.Equal(t, "12 Baker Street", updated.Street)

	listed, err := svc.GetUserAddresses(context.Background(), caller.UserID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Leeds", listed[0].City)

	_, err = svc.UpdateAddress(context.Background(), uuid.New(), &request.UpdateAddressRequest{City: &city})
	assertKind(t, err, ErrNotFound, "Address not found")

	owner, found, err := svc.AddressOwner(context.Background(), addressID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, caller.UserID, owner)

	require.NoError(t, svc.DeleteAddress(context.Background(), addressID))
	assertKind(t, svc.DeleteAddress(context.Background(), addressID), ErrNotFound, "Address not found")

	empty, err := svc.GetUserAddresses(context.Background(), caller.UserID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
