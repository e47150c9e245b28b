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

func seedUser(store *mocks.UserStore, role entity.UserRole, approved bool) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:       string(role) + " user",
		Email:      uuid.NewString() + "@x.com",
		Role:       role,
		IsApproved: approved,
		IsAdmin:    role == entity.RoleAdmin,
	}
	store.Put(user)
	return user
}

func TestUserService_ApproveVendor(t *testing.T) {
	users := mocks.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	vendor := seedUser(users, entity.RoleVendor, false)
	customer := seedUser(users, entity.RoleCustomer, true)

	t.Run("approve then revoke", func(t *testing.T) {
		got, err := svc.ApproveVendor(context.Background(), vendor.ID.String(), &request.ApproveVendorRequest{IsApproved: true})
		require.NoError(t, err)
		assert.True(t, got.IsApproved)
		assert.True(t, users.Get(vendor.ID).IsApproved)

		got, err = svc.ApproveVendor(context.Background(), vendor.ID.String(), &request.ApproveVendorRequest{IsApproved: false})
		require.NoError(t, err)
		assert.False(t, got.IsApproved)
		assert.False(t, users.Get(vendor.ID).IsApproved)
	})

	tests := []struct {
		name    string
		id      string
		flag    any
		kind    error
		message string
	}{
		{name: "string flag", id: vendor.ID.String(), flag: "true", kind: ErrBadRequest, message: "isApproved must be a boolean value"},
		{name: "missing flag", id: vendor.ID.String(), flag: nil, kind: ErrBadRequest, message: "isApproved must be a boolean value"},
		{name: "numeric flag", id: vendor.ID.String(), flag: float64(1), kind: ErrBadRequest, message: "isApproved must be a boolean value"},
		{name: "not a vendor", id: customer.ID.String(), flag: true, kind: ErrBadRequest, message: "User is not a vendor"},
		{name: "absent", id: uuid.NewString(), flag: true, kind: ErrNotFound, message: "Vendor not found"},
		{name: "malformed id", id: "abc", flag: true, kind: ErrNotFound, message: "Vendor not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApproveVendor(context.Background(), tt.id, &request.ApproveVendorRequest{IsApproved: tt.flag})
			assertKind(t, err, tt.kind, tt.message)
		})
	}

	assert.True(t, users.Get(customer.ID).IsApproved)
	assert.Equal(t, entity.RoleCustomer, users.Get(customer.ID).Role)
}

func TestUserService_ListVendors(t *testing.T) {
	users := mocks.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	seedUser(users, entity.RoleVendor, false)
	seedUser(users, entity.RoleVendor, true)
	seedUser(users, entity.RoleCustomer, true)

	vendors, err := svc.ListVendors(context.Background())
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	for _, v := range vendors {
		assert.Equal(t, entity.RoleVendor, v.Role)
	}
}

func TestUserService_UpdateUserOnlyChangesName(t *testing.T) {
	users := mocks.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	customer := seedUser(users, entity.RoleCustomer, true)

	name := "  Renamed "
	got, err := svc.UpdateUser(context.Background(), customer.ID, &request.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	stored := users.Get(customer.ID)
	assert.Equal(t, entity.RoleCustomer, stored.Role)
	assert.False(t, stored.IsAdmin)
	assert.Equal(t, customer.Email, stored.Email)

	blank := "   "
	_, err = svc.UpdateUser(context.Background(), customer.ID, &request.UpdateUserRequest{Name: &blank})
	assertKind(t, err, ErrValidation, "")

	_, err = svc.UpdateUser(context.Background(), uuid.New(), &request.UpdateUserRequest{Name: &name})
	assertKind(t, err, ErrNotFound, "User not found")
}

func TestUserService_SeedAdmin(t *testing.T) {
	users := mocks.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	seed := utils.SeedConfig{AdminName: "Root", AdminEmail: "Root@X.com", AdminPassword: "secret123"}

	created, err := svc.SeedAdmin(context.Background(), seed)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := users.FindByEmail(context.Background(), "root@x.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsVerified)
	assert.True(t, admin.IsApproved)

	created, err = svc.SeedAdmin(context.Background(), seed)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.SeedAdmin(context.Background(), utils.SeedConfig{})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUserService_UserOwner(t *testing.T) {
	users := mocks.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	customer := seedUser(users, entity.RoleCustomer, true)

	owner, found, err := svc.UserOwner(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, customer.ID, owner)

	_, found, err = svc.UserOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}
