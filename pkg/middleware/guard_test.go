package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestAs(identity *utils.Identity, target string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, target, nil)
	if identity != nil {
		req = req.WithContext(utils.SetIdentity(req.Context(), identity))
	}
	return req
}

func TestRoleGuard(t *testing.T) {
	guard := RoleGuard(entity.RoleVendor, entity.RoleAdmin)(okHandler)

	tests := []struct {
		name        string
		identity    *utils.Identity
		wantStatus  int
		wantMessage string
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized, wantMessage: "Please login first"},
		{name: "customer", identity: &utils.Identity{Role: "customer"}, wantStatus: http.StatusForbidden, wantMessage: "Role (customer) is not allowed to access this resource"},
		{name: "vendor", identity: &utils.Identity{Role: "vendor"}, wantStatus: http.StatusOK},
		{name: "admin", identity: &utils.Identity{Role: "admin"}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, requestAs(tt.identity, "/"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rec))
			}
		})
	}
}

func TestApprovedVendorGuard(t *testing.T) {
	guard := ApprovedVendorGuard()(okHandler)

	tests := []struct {
		name       string
		identity   *utils.Identity
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "pending vendor", identity: &utils.Identity{Role: "vendor"}, wantStatus: http.StatusForbidden},
		{name: "approved vendor", identity: &utils.Identity{Role: "vendor", IsApproved: true}, wantStatus: http.StatusOK},
		{name: "admin is never gated", identity: &utils.Identity{Role: "admin"}, wantStatus: http.StatusOK},
		{name: "customer is never gated", identity: &utils.Identity{Role: "customer"}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, requestAs(tt.identity, "/"))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOwnershipGuard(t *testing.T) {
	owner := uuid.New()
	productID := uuid.New()
	brokenID := uuid.New()

	lookup := func(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
		switch id {
		case productID:
			return owner, true, nil
		case brokenID:
			return uuid.Nil, false, errors.New("timeout")
		}
		return uuid.Nil, false, nil
	}

	router := chi.NewRouter()
	router.With(OwnershipGuard("product", "id", lookup, zap.NewNop())).Patch("/products/{id}", okHandler)

	ownerIdentity := &utils.Identity{UserID: owner, Role: "vendor", IsApproved: true}
	otherVendor := &utils.Identity{UserID: uuid.New(), Role: "vendor", IsApproved: true}
	admin := &utils.Identity{UserID: uuid.New(), Role: "admin"}
	legacyAdmin := &utils.Identity{UserID: uuid.New(), Role: "customer", IsAdmin: true}

	tests := []struct {
		name        string
		identity    *utils.Identity
		id          string
		wantStatus  int
		wantMessage string
	}{
		{name: "anonymous", id: productID.String(), wantStatus: http.StatusUnauthorized},
		{name: "malformed id", identity: ownerIdentity, id: "abc", wantStatus: http.StatusBadRequest, wantMessage: "Invalid product id"},
		{name: "missing product", identity: ownerIdentity, id: uuid.NewString(), wantStatus: http.StatusNotFound, wantMessage: "Product not found"},
		{name: "lookup failure", identity: ownerIdentity, id: brokenID.String(), wantStatus: http.StatusInternalServerError},
		{name: "other vendor", identity: otherVendor, id: productID.String(), wantStatus: http.StatusForbidden, wantMessage: "You are not authorized to perform this action on this product"},
		{name: "owner", identity: ownerIdentity, id: productID.String(), wantStatus: http.StatusOK},
		{name: "admin bypass", identity: admin, id: productID.String(), wantStatus: http.StatusOK},
		{name: "legacy admin flag bypass", identity: legacyAdmin, id: productID.String(), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, requestAs(tt.identity, "/products/"+tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rec))
			}
		})
	}
}

func TestGuardsShortCircuitInOrder(t *testing.T) {
	called := false
	lookup := func(context.Context, uuid.UUID) (uuid.UUID, bool, error) {
		called = true
		return uuid.Nil, true, nil
	}

	router := chi.NewRouter()
	router.With(
		RoleGuard(entity.RoleVendor, entity.RoleAdmin),
		OwnershipGuard("product", "id", lookup, zap.NewNop()),
	).Patch("/products/{id}", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestAs(&utils.Identity{Role: "customer"}, "/products/"+uuid.NewString()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called, "ownership lookup must not run after a role failure")
}
