package middleware

import (
	"context"
	"fmt"
	"net/http"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleGuard lets the request through only for the listed roles.
func RoleGuard(roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Please login first")
				return
			}

			for _, role := range roles {
				if identity.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.ResponseForbidden(w, fmt.Sprintf("Role (%s) is not allowed to access this resource", identity.Role))
		})
	}
}

// ApprovedVendorGuard blocks vendors an admin has not approved yet. Other
// roles pass untouched.
func ApprovedVendorGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Please login first")
				return
			}

			if identity.Role == string(entity.RoleVendor) && !identity.IsApproved {
				utils.ResponseForbidden(w, "Your vendor account is pending approval from admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerLookup returns the owner of the resource with the given id. found is
// false when no such resource exists.
type OwnerLookup func(ctx context.Context, id uuid.UUID) (owner uuid.UUID, found bool, err error)

// OwnershipGuard loads the resource named by the chi URL param and requires
// the caller to own it. Administrators bypass the ownership check.
func OwnershipGuard(resource string, param string, lookup OwnerLookup, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentity(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Please login first")
				return
			}

			id, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				utils.ResponseBadRequest(w, fmt.Sprintf("Invalid %s id", resource), nil)
				return
			}

			owner, found, err := lookup(r.Context(), id)
			if err != nil {
				log.Error("Failed to check ownership",
					zap.Error(err),
					zap.String("resource", resource),
					zap.String("id", id.String()),
				)
				utils.ResponseInternalError(w, fmt.Sprintf("Error checking %s ownership", resource))
				return
			}
			if !found {
				utils.ResponseNotFound(w, fmt.Sprintf("%s not found", capitalize(resource)))
				return
			}

			if owner != identity.UserID && !identity.IsAdministrator() {
				log.Warn("Ownership check failed",
					zap.String("resource", resource),
					zap.String("id", id.String()),
					zap.String("user_id", identity.UserID.String()),
				)
				utils.ResponseForbidden(w, fmt.Sprintf("You are not authorized to perform this action on this %s", resource))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
