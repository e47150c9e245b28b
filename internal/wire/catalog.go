package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// wireCatalog mounts a public list and an admin-only create under prefix.
func wireCatalog(r chi.Router, prefix string, catalogHandler *adaptor.CatalogHandler, auth *middleware.Authenticator) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", catalogHandler.List)
		r.With(
			auth.Authenticate,
			middleware.RoleGuard(entity.RoleAdmin),
		).Post("/", catalogHandler.Create)
	})
}
