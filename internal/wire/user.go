package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures vendor administration and self-service profile routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	userService usecase.UserService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(auth.Authenticate)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleGuard(entity.RoleAdmin))

			r.Get("/vendors/all", userHandler.ListVendors)
			r.Patch("/vendors/approve/{id}", userHandler.ApproveVendor)
		})

		// ==================== SELF OR ADMIN ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnershipGuard("user", "id", userService.UserOwner, log))

			r.Get("/{id}", userHandler.GetUser)
			r.Patch("/{id}", userHandler.UpdateUser)
		})
	})
}
