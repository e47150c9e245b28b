package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder configures checkout, order history and fulfilment routes
func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	orderService usecase.OrderService,
	userService usecase.UserService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.With(middleware.RoleGuard(entity.RoleCustomer)).Post("/", orderHandler.PlaceOrder)
		r.With(middleware.OwnershipGuard("user", "id", userService.UserOwner, log)).Get("/user/{id}", orderHandler.GetUserOrders)
		r.With(middleware.OwnershipGuard("order", "id", orderService.OrderOwner, log)).Patch("/cancel/{id}", orderHandler.CancelOrder)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleGuard(entity.RoleAdmin))

			r.Get("/", orderHandler.GetOrders)
			r.Patch("/{id}", orderHandler.UpdateOrderStatus)
		})
	})
}
