package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	cartService usecase.CartService,
	userService usecase.UserService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.With(middleware.RoleGuard(entity.RoleCustomer)).Post("/", cartHandler.AddToCart)

		// ==================== SELF OR ADMIN ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnershipGuard("user", "id", userService.UserOwner, log))

			r.Get("/user/{id}", cartHandler.GetCart)
			r.Delete("/user/{id}", cartHandler.ClearCart)
		})

		// ==================== ITEM OWNER OR ADMIN ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnershipGuard("cart item", "id", cartService.CartItemOwner, log))

			r.Patch("/{id}", cartHandler.UpdateCartItem)
			r.Delete("/{id}", cartHandler.RemoveCartItem)
		})
	})
}
