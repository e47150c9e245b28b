package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWishlist(
	r chi.Router,
	wishlistHandler *adaptor.WishlistHandler,
	wishlistService usecase.WishlistService,
	userService usecase.UserService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/wishlist", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.With(middleware.RoleGuard(entity.RoleCustomer)).Post("/", wishlistHandler.AddToWishlist)
		r.With(middleware.OwnershipGuard("user", "id", userService.UserOwner, log)).Get("/user/{id}", wishlistHandler.GetWishlist)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnershipGuard("wishlist item", "id", wishlistService.WishlistItemOwner, log))

			r.Patch("/{id}", wishlistHandler.UpdateWishlistItem)
			r.Delete("/{id}", wishlistHandler.RemoveWishlistItem)
		})
	})
}
