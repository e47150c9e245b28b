package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAddress(
	r chi.Router,
	addressHandler *adaptor.AddressHandler,
	addressService usecase.AddressService,
	userService usecase.UserService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/address", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.With(middleware.RoleGuard(entity.RoleCustomer)).Post("/", addressHandler.CreateAddress)
		r.With(middleware.OwnershipGuard("user", "id", userService.UserOwner, log)).Get("/user/{id}", addressHandler.GetUserAddresses)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OwnershipGuard("address", "id", addressService.AddressOwner, log))

			r.Patch("/{id}", addressHandler.UpdateAddress)
			r.Delete("/{id}", addressHandler.DeleteAddress)
		})
	})
}
