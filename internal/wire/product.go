package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	productService usecase.ProductService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/products", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// identity is optional, myProducts needs it
		r.With(auth.OptionalAuthenticate).Get("/", productHandler.GetProducts)
		r.Get("/{id}", productHandler.GetProductByID)

		// ==================== VENDOR ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.With(
				middleware.RoleGuard(entity.RoleVendor, entity.RoleAdmin),
				middleware.ApprovedVendorGuard(),
			).Post("/", productHandler.CreateProduct)

			r.With(middleware.RoleGuard(entity.RoleVendor)).Get("/vendor/my-products", productHandler.GetMyProducts)

			// owner or admin
			r.Group(func(r chi.Router) {
				r.Use(middleware.RoleGuard(entity.RoleVendor, entity.RoleAdmin))
				r.Use(middleware.ApprovedVendorGuard())
				r.Use(middleware.OwnershipGuard("product", "id", productService.ProductOwner, log))

				r.Patch("/{id}", productHandler.UpdateProduct)
				r.Patch("/undelete/{id}", productHandler.UndeleteProduct)
				r.Delete("/{id}", productHandler.DeleteProduct)
			})
		})
	})
}
