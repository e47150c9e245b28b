package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	reviewService usecase.ReviewService,
	auth *middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/reviews", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/product/{id}", reviewHandler.GetProductReviews)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.With(middleware.RoleGuard(entity.RoleCustomer)).Post("/", reviewHandler.CreateReview)

			// author or admin
			r.With(middleware.OwnershipGuard("review", "id", reviewService.ReviewOwner, log)).Patch("/{id}", reviewHandler.UpdateReview)
			r.With(middleware.OwnershipGuard("review", "id", reviewService.ReviewOwner, log)).Delete("/{id}", reviewHandler.DeleteReview)
		})
	})
}
