package adaptor

import (
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Product  *ProductHandler
	Brand    *CatalogHandler
	Category *CatalogHandler
	Review   *ReviewHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Address  *AddressHandler
	Order    *OrderHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, health *HealthHandler, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config.Cookie, config.JWT.LoginExpiry, log),
		User:     NewUserHandler(service.User, log),
		Product:  NewProductHandler(service.Product, log),
		Brand:    NewCatalogHandler(service.Brand, "brand", log),
		Category: NewCatalogHandler(service.Category, "category", log),
		Review:   NewReviewHandler(service.Review, log),
		Cart:     NewCartHandler(service.Cart, log),
		Wishlist: NewWishlistHandler(service.Wishlist, log),
		Address:  NewAddressHandler(service.Address, log),
		Order:    NewOrderHandler(service.Order, log),
		Health:   health,
	}
}
