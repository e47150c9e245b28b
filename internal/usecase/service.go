package usecase

import (
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/pkg/mailer"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/throttle"
	"ecommerce-rbac/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Product  ProductService
	Brand    CatalogService
	Category CatalogService
	Review   ReviewService
	Cart     CartService
	Wishlist WishlistService
	Address  AddressService
	Order    OrderService
}

func NewService(
	repo *repository.Repository,
	issuer *session.Issuer,
	mail mailer.Sender,
	cooldown throttle.Cooldown,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, issuer, mail, cooldown, config, log),
		User:     NewUserService(repo.User, log),
		Product:  NewProductService(repo, log),
		Brand:    NewCatalogService(repo.Brand, "Brand", log),
		Category: NewCatalogService(repo.Category, "Category", log),
		Review:   NewReviewService(repo, log),
		Cart:     NewCartService(repo, log),
		Wishlist: NewWishlistService(repo, log),
		Address:  NewAddressService(repo.Address, log),
		Order:    NewOrderService(repo, log),
	}
}
