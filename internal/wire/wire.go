package wire

import (
	"ecommerce-rbac/internal/adaptor"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/usecase"
	"ecommerce-rbac/pkg/mailer"
	"ecommerce-rbac/pkg/middleware"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/throttle"
	"ecommerce-rbac/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Dependencies are the collaborators built in main from config.
type Dependencies struct {
	Repo     *repository.Repository
	Issuer   *session.Issuer
	Mailer   mailer.Sender
	Cooldown throttle.Cooldown
	Health   map[string]adaptor.HealthCheck
}

// Wiring builds services, handlers and the router.
func Wiring(deps Dependencies, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Issuer, deps.Mailer, deps.Cooldown, config, logger)
	handler := adaptor.NewHandler(service, config, adaptor.NewHealthHandler(deps.Health, logger), logger)
	auth := middleware.NewAuthenticator(deps.Issuer, deps.Repo.User, config.Cookie.Name, logger)

	return &App{
		Router:  setupRouter(handler, service, auth, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	auth *middleware.Authenticator,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.Origin))

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, service.User, auth, logger)
	wireProduct(r, handler.Product, service.Product, auth, logger)
	wireCatalog(r, "/brands", handler.Brand, auth)
	wireCatalog(r, "/categories", handler.Category, auth)
	wireReview(r, handler.Review, service.Review, auth, logger)
	wireCart(r, handler.Cart, service.Cart, service.User, auth, logger)
	wireWishlist(r, handler.Wishlist, service.Wishlist, service.User, auth, logger)
	wireAddress(r, handler.Address, service.Address, service.User, auth, logger)
	wireOrder(r, handler.Order, service.Order, service.User, auth, logger)

	r.Get("/health", handler.Health.Health)

	return r
}
