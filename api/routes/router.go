package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HoaDang0803/ShineOn/api/controllers"
	"github.com/HoaDang0803/ShineOn/api/middleware"
	authsvc "github.com/HoaDang0803/ShineOn/internal/auth"
	cartsvc "github.com/HoaDang0803/ShineOn/internal/cart"
	catalogsvc "github.com/HoaDang0803/ShineOn/internal/catalog"
	profilesvc "github.com/HoaDang0803/ShineOn/internal/profile"
	wishlistsvc "github.com/HoaDang0803/ShineOn/internal/wishlist"
	"github.com/HoaDang0803/ShineOn/pkg/auth/session"
	"github.com/HoaDang0803/ShineOn/pkg/config"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
	"github.com/HoaDang0803/ShineOn/pkg/metrics"
	"github.com/HoaDang0803/ShineOn/pkg/redis"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth     authsvc.Service
	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Wishlist wishlistsvc.Service
	Profile  profilesvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	metricsHandler := d.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		limited := middleware.LoginRateLimit(cfg.AuthRateLimit, d.Redis, logg)
		r.With(limited).Post("/login", controllers.Login(d.Auth, logg))
		r.With(limited).Post("/register", controllers.Register(d.Auth, logg))
		r.Post("/anonymous", controllers.AnonymousLogin(d.Auth, logg))
		r.Post("/federated", controllers.FederatedLogin(d.Auth, logg))
		r.Post("/refresh", controllers.Refresh(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionChecker, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/auth/logout", controllers.Logout(d.Auth, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Catalog, logg))
			r.Get("/{id}", controllers.ProductGet(d.Catalog, logg))
			r.Post("/{id}/favorite", controllers.ToggleFavorite(d.Catalog, logg))
		})

		r.Get("/brands", controllers.BrandList(d.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.Cart, logg))
			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.CartToggle(d.Cart, logg))
				r.Post("/{id}/increase", controllers.CartIncrease(d.Cart, logg))
				r.Post("/{id}/decrease", controllers.CartDecrease(d.Cart, logg))
				r.Delete("/{id}", controllers.CartRemove(d.Cart, logg))
			})
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(d.Wishlist, logg))
			r.Post("/{id}/cart", controllers.WishlistAddToCart(d.Wishlist, logg))
			r.Delete("/{id}", controllers.WishlistRemove(d.Wishlist, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(d.Profile, logg))
			r.Put("/", controllers.ProfileSave(d.Profile, logg))
		})
	})

	return r
}
