package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/HoaDang0803/ShineOn/api/routes"
	"github.com/HoaDang0803/ShineOn/internal/appstate"
	authsvc "github.com/HoaDang0803/ShineOn/internal/auth"
	cartsvc "github.com/HoaDang0803/ShineOn/internal/cart"
	catalogsvc "github.com/HoaDang0803/ShineOn/internal/catalog"
	profilesvc "github.com/HoaDang0803/ShineOn/internal/profile"
	"github.com/HoaDang0803/ShineOn/internal/users"
	"github.com/HoaDang0803/ShineOn/internal/userstore"
	wishlistsvc "github.com/HoaDang0803/ShineOn/internal/wishlist"
	"github.com/HoaDang0803/ShineOn/pkg/auth/session"
	"github.com/HoaDang0803/ShineOn/pkg/config"
	"github.com/HoaDang0803/ShineOn/pkg/db"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
	"github.com/HoaDang0803/ShineOn/pkg/metrics"
	"github.com/HoaDang0803/ShineOn/pkg/migrate"
	"github.com/HoaDang0803/ShineOn/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	closeClients := func() {
		err := multierr.Combine(dbClient.Close(), redisClient.Close())
		if err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}
	defer closeClients()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userStore, err := userstore.NewRepository(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create user store", err)
		os.Exit(1)
	}

	catalogClient, err := catalogsvc.NewClient(cfg.Catalog, logg, httpMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	states := appstate.NewRegistry()

	catalogService, err := catalogsvc.NewService(catalogsvc.ServiceParams{
		Gateway:   catalogClient,
		Favorites: userStore,
		States:    states,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:       userStore,
		States:      states,
		ShippingFee: int64(cfg.Cart.ShippingFee),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Favorites: userStore,
		Cart:      userStore,
		States:    states,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	profileService, err := profilesvc.NewService(userStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	var verifier authsvc.FederatedVerifier
	if cfg.Federated.ProviderSecret != "" {
		verifier, err = authsvc.NewFederatedVerifier(cfg.Federated)
		if err != nil {
			logg.Error(context.Background(), "failed to create federated verifier", err)
			os.Exit(1)
		}
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		Verifier:       verifier,
		States:         states,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionChecker: sessionManager,
			HTTPMetrics:    httpMetrics,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Auth:           authService,
			Catalog:        catalogService,
			Cart:           cartService,
			Wishlist:       wishlistService,
			Profile:        profileService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeClients()
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
