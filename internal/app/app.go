package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sukh767/Volt-Vogue/internal/cache"
	"github.com/Sukh767/Volt-Vogue/internal/config"
	"github.com/Sukh767/Volt-Vogue/internal/database"
	"github.com/Sukh767/Volt-Vogue/internal/handler"
	"github.com/Sukh767/Volt-Vogue/internal/middleware"
	"github.com/Sukh767/Volt-Vogue/internal/payment"
	"github.com/Sukh767/Volt-Vogue/internal/repository"
	"github.com/Sukh767/Volt-Vogue/internal/router"
	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/internal/session"
	"github.com/Sukh767/Volt-Vogue/internal/storage"
	"github.com/Sukh767/Volt-Vogue/internal/token"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	slog.Info("connecting to MongoDB")
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("connecting to Redis")
	rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Database)
	productRepo := repository.NewProductRepository(db.Database)
	couponRepo := repository.NewCouponRepository(db.Database)
	orderRepo := repository.NewOrderRepository(db.Database)
	slog.Info("database ready")

	codec, err := token.NewCodec(token.Config{
		AccessSecret:  []byte(cfg.JWTAccessSecret),
		RefreshSecret: []byte(cfg.JWTRefreshSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	if err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	sessions := session.NewStore(rdb, cfg.RefreshTokenTTL)
	catalogCache := cache.NewCatalogCache(rdb, productRepo, cfg.FeaturedCacheTTL)

	assets, err := storage.NewAssetStore(cfg.AssetRoot, cfg.AssetPublicURL)
	if err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to initialize asset store: %w", err)
	}

	authService := service.NewAuthService(userRepo, sessions, codec)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	cookies := handler.CookiePolicy{
		Secure:        cfg.CookieSecure,
		AccessMaxAge:  cfg.AccessTokenTTL,
		RefreshMaxAge: cfg.RefreshTokenTTL,
	}

	productService := service.NewProductService(productRepo, catalogCache, assets)
	cartService := service.NewCartService(userRepo, productRepo)
	couponService := service.NewCouponService(couponRepo)
	gateway := payment.NewSandboxGateway("http://localhost:" + cfg.ServerPort + "/checkout-success")
	paymentService := service.NewPaymentService(gateway, orderRepo, productRepo, couponRepo)
	analyticsService := service.NewAnalyticsService(userRepo, productRepo, orderRepo)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"mongodb": db.Health,
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Auth:      handler.NewAuthHandler(authService, cookies),
		Product:   handler.NewProductHandler(productService),
		Cart:      handler.NewCartHandler(cartService),
		Coupon:    handler.NewCouponHandler(couponService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
	}, assets.RootAbs())

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				db.Close(shutdownCtx)
			},
			func() {
				_ = rdb.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
