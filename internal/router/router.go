package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sukh767/Volt-Vogue/internal/config"
	"github.com/Sukh767/Volt-Vogue/internal/handler"
	"github.com/Sukh767/Volt-Vogue/internal/middleware"
	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Coupon    *handler.CouponHandler
	Payment   *handler.PaymentHandler
	Analytics *handler.AnalyticsHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers, assetRoot string) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", handlers.Health.Status)

	// Product images saved through the asset store.
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetRoot))))

	admin := authMiddleware.RequireRoles(model.RoleAdmin)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", handlers.Auth.Signup)
			auth.Post("/login", handlers.Auth.Login)
			auth.Post("/refresh", handlers.Auth.Refresh)
			auth.Post("/logout", handlers.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/profile", handlers.Auth.Profile)
		})

		api.Route("/products", func(products chi.Router) {
			products.Get("/featured", handlers.Product.Featured)
			products.Get("/category/{category}", handlers.Product.ByCategory)
			products.Get("/recommendations", handlers.Product.Recommendations)
			products.With(authMiddleware.RequireAuth, admin).Get("/", handlers.Product.List)
			products.With(authMiddleware.RequireAuth, admin).Post("/", handlers.Product.Create)
			products.With(authMiddleware.RequireAuth, admin).Patch("/{id}/featured", handlers.Product.ToggleFeatured)
			products.With(authMiddleware.RequireAuth, admin).Delete("/{id}", handlers.Product.Delete)
		})

		api.Route("/cart", func(cart chi.Router) {
			cart.Use(authMiddleware.RequireAuth)
			cart.Get("/", handlers.Cart.Items)
			cart.Post("/", handlers.Cart.Add)
			cart.Delete("/", handlers.Cart.Remove)
			cart.Put("/{id}", handlers.Cart.UpdateQuantity)
		})

		api.Route("/coupons", func(coupons chi.Router) {
			coupons.Use(authMiddleware.RequireAuth)
			coupons.Get("/", handlers.Coupon.Active)
			coupons.Post("/validate", handlers.Coupon.Validate)
		})

		api.Route("/payment", func(payment chi.Router) {
			payment.Use(authMiddleware.RequireAuth)
			payment.Post("/create-checkout-session", handlers.Payment.CreateCheckout)
			payment.Post("/checkout-success", handlers.Payment.CheckoutSuccess)
		})

		api.Route("/analytics", func(analytics chi.Router) {
			analytics.Use(authMiddleware.RequireAuth, admin)
			analytics.Get("/", handlers.Analytics.Summary)
			analytics.Get("/daily-sales", handlers.Analytics.DailySales)
		})
	})

	return r
}
