package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rumibeauty/storefront/pkg/health"
	"github.com/rumibeauty/storefront/pkg/middleware"

	"github.com/rumibeauty/storefront/internal/admin"
	"github.com/rumibeauty/storefront/internal/advisor"
	"github.com/rumibeauty/storefront/internal/cart"
	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/ledger"
	"github.com/rumibeauty/storefront/internal/notice"
	"github.com/rumibeauty/storefront/internal/session"
	"github.com/rumibeauty/storefront/internal/storage"
)

// RouterConfig collects everything the router wires together.
type RouterConfig struct {
	Catalog        *catalog.Service
	Cart           *cart.Service
	Advisor        *advisor.Service
	Auth           *admin.Authenticator
	Sessions       session.Store
	Ledger         *ledger.Ledger
	Notices        *notice.Recorder
	Objects        storage.ObjectStore
	Health         *health.Handler
	CORS           middleware.CORSConfig
	WhatsAppNumber string
	UploadBucket   string
	AdvisorRPS     float64
	AdvisorBurst   int
	Logger         *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.Objects, cfg.WhatsAppNumber, cfg.UploadBucket, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Cart, cfg.Logger)
	viewHandler := NewViewHandler(cfg.Sessions, cfg.Catalog, cfg.Ledger, cfg.Auth, cfg.Logger)
	advisorHandler := NewAdvisorHandler(cfg.Advisor, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Auth, cfg.Logger)
	noticeHandler := NewNoticeHandler(cfg.Notices)
	aboutHandler := NewAboutHandler()

	// Public catalog endpoints
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/best-sellers", catalogHandler.BestSellers)
		r.Get("/subcategories", catalogHandler.Subcategories)
		r.Get("/{id}", catalogHandler.GetProduct)
		r.Get("/{id}/buy-link", catalogHandler.BuyLink)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession, ContentTypeJSON)
			r.Post("/{id}/reviews", catalogHandler.CreateReview)
		})
	})

	// Brand content
	r.Get("/api/v1/about/{section}", aboutHandler.GetSection)

	// Session-scoped endpoints
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(RequireSession, ContentTypeJSON)

		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddToCart)
		r.Patch("/items/{productId}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveFromCart)
		r.Post("/checkout", cartHandler.Checkout)
	})

	r.Route("/api/v1/view", func(r chi.Router) {
		r.Use(RequireSession, ContentTypeJSON)

		r.Get("/", viewHandler.GetView)
		r.Post("/navigate", viewHandler.Navigate)
		r.Post("/select-product", viewHandler.SelectProduct)
		r.Post("/search", viewHandler.Search)
		r.Post("/category", viewHandler.SetCategory)
	})

	r.Route("/api/v1/advisor", func(r chi.Router) {
		r.Use(RequireSession, ContentTypeJSON)

		r.Get("/messages", advisorHandler.GetTranscript)
		r.With(middleware.RateLimit(cfg.AdvisorRPS, cfg.AdvisorBurst, cfg.Logger)).
			Post("/messages", advisorHandler.SendMessage)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireSession)
		r.Get("/api/v1/notices", noticeHandler.GetNotices)
	})

	// Admin endpoints
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(cfg.Auth))

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)
				r.Post("/products", catalogHandler.CreateProduct)
				r.Put("/products/{id}", catalogHandler.UpdateProduct)
				r.Post("/products/import", catalogHandler.ImportProducts)
			})
			r.Delete("/products/{id}", catalogHandler.DeleteProduct)
			r.Post("/uploads", catalogHandler.UploadImage)
		})
	})

	return r
}
