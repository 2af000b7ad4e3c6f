package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/api/middleware"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/handlers"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/scanner"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, svc *scanner.Service, t transport.Transport) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(256 * 1024)) // webhook bodies carry full message text
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the UI is served from a separate dev origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(svc, t, logger)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	r.Route("/api/whatsapp", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/qr", h.QRCode)
		r.Post("/disconnect", h.Disconnect)

		r.Get("/groups", h.ListGroups)
		r.Post("/groups/{id}", h.UpdateGroup)

		r.Get("/items", h.ActiveItems)
		r.Get("/items/sold", h.SoldItems)
		r.Get("/items/recent", h.RecentItems)
		r.Get("/items/recent/sold", h.RecentSoldItems)

		r.Post("/sync", h.Sync)
		r.Post("/webhook", h.Webhook)
	})

	return r
}
