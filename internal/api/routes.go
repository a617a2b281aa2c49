package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HandleHealth)

	// Entry points: the tracking parameter on the root, and the short
	// redirect path embedded in QR codes. Both must resolve before any
	// dashboard data is served.
	r.Get("/", h.HandleRoot)
	r.Get("/s/{id}", h.tracker.HandleScan)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.HandleStatus)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.HandleListCampaigns)
			r.Post("/", h.HandleCreateCampaign)
			r.Get("/{id}", h.HandleGetCampaign)
			r.Delete("/{id}", h.HandleDeleteCampaign)
			r.Get("/{id}/qr.png", h.HandleCampaignQR)
			r.Post("/{id}/scans", h.HandleSimulateScan)
		})

		r.Get("/scans", h.HandleListScans)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", h.HandleAnalyticsSummary)
			r.Get("/insight", h.HandleAnalyticsInsight)
			r.Get("/export.csv", h.HandleExportCSV)
		})

		r.Post("/suggestions/cta", h.HandleSuggestCTA)
	})

	return r
}
