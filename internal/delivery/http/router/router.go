package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/travel-deals-service/internal/delivery/http/handler"
	"github.com/user/travel-deals-service/internal/delivery/http/middleware"
)

// New builds the API router. Scrape routes drive a real browser, so requestTimeout
// must cover a full price-grid run.
func New(h *handler.Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)

		r.Post("/deals/scrape", h.HandleScrapeDeals)
		r.Post("/price-grid/scrape", h.HandleScrapePriceGrid)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/destinations", h.HandleTripDestinations)
			r.Post("/offers", h.HandleDestinationOffers)
			r.Post("/itinerary", h.HandleItinerary)
		})
	})

	return r
}
