package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает веб-маршруты, JSON API под /api и /health.
func NewRouter(web *WebHandler, api *APIHandler, corsOrigins []string, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/", web.Home)
	r.Get("/listings", web.AllListings)
	r.Get("/listings/filter", web.FilterListings)
	r.Get("/listing/{id}", web.ListingDetails)
	r.Get("/search", web.SearchForm)
	r.Post("/search", web.Search)
	r.Post("/search/listing", web.Search)
	r.Get("/quick-search", web.QuickSearch)
	r.Get("/add-listing", web.AddListingForm)
	r.Post("/add-listing", web.AddListing)
	r.Get("/edit-listing/{id}", web.EditListingForm)
	r.Post("/update-listing/{id}", web.UpdateListing)
	r.Post("/delete-listing/{id}", web.DeleteListing)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}))

		r.Get("/listings", api.ListListings)
		r.Post("/listings", api.CreateListing)
		r.Put("/listings/{id}", api.UpdateListing)
		r.Delete("/listings/{id}", api.DeleteListing)
		r.Get("/listing/{id}", api.GetListing)
	})

	r.NotFound(web.NotFound)
	r.MethodNotAllowed(web.NotFound)

	return r
}

func NewServer(listenPort string, handler http.Handler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + listenPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
