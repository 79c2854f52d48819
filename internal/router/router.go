package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carhive-dev/carhive/internal/middleware/metrics"
	"github.com/carhive-dev/carhive/internal/setup"
)

// New creates and configures the chi router with all routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler

	r.Get("/healthz", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Auth routes (public)
	r.Post("/api/signup", h.Signup)
	r.Post("/api/login", h.Login)

	// Listing routes (bearer token required)
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.NeedAuth())

		r.Post("/addcars", h.AddCar)
		r.Get("/cars", h.GetCars)
		r.Get("/cars/me", h.GetMyCars)
		r.Get("/cars/search", h.SearchCars)
		r.Post("/cars/update/{carId}", h.UpdateCar)
		r.Delete("/cars/delete/{carId}", h.DeleteCar)
	})

	return r
}
