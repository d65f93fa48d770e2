package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type UsersHandler interface {
	Store(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Users  UsersHandler

	AuthMW func(http.Handler) http.Handler
	// RateLimitMW is optional; nil disables rate limiting.
	RateLimitMW func(http.Handler) http.Handler
	// Metrics defaults to the prometheus default registry handler.
	Metrics http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, response.ErrorBody{Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusMethodNotAllowed, response.ErrorBody{Message: "Method Not Allowed"})
	})

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", deps.Metrics)

	r.Group(func(r chi.Router) {
		if deps.RateLimitMW != nil {
			r.Use(deps.RateLimitMW)
		}

		r.Post("/users", deps.Users.Store)
		r.Get("/users/{id:[-+]?[0-9]+}", deps.Users.Show)
		r.With(deps.AuthMW).Get("/user", deps.Users.Me)
	})

	return r, nil
}
