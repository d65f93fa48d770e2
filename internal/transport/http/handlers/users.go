package http_handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/validate"
)

type UserCreator interface {
	Execute(ctx context.Context, name, email string) (domain.User, error)
}

type UserGetter interface {
	Execute(ctx context.Context, id int64) (domain.User, bool, error)
}

type UsersHandler struct {
	create UserCreator
	get    UserGetter
}

func NewUsersHandler(create UserCreator, get UserGetter) *UsersHandler {
	return &UsersHandler{create: create, get: get}
}

// Store handles POST /users
func (h *UsersHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := validate.Body(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.create.Execute(r.Context(), req.Name, req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.UsersCreatedTotal.Inc()
	response.OK(w, dto.FromUser(u))
}

// Show handles GET /users/{id}
func (h *UsersHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// no stored id can overflow int64, so the user cannot exist
		middleware.UserLookupsTotal.WithLabelValues("not_found").Inc()
		response.WriteError(w, r, domain.ErrUserNotFound())
		return
	}

	u, ok, err := h.get.Execute(r.Context(), id)
	if err != nil {
		middleware.UserLookupsTotal.WithLabelValues("error").Inc()
		response.WriteError(w, r, err)
		return
	}
	if !ok {
		middleware.UserLookupsTotal.WithLabelValues("not_found").Inc()
		response.WriteError(w, r, domain.ErrUserNotFound())
		return
	}

	middleware.UserLookupsTotal.WithLabelValues("found").Inc()
	response.OK(w, dto.FromUser(u))
}

// Me handles GET /user: the user the bearer token was issued for.
// A valid token whose subject no longer resolves is still unauthenticated.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	u, found, err := h.get.Execute(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if !found {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	response.OK(w, dto.FromUser(u))
}
