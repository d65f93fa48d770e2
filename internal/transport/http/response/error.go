package response

import (
	"errors"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
	appCtx "github.com/baechuer/real-time-ressys/services/user-service/internal/pkg/context"
)

// ErrorBody is flat: clients of the user endpoints read "message" at the top
// level. Fields other than Message are only set for the kinds that carry them.
type ErrorBody struct {
	Message   string              `json:"message"`
	Code      string              `json:"code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// WriteError converts a domain error into a JSON HTTP error response.
// Non-domain errors are treated as internal errors (500) without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	de := &domain.Error{Kind: domain.KindInternal, Code: "internal_error", Message: "internal error"}
	var target *domain.Error
	if errors.As(err, &target) {
		de = target
	}

	status := statusFromKind(de.Kind)
	body := ErrorBody{Message: de.Message}

	switch de.Kind {
	case domain.KindValidation:
		body.Errors = make(map[string][]string, len(de.Meta))
		for field, reason := range de.Meta {
			body.Errors[field] = []string{reason}
		}
	case domain.KindAuth, domain.KindNotFound:
		// message only
	default:
		body.Code = de.Code
		body.RequestID = appCtx.RequestID(r.Context())
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().
			Err(err).
			Str("code", de.Code).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	if de.Kind == domain.KindAuth {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSON(w, status, body)
}

// statusFromKind maps domain error kinds to HTTP status codes.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
