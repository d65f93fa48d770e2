package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindBadRequest     ErrKind = "bad_request"    // 400
	KindValidation     ErrKind = "validation"     // 422
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code
// - Message: safe summary for clients
// - Meta: optional details; for validation errors it maps field -> reason
// - Cause: wrapped internal error for logging
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Input errors (400 / 422)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindBadRequest, "invalid_json", "invalid JSON body", cause)
}

// ErrValidation carries one reason per failing field.
// Message is the reason of the first field in alphabetical order so the
// summary stays stable across runs.
func ErrValidation(fields map[string]string) *Error {
	msg := "the given data was invalid"
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msg = fields[keys[0]]
	}
	return WithMeta(New(KindValidation, "validation_failed", msg), fields)
}

// ----------------------
// Auth (401)
// ----------------------

func ErrUnauthenticated() *Error {
	return New(KindAuth, "unauthenticated", "Unauthenticated.")
}

// ErrTokenInvalid keeps the verification failure as cause for logs while the
// client only ever sees the generic unauthenticated message.
func ErrTokenInvalid(cause error) *Error {
	return Wrap(KindAuth, "unauthenticated", "Unauthenticated.", cause)
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(routeKey string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{"route": routeKey})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "internal error", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
