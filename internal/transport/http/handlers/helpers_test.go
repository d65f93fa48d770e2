package http_handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
)

// jsonReq builds a request with a raw JSON body.
func jsonReq(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// mustReadJSON decodes JSON from r into a generic map.
func mustReadJSON(t *testing.T, r io.Reader) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}

// withUserCtx injects the authenticated user id (as the Auth middleware does).
func withUserCtx(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// withURLParam injects chi URL param (e.g. /users/{id}) into request context.
func withURLParam(req *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}
