//go:build e2e

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/security"
)

// Runs against a live server: E2E_BASE_URL (default http://localhost:8080)
// and the server's JWT_SECRET / JWT_ISSUER.

type client struct {
	t       *testing.T
	baseURL string
	http    *http.Client
	token   string
}

func newClient(t *testing.T) *client {
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &client{t: t, baseURL: base, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func TestE2E_UserLifecycle(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		t.Skip("JWT_SECRET not set")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "user-service"
	}

	c := newClient(t)

	code, created := c.do(http.MethodPost, "/users", map[string]string{"name": "E2E", "email": "e2e@example.com"})
	require.Equal(t, http.StatusOK, code)
	id := int64(created["id"].(float64))
	assert.Positive(t, id)

	code, got := c.do(http.MethodGet, "/users/"+jsonNumber(id), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, got)

	code, _ = c.do(http.MethodPost, "/users", map[string]string{"name": "no email"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body := c.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthenticated.", body["message"])

	tok, err := security.NewJWTSigner(secret, issuer).SignAccessToken(id, time.Minute)
	require.NoError(t, err)
	c.token = tok

	code, me := c.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, me)
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
