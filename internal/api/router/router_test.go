package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AVN-Software/seascapes-admin/config"
	"github.com/AVN-Software/seascapes-admin/internal/api/handler"
	"github.com/AVN-Software/seascapes-admin/internal/service"
	"github.com/AVN-Software/seascapes-admin/pkg/jwt"
)

func setupRouter(t *testing.T) (http.Handler, *jwt.Verifier) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{BodyLimit: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:  "router-test-secret",
			AdminRoles: []string{"admin"},
		},
	}
	verifier := jwt.NewVerifier(&cfg.Auth)
	h := handler.NewHandler(&service.Service{})
	return Setup(cfg, h, verifier, nil, zap.NewNop()), verifier
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAPIRequiresToken(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/listings", "/api/v1/seasons", "/api/v1/amenities/grouped"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestWritesRequireAdminRole(t *testing.T) {
	r, verifier := setupRouter(t)
	token, err := verifier.Sign("7b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e", "viewer", time.Hour)
	require.NoError(t, err)

	cases := []struct{ method, path string }{
		{"POST", "/api/v1/listings"},
		{"POST", "/api/v1/seasons"},
		{"PUT", "/api/v1/rate-plans/5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"},
		{"POST", "/api/v1/amenities/bulk-delete"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, tc.method+" "+tc.path)
	}
}

func TestInvalidIDRejectedBeforeService(t *testing.T) {
	r, verifier := setupRouter(t)
	token, err := verifier.Sign("7b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e", "viewer", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/listings/abc/quote?date=2025-12-24", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
