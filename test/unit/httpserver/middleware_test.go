package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/middleware"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func TestJWTMiddleware_MissingTokenReturns401(t *testing.T) {
	e := echo.New()
	m := middleware.NewJWTMiddleware(&tmocks.AuthServiceMock{}, logrus.New())
	handler := m.RequireJWT()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := handler(c)
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, htErr.Code)
}

func TestJWTMiddleware_InvalidTokenReturns401(t *testing.T) {
	e := echo.New()
	authMock := &tmocks.AuthServiceMock{ValidateTokenFn: func(tokenString string) (string, string, error) {
		return "", "", fmt.Errorf("bad")
	}}
	m := middleware.NewJWTMiddleware(authMock, logrus.New())
	handler := m.RequireJWT()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := handler(c)
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, htErr.Code)
}

func TestJWTMiddleware_SetsOwnerIdentity(t *testing.T) {
	e := echo.New()
	authMock := &tmocks.AuthServiceMock{ValidateTokenFn: func(tokenString string) (string, string, error) {
		return "owner@example.com", "Owner", nil
	}}
	m := middleware.NewJWTMiddleware(authMock, logrus.New())
	handler := m.RequireJWT()(func(c echo.Context) error {
		email, err := helpers.GetOwnerEmailFromContext(c)
		require.NoError(t, err)
		require.Equal(t, "owner@example.com", email)
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
}

func TestRateLimitMiddleware_DeniedReturns429WithHeaders(t *testing.T) {
	e := echo.New()
	reset := time.Now().Add(time.Minute)
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
		return false, 0, 100, reset, nil
	}}
	m := middleware.NewRateLimitMiddleware(rl, logrus.New())
	handler := m.Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("realm")
	c.SetParamValues("acme")
	err := handler(c)
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusTooManyRequests, htErr.Code)
	require.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, fmt.Sprintf("%d", reset.Unix()), rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitMiddleware_LimiterErrorFailsOpen(t *testing.T) {
	e := echo.New()
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
		return false, 0, 0, time.Time{}, fmt.Errorf("redis down")
	}}
	m := middleware.NewRateLimitMiddleware(rl, logrus.New())
	handler := m.Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("realm")
	c.SetParamValues("acme")
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_NoRealmParamPassesThrough(t *testing.T) {
	e := echo.New()
	called := false
	rl := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
		called = true
		return true, 0, 0, time.Time{}, nil
	}}
	m := middleware.NewRateLimitMiddleware(rl, logrus.New())
	handler := m.Handler()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	require.False(t, called)
}
