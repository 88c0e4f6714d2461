package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

// Auth handlers
func (s *Server) register(c echo.Context) error {
	var req admin.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.authSvc.Register(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) login(c echo.Context) error {
	var req admin.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) getProfile(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	a, err := s.authSvc.GetAdmin(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

// listPlans exposes the static plan table to the pricing page.
func (s *Server) listPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"plans": s.plans.List()})
}
