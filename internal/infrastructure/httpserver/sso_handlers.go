package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createOIDCProvider(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req identity.CreateOIDCProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.ssoService.CreateOIDC(c.Request().Context(), email, c.Param("realm"), &req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"alias": req.Alias})
}

func (s *Server) createSAMLProvider(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req identity.CreateSAMLProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.ssoService.CreateSAML(c.Request().Context(), email, c.Param("realm"), &req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"alias": req.Alias})
}

func (s *Server) listSSOProviders(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	providers, err := s.ssoService.List(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"providers": providers, "count": len(providers)})
}

func (s *Server) deleteSSOProvider(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.ssoService.Delete(c.Request().Context(), email, c.Param("realm"), c.Param("alias")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
