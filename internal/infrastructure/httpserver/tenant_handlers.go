package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createTenant(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req tenant.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t, err := s.tenantService.Create(c.Request().Context(), email, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) listTenants(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	overviews, err := s.tenantService.List(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tenants": overviews, "count": len(overviews)})
}

func (s *Server) getTenant(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	overview, err := s.tenantService.Get(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (s *Server) updateTenant(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req tenant.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t, err := s.tenantService.Update(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTenant(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.tenantService.Delete(c.Request().Context(), email, c.Param("realm")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateAuthSettings(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req tenant.UpdateAuthSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	settings, err := s.tenantService.UpdateAuthSettings(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (s *Server) updateBranding(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req tenant.UpdateBrandingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	branding, err := s.tenantService.UpdateBranding(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, branding)
}

func (s *Server) createClient(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req identity.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := s.tenantService.CreateClient(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id, "client_id": req.ClientID})
}

func (s *Server) listClients(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	clients, err := s.tenantService.ListClients(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"clients": clients, "count": len(clients)})
}

func (s *Server) deleteClient(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.tenantService.DeleteClient(c.Request().Context(), email, c.Param("realm"), c.Param("client_id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
