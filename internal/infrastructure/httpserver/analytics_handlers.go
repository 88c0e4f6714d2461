package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getTenantAnalytics(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	summary, err := s.analyticsSvc.TenantAnalytics(c.Request().Context(), email, c.Param("realm"), days)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) getTenantEvents(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	max, _ := strconv.Atoi(c.QueryParam("max"))
	events, err := s.analyticsSvc.Events(c.Request().Context(), email, c.Param("realm"), c.QueryParam("type"), max)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
}

func (s *Server) getDashboard(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	dashboard, err := s.analyticsSvc.Dashboard(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
