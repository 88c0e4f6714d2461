package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createWebhook(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req webhook.CreateWebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	w, err := s.webhookService.Create(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, &webhook.CreateWebhookResponse{Webhook: *w, Secret: w.Secret})
}

func (s *Server) listWebhooks(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	webhooks, err := s.webhookService.List(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"webhooks": webhooks, "count": len(webhooks)})
}

func (s *Server) deleteWebhook(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("webhook_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook ID")
	}
	if err := s.webhookService.Delete(c.Request().Context(), email, c.Param("realm"), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getWebhookLogs(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("webhook_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook ID")
	}
	logs, err := s.webhookService.Logs(c.Request().Context(), email, c.Param("realm"), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"logs": logs, "count": len(logs)})
}
