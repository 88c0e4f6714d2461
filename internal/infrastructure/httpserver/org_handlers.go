package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createOrganization(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req org.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	o, err := s.orgService.Create(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (s *Server) listOrganizations(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	orgs, err := s.orgService.List(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"organizations": orgs, "count": len(orgs)})
}

func (s *Server) getOrganization(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	o, err := s.orgService.Get(c.Request().Context(), email, c.Param("realm"), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (s *Server) deleteOrganization(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.orgService.Delete(c.Request().Context(), email, c.Param("realm"), c.Param("slug")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) addOrgMember(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req org.AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.orgService.AddMember(c.Request().Context(), email, c.Param("realm"), c.Param("slug"), &req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) removeOrgMember(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.orgService.RemoveMember(c.Request().Context(), email, c.Param("realm"), c.Param("slug"), c.Param("user_id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createInvitation(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req org.CreateInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	inv, err := s.orgService.CreateInvitation(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (s *Server) listInvitations(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	invitations, err := s.orgService.ListInvitations(c.Request().Context(), email, c.Param("realm"), c.QueryParam("org_slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"invitations": invitations, "count": len(invitations)})
}

func (s *Server) revokeInvitation(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("invitation_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid invitation ID")
	}
	if err := s.orgService.RevokeInvitation(c.Request().Context(), email, c.Param("realm"), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
