package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createUser(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req identity.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id, err := s.userService.CreateUser(c.Request().Context(), email, c.Param("realm"), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id, "username": req.Username})
}

func (s *Server) listUsers(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	first, _ := strconv.Atoi(c.QueryParam("first"))
	max, _ := strconv.Atoi(c.QueryParam("max"))
	users, err := s.userService.ListUsers(c.Request().Context(), email, c.Param("realm"), first, max, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users, "count": len(users)})
}

func (s *Server) getUser(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	u, sessions, roles, err := s.userService.GetUser(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     u,
		"sessions": sessions,
		"roles":    roles,
	})
}

func (s *Server) updateUser(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req identity.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.userService.UpdateUser(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"), &req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) deleteUser(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.DeleteUser(c.Request().Context(), email, c.Param("realm"), c.Param("user_id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getUserSessions(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	sessions, err := s.userService.GetSessions(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions, "count": len(sessions)})
}

func (s *Server) revokeUserSessions(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.RevokeSessions(c.Request().Context(), email, c.Param("realm"), c.Param("user_id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) revokeSession(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.RevokeSession(c.Request().Context(), email, c.Param("realm"), c.Param("session_id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) impersonateUser(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	result, err := s.userService.Impersonate(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) createRole(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.userService.CreateRole(c.Request().Context(), email, c.Param("realm"), req.Name, req.Description); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *Server) listRoles(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	roles, err := s.userService.ListRoles(c.Request().Context(), email, c.Param("realm"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"roles": roles, "count": len(roles)})
}

func (s *Server) deleteRole(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.DeleteRole(c.Request().Context(), email, c.Param("realm"), c.Param("role_name")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) assignRole(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.AssignRole(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"), c.Param("role_name")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) removeRole(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.userService.RemoveRole(c.Request().Context(), email, c.Param("realm"), c.Param("user_id"), c.Param("role_name")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}
