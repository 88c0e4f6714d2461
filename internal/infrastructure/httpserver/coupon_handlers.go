package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createCoupon(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	var req coupon.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	cp, err := s.couponService.Create(c.Request().Context(), email, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cp)
}

func (s *Server) listCoupons(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	coupons, err := s.couponService.List(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"coupons": coupons, "count": len(coupons)})
}

// validateCoupon checks a code against a plan without consuming a
// redemption.
func (s *Server) validateCoupon(c echo.Context) error {
	if _, err := helpers.GetOwnerEmailFromContext(c); err != nil {
		return err
	}
	cp, err := s.couponService.Validate(c.Request().Context(), c.Param("code"), c.QueryParam("plan"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":        true,
		"code":         cp.Code,
		"discount_pct": cp.DiscountPct,
		"description":  cp.Description,
	})
}

func (s *Server) toggleCoupon(c echo.Context) error {
	if _, err := helpers.GetOwnerEmailFromContext(c); err != nil {
		return err
	}
	cp, err := s.couponService.Toggle(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (s *Server) deleteCoupon(c echo.Context) error {
	email, err := helpers.GetOwnerEmailFromContext(c)
	if err != nil {
		return err
	}
	if err := s.couponService.Delete(c.Request().Context(), email, c.Param("code")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getCouponRedemptions(c echo.Context) error {
	if _, err := helpers.GetOwnerEmailFromContext(c); err != nil {
		return err
	}
	redemptions, err := s.couponService.Redemptions(c.Request().Context(), c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"redemptions": redemptions, "count": len(redemptions)})
}
