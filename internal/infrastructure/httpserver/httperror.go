package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
)

// httpError translates the service error taxonomy into HTTP responses.
// Coupon sentinels are validation failures from the caller's point of view,
// except the shared not-found and conflict cases.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, coupon.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, coupon.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, coupon.ErrDisabled),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrRedemptionLimit),
		errors.Is(err, coupon.ErrPlanNotEligible):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.IsEntitlement(err):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperr.IsUpstream(err):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
