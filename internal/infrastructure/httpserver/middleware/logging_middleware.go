package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging emits a debug line per request, tagged with the realm on
// tenant-scoped routes.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger != nil {
				fields := logrus.Fields{"method": c.Request().Method, "path": c.Path()}
				if realm := c.Param("realm"); realm != "" {
					fields["realm"] = realm
				}
				m.logger.WithFields(fields).Debug("incoming request")
			}
			return next(c)
		}
	}
}
