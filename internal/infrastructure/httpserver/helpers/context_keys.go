package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyOwnerEmail ctxKey = "owner_email"
	keyOwnerName  ctxKey = "owner_name"
)

func SetOwnerEmail(c echo.Context, email string) { c.Set(string(keyOwnerEmail), email) }
func GetOwnerEmailRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyOwnerEmail))
	s, ok := v.(string)
	return s, ok
}

func SetOwnerName(c echo.Context, name string) { c.Set(string(keyOwnerName), name) }
func GetOwnerNameRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyOwnerName))
	s, ok := v.(string)
	return s, ok
}
