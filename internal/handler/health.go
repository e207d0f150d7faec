package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running. It returns
// {ok:true} plus the current timestamp in milliseconds.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"ok": true,
		"ts": time.Now().UnixMilli(),
	})
}
