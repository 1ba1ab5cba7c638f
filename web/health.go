package web

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

func NewTestEndpoint() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, messageResponse{Message: "Backend server is running!"})
	}
}
