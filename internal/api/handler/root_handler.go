package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RootHandler serves GET / — a liveness/info message.
type RootHandler struct {
	appName string
}

func NewRootHandler(appName string) *RootHandler {
	return &RootHandler{appName: appName}
}

func (h *RootHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s is running", h.appName),
	})
}
