package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAddressRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	addressHandler := handler.GetAddressHandler()

	addresses := e.Group("/api/addresses")
	addresses.Use(authMiddleware.Authenticate)
	addresses.GET("", addressHandler.ListAddresses)
	addresses.POST("", addressHandler.CreateAddress)
	addresses.DELETE("/:id", addressHandler.DeleteAddress)
}
