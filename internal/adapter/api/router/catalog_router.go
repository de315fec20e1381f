package router

import (
	"civicserve/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()
	e.GET("/api/services", catalogHandler.ListServices)
}
