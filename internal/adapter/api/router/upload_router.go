package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	uploadHandler := handler.GetUploadHandler()

	e.POST("/api/uploads", uploadHandler.UploadPhoto,
		authMiddleware.Authenticate, middleware.UploadRateLimit())
}
