package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()

	requests := e.Group("/api/service-requests")
	requests.Use(authMiddleware.Authenticate)
	requests.POST("", requestHandler.CreateRequest)
	requests.GET("", requestHandler.ListMyRequests)
	requests.GET("/:id", requestHandler.GetRequest)

	// Quick services are anonymous; IP rate limiting stands in for identity.
	e.POST("/api/quick-service-requests", requestHandler.CreateQuickRequest, middleware.QuickServiceRateLimit())
}
