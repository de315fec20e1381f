package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSubmissionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	submissionHandler := handler.GetSubmissionHandler()

	flows := e.Group("/api/flows")
	flows.Use(authMiddleware.Authenticate)
	flows.POST("", submissionHandler.StartFlow)
	flows.GET("/:id", submissionHandler.GetFlow)
	flows.POST("/:id/advance", submissionHandler.Advance)
	flows.POST("/:id/back", submissionHandler.Back)
	flows.POST("/:id/cancel", submissionHandler.Cancel)
	flows.POST("/:id/submit", submissionHandler.Finish)
	flows.POST("/:id/use-address", submissionHandler.UseSavedAddress)
}
