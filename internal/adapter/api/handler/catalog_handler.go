package handler

import (
	"civicserve/internal/domain/entity"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	return response.Success(c, entity.Catalog())
}
