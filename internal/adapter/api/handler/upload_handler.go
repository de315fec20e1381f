package handler

import (
	"civicserve/internal/infrastructure/storage"
	"civicserve/pkg/errors"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 10 << 20 // 10 MB

type UploadHandler struct {
	storageClient *storage.CloudStorageClient
}

var uploadHandler *UploadHandler

func SetupUploadHandler(storageClient *storage.CloudStorageClient) {
	uploadHandler = &UploadHandler{storageClient: storageClient}
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

// UploadPhoto stores an evidence photo and returns its public URL for
// the evidence step to reference.
func (h *UploadHandler) UploadPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.Validation("file is required", err))
	}

	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, errors.Validation("file exceeds the 10MB limit", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.storageClient.UploadPhoto(c.Request().Context(), file, contentType, "evidence")
	if err != nil {
		return response.Error(c, errors.Validation("Unsupported or unreadable photo", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
