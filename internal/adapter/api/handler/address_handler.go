package handler

import (
	"civicserve/internal/usecase"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addressUseCase *usecase.AddressUseCase
}

func NewAddressHandler(addressUseCase *usecase.AddressUseCase) *AddressHandler {
	return &AddressHandler{
		addressUseCase: addressUseCase,
	}
}

type createAddressRequest struct {
	Street    string `json:"street" validate:"required"`
	Apt       string `json:"apt"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

func (h *AddressHandler) CreateAddress(c echo.Context) error {
	var req createAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	address, err := h.addressUseCase.CreateAddress(
		c.Request().Context(),
		userID,
		usecase.CreateAddressInput{
			Street:    req.Street,
			Apt:       req.Apt,
			City:      req.City,
			State:     req.State,
			Zip:       req.Zip,
			IsDefault: req.IsDefault,
		},
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, address)
}

func (h *AddressHandler) ListAddresses(c echo.Context) error {
	userID := c.Get("uid").(string)

	addresses, err := h.addressUseCase.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, addresses)
}

func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	id := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.addressUseCase.DeleteAddress(c.Request().Context(), userID, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Address deleted successfully",
	})
}
