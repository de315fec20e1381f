package handler

import (
	"time"

	"civicserve/internal/usecase"
	"civicserve/pkg/errors"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

// SubmissionHandler exposes the step-by-step submission flows. Flow
// state lives server-side; the client only sends its current step's
// fields and moves the pointer.
type SubmissionHandler struct {
	submissionUseCase *usecase.SubmissionUseCase
}

func NewSubmissionHandler(submissionUseCase *usecase.SubmissionUseCase) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUseCase: submissionUseCase,
	}
}

type startFlowRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
}

func (h *SubmissionHandler) StartFlow(c echo.Context) error {
	var req startFlowRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	flow, err := h.submissionUseCase.StartFlow(userID, req.ServiceID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, flow)
}

func (h *SubmissionHandler) GetFlow(c echo.Context) error {
	flow, err := h.submissionUseCase.Get(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, flow)
}

type stepInputRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
	LocationTag string `json:"location_tag"`
	PhotoURL    string `json:"photo_url"`

	Street       string `json:"street"`
	Apt          string `json:"apt"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	DeliveryDate string `json:"delivery_date"` // "2006-01-02"
	Instructions string `json:"instructions"`
}

func (r *stepInputRequest) toStepInput() (usecase.StepInput, error) {
	input := usecase.StepInput{
		Reason:       r.Reason,
		Description:  r.Description,
		LocationTag:  r.LocationTag,
		PhotoURL:     r.PhotoURL,
		Street:       r.Street,
		Apt:          r.Apt,
		City:         r.City,
		State:        r.State,
		Zip:          r.Zip,
		Instructions: r.Instructions,
	}

	if r.DeliveryDate != "" {
		date, err := time.Parse("2006-01-02", r.DeliveryDate)
		if err != nil {
			return input, errors.Validation("delivery_date must be YYYY-MM-DD", err)
		}
		input.DeliveryDate = &date
	}

	return input, nil
}

func (h *SubmissionHandler) Advance(c echo.Context) error {
	var req stepInputRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	input, err := req.toStepInput()
	if err != nil {
		return response.Error(c, err)
	}

	flow, err := h.submissionUseCase.Advance(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, flow)
}

func (h *SubmissionHandler) Back(c echo.Context) error {
	flow, err := h.submissionUseCase.Back(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, flow)
}

func (h *SubmissionHandler) Cancel(c echo.Context) error {
	if err := h.submissionUseCase.Cancel(c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Flow cancelled",
	})
}

func (h *SubmissionHandler) Finish(c echo.Context) error {
	flow, err := h.submissionUseCase.Get(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.submissionUseCase.Finish(c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, flow)
}

type useSavedAddressRequest struct {
	AddressID string `json:"address_id" validate:"required"`
}

func (h *SubmissionHandler) UseSavedAddress(c echo.Context) error {
	var req useSavedAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	flow, err := h.submissionUseCase.UseSavedAddress(c.Request().Context(), c.Param("id"), req.AddressID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, flow)
}
